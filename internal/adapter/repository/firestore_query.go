package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"deyelegliz/pkg/errors"
	"deyelegliz/pkg/logger"
)

const (
	usersCollection         = "users"
	productsCollection      = "products"
	requestsCollection      = "requests"
	offersCollection        = "offers"
	proposalsCollection     = "proposals"
	verificationsCollection = "phoneVerifications"
)

type decodeFunc[T any] func(doc *firestore.DocumentSnapshot) (T, error)

func collectDocs[T any](iter *firestore.DocumentIterator, decode decodeFunc[T], what string) ([]T, error) {
	defer iter.Stop()
	var out []T
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate "+what, err)
		}
		v, err := decode(doc)
		if err != nil {
			logger.Warn("skipping %s %s: %v", what, doc.Ref.ID, err)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// watchQuery runs a snapshot listener and hands every result set to emit.
// It returns nil once ctx is cancelled; any other listener error is returned.
func watchQuery[T any](ctx context.Context, q firestore.Query, decode decodeFunc[T], what string, emit func([]T)) error {
	it := q.Snapshots(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled {
				return nil
			}
			return errors.Internal("Live query on "+what+" failed", err)
		}
		items, err := collectDocs(snap.Documents, decode, what)
		if err != nil {
			return err
		}
		if items == nil {
			items = []T{}
		}
		emit(items)
	}
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// updateDoc applies field updates, mapping a missing document to NotFound.
func updateDoc(ctx context.Context, ref *firestore.DocumentRef, resource string, updates []firestore.Update) error {
	_, err := ref.Update(ctx, updates)
	if err != nil {
		if isNotFound(err) {
			return errors.NotFound(resource, err)
		}
		return errors.Internal("Failed to update "+resource, err)
	}
	return nil
}
