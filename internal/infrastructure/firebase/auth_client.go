package firebase

import (
	"context"
	"errors"

	"firebase.google.com/go/v4/auth"

	apperrors "deyelegliz/pkg/errors"
)

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

// VerifyToken returns the uid behind an ID token. Certificate fetch failures
// wrap apperrors.ErrAuthUnavailable so callers can tell them apart from bad tokens.
func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		if auth.IsCertificateFetchFailed(err) {
			return "", errors.Join(apperrors.ErrAuthUnavailable, err)
		}
		return "", err
	}

	return result.UID, nil
}

func (f *FirebaseAuthClient) SetDisplayName(ctx context.Context, uid, displayName string) error {
	params := (&auth.UserToUpdate{}).
		DisplayName(displayName)

	_, err := f.client.UpdateUser(ctx, uid, params)
	return err
}

func (f *FirebaseAuthClient) RevokeSessions(ctx context.Context, uid string) error {
	return f.client.RevokeRefreshTokens(ctx, uid)
}

// TestConnection looks up a uid that cannot exist; only a not-found answer proves the backend is reachable.
func (f *FirebaseAuthClient) TestConnection(ctx context.Context) error {
	_, err := f.client.GetUser(ctx, "deye-legliz-health-check")
	if err != nil && !auth.IsUserNotFound(err) {
		return err
	}
	return nil
}
