package websocket

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestReplaceStopsPreviousListenerFirst(t *testing.T) {
	subs := NewSubscriptions(context.Background())
	defer subs.Close()

	var running int32
	var overlap int32
	listener := func(ctx context.Context) {
		if atomic.AddInt32(&running, 1) > 1 {
			atomic.StoreInt32(&overlap, 1)
		}
		<-ctx.Done()
		atomic.AddInt32(&running, -1)
	}

	for i := 0; i < 5; i++ {
		require.True(t, subs.Replace("products", listener))
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(&overlap))
	assert.Equal(t, []string{"products"}, subs.Active())
}

func TestCancelAndCloseReleaseListeners(t *testing.T) {
	subs := NewSubscriptions(context.Background())

	stopped := make(chan string, 2)
	run := func(name string) func(context.Context) {
		return func(ctx context.Context) {
			<-ctx.Done()
			stopped <- name
		}
	}
	subs.Replace("offers", run("offers"))
	subs.Replace("stats", run("stats"))

	subs.Cancel("offers")
	assert.Equal(t, "offers", <-stopped)

	subs.Close()
	assert.Equal(t, "stats", <-stopped)
	assert.Empty(t, subs.Active())
	assert.False(t, subs.Replace("offers", run("offers")))
}

type stubSource struct {
	snapshots [][]string
}

func (s *stubSource) Stream(ctx context.Context, uid string, sub Subscription, emit func(interface{})) error {
	for _, snap := range s.snapshots {
		emit(snap)
	}
	<-ctx.Done()
	return nil
}

func TestClientHandleEmitsSnapshotFrames(t *testing.T) {
	source := &stubSource{snapshots: [][]string{{"a"}, {"a", "b"}}}
	client := NewClient(context.Background(), "c1", "u1", nil, source, nil)
	defer client.Close()

	client.Handle(InboundMessage{Type: MessageTypeSubscribe, Channel: "products"})

	for _, want := range [][]string{{"a"}, {"a", "b"}} {
		select {
		case raw := <-client.Send:
			var msg struct {
				Type    string   `json:"type"`
				Channel string   `json:"channel"`
				Data    []string `json:"data"`
			}
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, MessageTypeSnapshot, msg.Type)
			assert.Equal(t, "products", msg.Channel)
			assert.Equal(t, want, msg.Data)
		case <-time.After(time.Second):
			t.Fatal("no snapshot frame")
		}
	}
}

func TestClientRejectsWhenNotAllowed(t *testing.T) {
	client := NewClient(context.Background(), "c1", "u1", nil, &stubSource{}, func(string) bool { return false })
	defer client.Close()

	client.Handle(InboundMessage{Type: MessageTypeSubscribe, Channel: "offers"})

	raw := <-client.Send
	var msg OutboundMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, MessageTypeError, msg.Type)
	require.NotNil(t, msg.Error)
	assert.Equal(t, "TOO_MANY_REQUESTS", msg.Error.Code)
	assert.Empty(t, client.subs.Active())
}
