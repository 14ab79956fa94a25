package websocket

import (
	"context"
	"sync"
)

type activeSubscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Subscriptions owns at most one running listener per channel. Replacing a
// channel stops and waits for the previous listener before starting the next.
type Subscriptions struct {
	parent context.Context
	mu     sync.Mutex
	active map[string]*activeSubscription
	closed bool
}

func NewSubscriptions(parent context.Context) *Subscriptions {
	return &Subscriptions{
		parent: parent,
		active: make(map[string]*activeSubscription),
	}
}

// Replace stops any listener on channel and starts run in its place.
// It returns false once the registry has been closed.
func (s *Subscriptions) Replace(channel string, run func(ctx context.Context)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.stopLocked(channel)

	ctx, cancel := context.WithCancel(s.parent)
	sub := &activeSubscription{cancel: cancel, done: make(chan struct{})}
	s.active[channel] = sub

	go func() {
		defer close(sub.done)
		run(ctx)
	}()
	return true
}

// Cancel stops the listener on channel, if any, and waits for it to exit.
func (s *Subscriptions) Cancel(channel string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked(channel)
}

func (s *Subscriptions) stopLocked(channel string) {
	sub, ok := s.active[channel]
	if !ok {
		return
	}
	delete(s.active, channel)
	sub.cancel()
	<-sub.done
}

// Close stops every listener; later Replace calls are refused.
func (s *Subscriptions) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for channel := range s.active {
		s.stopLocked(channel)
	}
}

func (s *Subscriptions) Active() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.active))
	for channel := range s.active {
		out = append(out, channel)
	}
	return out
}
