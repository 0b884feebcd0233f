package api

import (
	"context"
	"strings"
	"sync"
)

// ChatSession drives one conversation against the backend. It enforces the
// single in-flight rule: starting a new exchange first closes any connection
// still open from the previous one.
type ChatSession struct {
	client   ClientInterface
	mu       sync.Mutex
	delivery Delivery
	cancel   context.CancelFunc
	gen      uint64
}

// NewChatSession creates a session bound to the given client. Used by tests
// and callers holding the interface; production code goes through StartChat.
func NewChatSession(client ClientInterface, delivery Delivery) *ChatSession {
	return &ChatSession{client: client, delivery: delivery}
}

// Delivery returns the session's reply delivery mode.
func (s *ChatSession) Delivery() Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delivery
}

// SetDelivery changes the session's reply delivery mode.
func (s *ChatSession) SetDelivery(d Delivery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivery = d
}

// Streaming reports whether fragments arrive incrementally. The query mode
// delivers the whole reply in a single fragment, which the view reveals on a
// timer instead of appending.
func (s *ChatSession) Streaming() bool {
	return s.Delivery() != DeliveryQuery
}

// Send submits one user message and feeds reply fragments to fn in arrival
// order. Empty or whitespace-only text is a no-op. A previous exchange still
// open is cancelled before the new request is issued.
func (s *ChatSession) Send(ctx context.Context, text string, fn FragmentFunc) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.gen++
	gen := s.gen
	delivery := s.delivery
	s.mu.Unlock()

	// Tear down only this call's context. A newer Send may have replaced
	// s.cancel with its own; the generation check keeps this exchange's
	// unwinding from cancelling that one.
	defer func() {
		s.mu.Lock()
		if s.gen == gen {
			s.cancel = nil
		}
		s.mu.Unlock()
		cancel()
	}()

	switch delivery {
	case DeliveryEvents:
		return s.client.StreamEvents(ctx, text, fn)
	case DeliveryQuery:
		reply, err := s.client.Query(ctx, text)
		if err != nil {
			return err
		}
		return fn(reply)
	default:
		return s.client.StreamChat(ctx, text, fn)
	}
}

// Close cancels any in-flight exchange. Called on view teardown.
func (s *ChatSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
