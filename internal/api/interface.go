package api

import "context"

// ClientInterface defines the backend operations consumed by the TUI and the
// CLI commands. *HelpdeskClient is the production implementation;
// MockHelpdeskClient serves tests.
type ClientInterface interface {
	Query(ctx context.Context, text string) (string, error)
	StreamChat(ctx context.Context, text string, fn FragmentFunc) error
	StreamEvents(ctx context.Context, text string, fn FragmentFunc) error
	Health() (string, error)
	Banner() (string, error)
	BaseURL() string
	Delivery() Delivery
	SetDelivery(d Delivery)
	StartChat() *ChatSession
	Close()
	IsClosed() bool
}

var _ ClientInterface = (*HelpdeskClient)(nil)
