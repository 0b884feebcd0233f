package api

import "context"

// MockHelpdeskClient is a mock implementation of ClientInterface for testing
type MockHelpdeskClient struct {
	// Mock return values
	QueryVal        string
	QueryErr        error
	StreamFragments []string
	StreamErr       error
	EventFragments  []string
	EventsErr       error
	HealthVal       string
	HealthErr       error
	BannerVal       string
	BannerErr       error
	BaseURLVal      string
	DeliveryVal     Delivery
	IsClosedVal     bool

	// Call counters/recorders
	QueryCalled        bool
	StreamChatCalled   bool
	StreamEventsCalled bool
	CloseCalled        bool
	LastText           string
}

// Ensure MockHelpdeskClient implements ClientInterface
var _ ClientInterface = (*MockHelpdeskClient)(nil)

func (m *MockHelpdeskClient) Query(ctx context.Context, text string) (string, error) {
	m.QueryCalled = true
	m.LastText = text
	return m.QueryVal, m.QueryErr
}

func (m *MockHelpdeskClient) StreamChat(ctx context.Context, text string, fn FragmentFunc) error {
	m.StreamChatCalled = true
	m.LastText = text
	for _, frag := range m.StreamFragments {
		if err := fn(frag); err != nil {
			return err
		}
	}
	return m.StreamErr
}

func (m *MockHelpdeskClient) StreamEvents(ctx context.Context, text string, fn FragmentFunc) error {
	m.StreamEventsCalled = true
	m.LastText = text
	for _, frag := range m.EventFragments {
		if err := fn(frag); err != nil {
			return err
		}
	}
	return m.EventsErr
}

func (m *MockHelpdeskClient) Health() (string, error) {
	return m.HealthVal, m.HealthErr
}

func (m *MockHelpdeskClient) Banner() (string, error) {
	return m.BannerVal, m.BannerErr
}

func (m *MockHelpdeskClient) BaseURL() string {
	if m.BaseURLVal == "" {
		return "http://localhost:8000"
	}
	return m.BaseURLVal
}

func (m *MockHelpdeskClient) Delivery() Delivery {
	if m.DeliveryVal == "" {
		return DeliveryStream
	}
	return m.DeliveryVal
}

func (m *MockHelpdeskClient) SetDelivery(d Delivery) {
	m.DeliveryVal = d
}

func (m *MockHelpdeskClient) StartChat() *ChatSession {
	return NewChatSession(m, m.Delivery())
}

func (m *MockHelpdeskClient) Close() {
	m.CloseCalled = true
}

func (m *MockHelpdeskClient) IsClosed() bool {
	return m.IsClosedVal
}
