// Package api implements the HTTP client for the IT helpdesk backend.
package api

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/helpchat/internal/errors"
	"github.com/diogo/helpchat/internal/models"
)

// Delivery selects how assistant replies are transferred from the backend.
type Delivery string

const (
	// DeliveryStream reads the chunked /chat body line by line.
	DeliveryStream Delivery = "stream"
	// DeliveryQuery fetches the full reply from /query in one shot.
	DeliveryQuery Delivery = "query"
	// DeliveryEvents consumes the server-sent /events connection.
	DeliveryEvents Delivery = "events"
)

// ParseDelivery validates a delivery mode name.
func ParseDelivery(name string) (Delivery, error) {
	switch Delivery(strings.ToLower(strings.TrimSpace(name))) {
	case DeliveryStream:
		return DeliveryStream, nil
	case DeliveryQuery:
		return DeliveryQuery, nil
	case DeliveryEvents:
		return DeliveryEvents, nil
	default:
		return "", fmt.Errorf("unknown delivery mode %q (want stream, query or events)", name)
	}
}

// HelpdeskClient is the main client for the helpdesk backend.
type HelpdeskClient struct {
	httpClient tls_client.HttpClient
	baseURL    string
	delivery   Delivery
	timeout    time.Duration
	mu         sync.RWMutex
	closed     bool
}

// ClientOption is a function that configures the client
type ClientOption func(*HelpdeskClient)

// WithBaseURL overrides the backend base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *HelpdeskClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithDelivery sets the default reply delivery mode
func WithDelivery(d Delivery) ClientOption {
	return func(c *HelpdeskClient) {
		c.delivery = d
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *HelpdeskClient) {
		c.timeout = timeout
	}
}

// NewClient creates a new HelpdeskClient
func NewClient(opts ...ClientOption) (*HelpdeskClient, error) {
	client := &HelpdeskClient{
		baseURL:  models.DefaultBaseURL,
		delivery: DeliveryStream,
		timeout:  300 * time.Second,
	}

	for _, opt := range opts {
		opt(client)
	}

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(client.timeout.Seconds())),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithNotFollowRedirects(),
	}

	httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	client.httpClient = httpClient

	return client, nil
}

// BaseURL returns the configured backend base URL
func (c *HelpdeskClient) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// Delivery returns the default delivery mode
func (c *HelpdeskClient) Delivery() Delivery {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.delivery
}

// SetDelivery changes the default delivery mode
func (c *HelpdeskClient) SetDelivery(d Delivery) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delivery = d
}

// Close marks the client closed. Open event connections are cancelled by
// their sessions, not here.
func (c *HelpdeskClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// IsClosed returns whether the client is closed
func (c *HelpdeskClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// StartChat creates a new chat session bound to this client
func (c *HelpdeskClient) StartChat() *ChatSession {
	return &ChatSession{
		client:   c,
		delivery: c.Delivery(),
	}
}

// endpoint joins the base URL with a backend path
func (c *HelpdeskClient) endpoint(path string) string {
	return c.BaseURL() + path
}

// newRequest builds a request with the default headers applied
func (c *HelpdeskClient) newRequest(method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	return req, nil
}

// Health checks the backend /health endpoint and reports its status string.
func (c *HelpdeskClient) Health() (string, error) {
	endpoint := c.endpoint(models.PathHealth)

	req, err := c.newRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.NewNetworkError("health check", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := readBody(resp.Body, 4096)
	if err != nil {
		return "", apierrors.NewNetworkError("health check", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, "health check failed", string(body))
	}

	status := gjson.GetBytes(body, "status").String()
	if status == "" {
		return "", apierrors.NewParseError("health payload missing status field", string(body))
	}
	return status, nil
}

// Banner fetches the plaintext banner the backend serves at its root.
func (c *HelpdeskClient) Banner() (string, error) {
	endpoint := c.endpoint(models.PathRoot)

	req, err := c.newRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.NewNetworkError("banner", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := readBody(resp.Body, 4096)
	if err != nil {
		return "", apierrors.NewNetworkError("banner", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, "banner fetch failed", string(body))
	}

	return strings.TrimSpace(string(body)), nil
}
