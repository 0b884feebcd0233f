package api

import (
	"strings"
	"testing"
	"time"

	"github.com/diogo/helpchat/internal/models"
)

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	defer client.Close()

	if client.BaseURL() != "http://localhost:8000" {
		t.Errorf("default base URL = %q", client.BaseURL())
	}
	if client.Delivery() != DeliveryStream {
		t.Errorf("default delivery = %q, want %q", client.Delivery(), DeliveryStream)
	}
	if client.IsClosed() {
		t.Error("fresh client reports closed")
	}
}

func TestNewClient_Options(t *testing.T) {
	client, err := NewClient(
		WithBaseURL("http://helpdesk.internal:9000/"),
		WithDelivery(DeliveryEvents),
		WithTimeout(30*time.Second),
	)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	defer client.Close()

	if client.BaseURL() != "http://helpdesk.internal:9000" {
		t.Errorf("base URL = %q, trailing slash should be trimmed", client.BaseURL())
	}
	if client.Delivery() != DeliveryEvents {
		t.Errorf("delivery = %q, want %q", client.Delivery(), DeliveryEvents)
	}
}

func TestClientClose(t *testing.T) {
	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	client.Close()
	if !client.IsClosed() {
		t.Error("client should report closed after Close")
	}
	// Close is idempotent
	client.Close()
}

func TestStartChat_InheritsDelivery(t *testing.T) {
	client, err := NewClient(WithDelivery(DeliveryQuery))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	defer client.Close()

	session := client.StartChat()
	if session.Delivery() != DeliveryQuery {
		t.Errorf("session delivery = %q, want %q", session.Delivery(), DeliveryQuery)
	}
}

func TestNewRequest(t *testing.T) {
	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer client.Close()

	t.Run("nil body", func(t *testing.T) {
		req, err := client.newRequest("GET", client.endpoint(models.PathHealth), nil)
		if err != nil {
			t.Fatalf("newRequest failed: %v", err)
		}
		if req.Body != nil {
			t.Error("nil body should produce a request without a body")
		}
		for key, value := range models.DefaultHeaders() {
			if got := req.Header.Get(key); got != value {
				t.Errorf("header %s = %q, want %q", key, got, value)
			}
		}
	})

	t.Run("reader body", func(t *testing.T) {
		req, err := client.newRequest("POST", client.endpoint(models.PathQuery), strings.NewReader(`{"message":"hi"}`))
		if err != nil {
			t.Fatalf("newRequest failed: %v", err)
		}
		if req.Body == nil {
			t.Error("reader body should be attached to the request")
		}
	})
}

func TestParseDelivery(t *testing.T) {
	tests := []struct {
		in      string
		want    Delivery
		wantErr bool
	}{
		{"stream", DeliveryStream, false},
		{"QUERY", DeliveryQuery, false},
		{" events ", DeliveryEvents, false},
		{"websocket", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDelivery(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDelivery(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDelivery(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDelivery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
