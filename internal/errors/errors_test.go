package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNetworkError(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewNetworkError("post", "/chat", inner)

	if !strings.Contains(err.Error(), "post") || !strings.Contains(err.Error(), "/chat") {
		t.Errorf("Error() missing context: %s", err.Error())
	}
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Error("NetworkError should match ErrBackendUnavailable")
	}
	if !errors.Is(err, inner) {
		t.Error("NetworkError should unwrap to inner error")
	}
	if !IsNetworkError(err) {
		t.Error("IsNetworkError should be true")
	}
	if IsAPIError(err) {
		t.Error("IsAPIError should be false for NetworkError")
	}
}

func TestNetworkError_NoEndpoint(t *testing.T) {
	err := NewNetworkError("get", "", errors.New("dns failure"))
	if strings.Contains(err.Error(), "at ") {
		t.Errorf("Error() should omit endpoint when empty: %s", err.Error())
	}
}

func TestAPIError(t *testing.T) {
	err := NewAPIError(500, "/query", "internal server error")

	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "/query") {
		t.Errorf("Error() missing context: %s", err.Error())
	}
	if !IsAPIError(err) {
		t.Error("IsAPIError should be true")
	}
	if GetHTTPStatus(err) != 500 {
		t.Errorf("GetHTTPStatus = %d, want 500", GetHTTPStatus(err))
	}
	if GetEndpoint(err) != "/query" {
		t.Errorf("GetEndpoint = %s, want /query", GetEndpoint(err))
	}
}

func TestAPIErrorWithBody(t *testing.T) {
	err := NewAPIErrorWithBody(429, "/chat", "too many requests", `{"detail":"slow down"}`)

	if GetResponseBody(err) != `{"detail":"slow down"}` {
		t.Errorf("GetResponseBody = %s", GetResponseBody(err))
	}
}

func TestAPIError_Wrapped(t *testing.T) {
	err := fmt.Errorf("request failed: %w", NewAPIError(404, "/health", "not found"))

	if !IsAPIError(err) {
		t.Error("IsAPIError should see through wrapping")
	}
	if GetHTTPStatus(err) != 404 {
		t.Errorf("GetHTTPStatus through wrap = %d, want 404", GetHTTPStatus(err))
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("payload is not JSON", "<html>oops</html>")

	if !strings.Contains(err.Error(), "payload is not JSON") {
		t.Errorf("Error() missing message: %s", err.Error())
	}
	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("ParseError should match ErrInvalidResponse")
	}
	if !IsParseError(err) {
		t.Error("IsParseError should be true")
	}
	if IsStreamError(err) {
		t.Error("IsStreamError should be false for ParseError")
	}
}

func TestStreamError(t *testing.T) {
	err := NewStreamError("/events", ErrStreamClosed)

	if !strings.Contains(err.Error(), "/events") {
		t.Errorf("Error() missing endpoint: %s", err.Error())
	}
	if !errors.Is(err, ErrStreamClosed) {
		t.Error("StreamError should unwrap to ErrStreamClosed")
	}
	if !IsStreamError(err) {
		t.Error("IsStreamError should be true")
	}
	if GetEndpoint(err) != "/events" {
		t.Errorf("GetEndpoint = %s, want /events", GetEndpoint(err))
	}
}

func TestStreamError_NilInner(t *testing.T) {
	err := NewStreamError("/chat", nil)
	if !strings.Contains(err.Error(), "/chat") {
		t.Errorf("Error() missing endpoint: %s", err.Error())
	}
}

func TestHelpersOnPlainError(t *testing.T) {
	err := errors.New("plain")

	if IsNetworkError(err) || IsAPIError(err) || IsParseError(err) || IsStreamError(err) {
		t.Error("Type checks should be false for plain errors")
	}
	if GetHTTPStatus(err) != 0 {
		t.Error("GetHTTPStatus should be 0 for plain errors")
	}
	if GetEndpoint(err) != "" {
		t.Error("GetEndpoint should be empty for plain errors")
	}
	if GetResponseBody(err) != "" {
		t.Error("GetResponseBody should be empty for plain errors")
	}
}
