package api

import (
	"testing"

	apierrors "github.com/diogo/helpchat/internal/errors"
)

func TestExtractReply(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"answer field", `{"answer":"42"}`, "42", false},
		{"response field", `{"response":"ok"}`, "ok", false},
		{"message field", `{"message":"hi"}`, "hi", false},
		{"reply field", `{"reply":"hello"}`, "hello", false},
		{"answer wins over reply", `{"reply":"b","answer":"a"}`, "a", false},
		{"empty answer falls through", `{"answer":"","reply":"b"}`, "b", false},
		{"no known field falls back to raw", `{"foo":"bar"}`, `{"foo":"bar"}`, false},
		{"not json", "<html>oops</html>", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractReply([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("extractReply(%q) expected error, got %q", tt.body, got)
				}
				if !apierrors.IsParseError(err) {
					t.Errorf("expected ParseError, got %T: %v", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractReply(%q) returned error: %v", tt.body, err)
			}
			if got != tt.want {
				t.Errorf("extractReply(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
