package api

import "testing"

func TestDecoderFor(t *testing.T) {
	tests := []struct {
		framing string
		want    string
	}{
		{"sse", "sse"},
		{"SSE", "sse"},
		{"ndjson", "ndjson"},
		{"json", "ndjson"},
		{"raw", "raw"},
		{"text", "raw"},
		{"", "sniff"},
		{"protobuf", "sniff"},
	}

	for _, tt := range tests {
		t.Run(tt.framing, func(t *testing.T) {
			if got := DecoderFor(tt.framing).Name(); got != tt.want {
				t.Errorf("DecoderFor(%q).Name() = %q, want %q", tt.framing, got, tt.want)
			}
		})
	}
}

func TestSniffDecoder(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   string
		wantOK bool
	}{
		{"sse with delta", `data: {"delta":"Hi"}`, "Hi", true},
		{"sse with plain payload", "data: hello", "hello", true},
		{"ndjson with text", `{"text":" there"}`, " there", true},
		{"ndjson with chunk", `{"chunk":"abc"}`, "abc", true},
		{"plain line", "plain", "plain", true},
		{"json without known field", `{"foo":"bar"}`, `{"foo":"bar"}`, true},
		{"delta wins over text", `{"delta":"a","text":"b"}`, "a", true},
		{"empty delta falls through to text", `{"delta":"","text":"b"}`, "b", true},
		{"empty line skipped", "", "", false},
		{"bare data prefix skipped", "data:", "", false},
	}

	d := sniffDecoder{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.DecodeLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("DecodeLine(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("DecodeLine(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestSSEDecoder_IgnoresNonDataLines(t *testing.T) {
	d := sseDecoder{}
	for _, line := range []string{"event: message", ": keep-alive", "id: 3", "plain"} {
		if _, ok := d.DecodeLine(line); ok {
			t.Errorf("sse decoder accepted non-data line %q", line)
		}
	}
}

func TestRawDecoder_Verbatim(t *testing.T) {
	d := rawDecoder{}
	got, ok := d.DecodeLine(`data: {"delta":"Hi"}`)
	if !ok || got != `data: {"delta":"Hi"}` {
		t.Errorf("raw decoder rewrote line: %q (ok=%v)", got, ok)
	}
}

func TestFragmentField_ScalarPayload(t *testing.T) {
	// Bare JSON scalars are literal text, not structured payloads.
	if _, ok := fragmentField(`"quoted"`); ok {
		t.Error("scalar payload treated as structured")
	}
	if _, ok := fragmentField("42"); ok {
		t.Error("numeric payload treated as structured")
	}
}
