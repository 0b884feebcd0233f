package api

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/diogo/helpchat/internal/models"
)

// Decoder turns one framed line from a chat stream into the text fragment it
// carries. ok is false when the line carries no content (SSE comments, blank
// keep-alives) and should be skipped.
type Decoder interface {
	// Name reports the framing this decoder handles.
	Name() string
	// DecodeLine extracts the fragment carried by a single line.
	DecodeLine(line string) (fragment string, ok bool)
}

// DecoderFor returns the decoder for a framing declared by the server via the
// X-Chat-Framing header. Unknown or empty names fall back to per-line sniffing.
func DecoderFor(framing string) Decoder {
	switch strings.ToLower(strings.TrimSpace(framing)) {
	case "sse":
		return sseDecoder{}
	case "ndjson", "json":
		return ndjsonDecoder{}
	case "raw", "text":
		return rawDecoder{}
	default:
		return sniffDecoder{}
	}
}

// sseDecoder handles "data: <payload>" framed lines. The payload may itself
// be JSON carrying one of the fragment fields.
type sseDecoder struct{}

func (sseDecoder) Name() string { return "sse" }

func (sseDecoder) DecodeLine(line string) (string, bool) {
	if !strings.HasPrefix(line, "data:") {
		return "", false
	}
	data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
	if data == "" {
		return "", false
	}
	if frag, ok := fragmentField(data); ok {
		return frag, true
	}
	return data, true
}

// ndjsonDecoder handles one JSON value per line.
type ndjsonDecoder struct{}

func (ndjsonDecoder) Name() string { return "ndjson" }

func (ndjsonDecoder) DecodeLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	if frag, ok := fragmentField(line); ok {
		return frag, true
	}
	return line, true
}

// rawDecoder passes every non-empty line through verbatim.
type rawDecoder struct{}

func (rawDecoder) Name() string { return "raw" }

func (rawDecoder) DecodeLine(line string) (string, bool) {
	if line == "" {
		return "", false
	}
	return line, true
}

// sniffDecoder guesses the framing per line when the server declares none:
// an SSE data prefix is stripped first, then the remainder is tried as a
// structured payload, then taken literally. Inherently ambiguous; servers
// that set X-Chat-Framing bypass it entirely.
type sniffDecoder struct{}

func (sniffDecoder) Name() string { return "sniff" }

func (sniffDecoder) DecodeLine(line string) (string, bool) {
	if line == "" {
		return "", false
	}
	if strings.HasPrefix(line, "data:") {
		return sseDecoder{}.DecodeLine(line)
	}
	if frag, ok := fragmentField(line); ok {
		return frag, true
	}
	return line, true
}

// fragmentField extracts the first non-empty fragment field from a structured
// payload. ok is false when the payload is not valid JSON or carries none of
// the known fields.
func fragmentField(payload string) (string, bool) {
	if !gjson.Valid(payload) {
		return "", false
	}
	parsed := gjson.Parse(payload)
	if parsed.Type != gjson.JSON {
		// Bare JSON scalars ("plain", 42) are treated as literal text
		// by the caller, not as structured payloads.
		return "", false
	}
	for _, field := range models.FragmentFields {
		if v := parsed.Get(field); v.Exists() && v.String() != "" {
			return v.String(), true
		}
	}
	return "", false
}
