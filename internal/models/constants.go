package models

// DefaultBaseURL selects the backend target when no flag or config overrides it.
const DefaultBaseURL = "http://localhost:8000"

// Endpoint paths on the helpdesk backend
const (
	PathRoot   = "/"
	PathHealth = "/health"
	PathQuery  = "/query"
	PathChat   = "/chat"
	PathEvents = "/events"
)

// EndSentinel is the reserved event payload signalling normal stream
// termination rather than content.
const EndSentinel = "[END]"

// FramingHeader lets the server declare how the /chat body is framed
// ("sse", "ndjson" or "raw"). Absent the header, framing is sniffed per line.
const FramingHeader = "X-Chat-Framing"

// ReplyFields are checked in order when extracting the answer from a
// non-streaming /query payload. First non-empty wins.
var ReplyFields = []string{"answer", "response", "message", "reply"}

// FragmentFields are checked in order when extracting text from a structured
// stream line. First non-empty wins.
var FragmentFields = []string{"delta", "text", "chunk"}

// DefaultHeaders returns the headers sent on every helpdesk request.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":    "application/json",
		"Accept":          "application/json, text/plain",
		"Accept-Language": "en-US,en;q=0.9",
		"User-Agent":      "helpchat",
	}
}
