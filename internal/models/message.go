// Package models contains data types and constants for the helpdesk chat client.
package models

// Role identifies who authored a message in the transcript.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a chat transcript.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is an ordered, append-only log of exchanged messages. The only
// element ever mutated in place is the trailing assistant message while a
// reply is streaming in.
type Transcript struct {
	messages []Message
}

// NewTranscript creates a transcript seeded with the given messages.
func NewTranscript(seed ...Message) *Transcript {
	t := &Transcript{}
	t.messages = append(t.messages, seed...)
	return t
}

// Append adds a complete message to the end of the transcript.
func (t *Transcript) Append(role Role, content string) {
	t.messages = append(t.messages, Message{Role: role, Content: content})
}

// AppendAssistant appends fragment to the open assistant message. If the last
// message is not an assistant message, a new empty one is opened first.
// Fragments are applied in arrival order with plain concatenation.
func (t *Transcript) AppendAssistant(fragment string) {
	if n := len(t.messages); n == 0 || t.messages[n-1].Role != RoleAssistant {
		t.messages = append(t.messages, Message{Role: RoleAssistant})
	}
	t.messages[len(t.messages)-1].Content += fragment
}

// SetLastAssistant replaces the content of the open assistant message,
// opening one if needed. Used by the character reveal path, which rewrites
// the trailing message on every tick.
func (t *Transcript) SetLastAssistant(content string) {
	if n := len(t.messages); n == 0 || t.messages[n-1].Role != RoleAssistant {
		t.messages = append(t.messages, Message{Role: RoleAssistant})
	}
	t.messages[len(t.messages)-1].Content = content
}

// Last returns the final message, or a zero Message when empty.
func (t *Transcript) Last() Message {
	if len(t.messages) == 0 {
		return Message{}
	}
	return t.messages[len(t.messages)-1]
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns a copy of the message log.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}
