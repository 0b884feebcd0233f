package api

import (
	"errors"
	"strings"
	"testing"

	apierrors "github.com/diogo/helpchat/internal/errors"
)

func collectFragments(t *testing.T, body string, decoder Decoder) ([]string, error) {
	t.Helper()
	var got []string
	err := consumeLines(strings.NewReader(body), decoder, func(frag string) error {
		got = append(got, frag)
		return nil
	}, "/chat")
	return got, err
}

func TestConsumeLines_MixedFraming(t *testing.T) {
	body := "data: {\"delta\":\"Hi\"}\n{\"text\":\" there\"}\nplain\n"

	got, err := collectFragments(t, body, sniffDecoder{})
	if err != nil {
		t.Fatalf("consumeLines returned error: %v", err)
	}

	want := []string{"Hi", " there", "plain"}
	if len(got) != len(want) {
		t.Fatalf("got %d fragments %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fragment %d = %q, want %q", i, got[i], want[i])
		}
	}

	// Concatenated in line order the fragments read as one reply.
	if joined := strings.Join(got, ""); joined != "Hi thereplain" {
		t.Errorf("joined fragments = %q, want %q", joined, "Hi thereplain")
	}
}

func TestConsumeLines_TrailingPartialLine(t *testing.T) {
	// No trailing newline: the partial line must still be flushed through
	// the same interpretation.
	body := "first\ndata: {\"delta\":\"tail\"}"

	got, err := collectFragments(t, body, sniffDecoder{})
	if err != nil {
		t.Fatalf("consumeLines returned error: %v", err)
	}
	if len(got) != 2 || got[0] != "first" || got[1] != "tail" {
		t.Errorf("fragments = %v, want [first tail]", got)
	}
}

func TestConsumeLines_EmptyLinesSkipped(t *testing.T) {
	got, err := collectFragments(t, "a\n\n\nb\n", sniffDecoder{})
	if err != nil {
		t.Fatalf("consumeLines returned error: %v", err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("fragments = %v, want [a b]", got)
	}
}

func TestConsumeLines_CallbackErrorStops(t *testing.T) {
	sentinel := errors.New("stop")
	calls := 0
	err := consumeLines(strings.NewReader("a\nb\nc\n"), rawDecoder{}, func(string) error {
		calls++
		return sentinel
	}, "/chat")
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("callback called %d times after error, want 1", calls)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestConsumeLines_ReadFailure(t *testing.T) {
	err := consumeLines(failingReader{}, rawDecoder{}, func(string) error { return nil }, "/chat")
	if err == nil {
		t.Fatal("expected error from failing reader")
	}
	if !apierrors.IsStreamError(err) {
		t.Errorf("expected StreamError, got %T: %v", err, err)
	}
}
