package render

import (
	"strings"
	"testing"
)

func TestMarkdown_Basic(t *testing.T) {
	out, err := Markdown("# Title\n\nSome **bold** text.", DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown returned error: %v", err)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("rendered output missing heading text: %q", out)
	}
	if !strings.Contains(out, "bold") {
		t.Errorf("rendered output missing body text: %q", out)
	}
}

func TestMarkdownWithWidth(t *testing.T) {
	out, err := MarkdownWithWidth("plain paragraph", 40)
	if err != nil {
		t.Fatalf("MarkdownWithWidth returned error: %v", err)
	}
	for _, line := range strings.Split(out, "\n") {
		// ANSI escapes inflate byte length; this is a sanity bound, not exact.
		if len(line) > 400 {
			t.Errorf("line unexpectedly long for width 40: %d bytes", len(line))
		}
	}
}

func TestPoolReuse(t *testing.T) {
	ClearCache()

	opts := DefaultOptions()
	if _, err := Markdown("one", opts); err != nil {
		t.Fatalf("first render failed: %v", err)
	}
	if _, err := Markdown("two", opts); err != nil {
		t.Fatalf("second render failed: %v", err)
	}
	if CacheSize() != 1 {
		t.Errorf("pool count = %d after same-option renders, want 1", CacheSize())
	}

	if _, err := Markdown("three", opts.WithWidth(40)); err != nil {
		t.Fatalf("third render failed: %v", err)
	}
	if CacheSize() != 2 {
		t.Errorf("pool count = %d after distinct options, want 2", CacheSize())
	}
}

func TestLoadOptionsFromConfig_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GLAMOUR_STYLE", "notty")

	opts := LoadOptionsFromConfig()
	if opts.Style != "notty" {
		t.Errorf("style = %q, GLAMOUR_STYLE should win", opts.Style)
	}
}
