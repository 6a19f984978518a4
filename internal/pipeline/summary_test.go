package pipeline

import (
	"strings"
	"testing"
)

func TestExtractSummary_StopTag(t *testing.T) {
	t.Parallel()

	content := `<p>one two three</p><div class="output">ignored</div><p>four five six</p>`
	summary, ok := ExtractSummary(content, 50, DefaultStopTags())

	if !ok {
		t.Fatal("expected a summary")
	}
	if summary != "<p>one two three</p>" {
		t.Errorf("summary = %q", summary)
	}
}

func TestExtractSummary_WordBound(t *testing.T) {
	t.Parallel()

	content := "<p>one two three four five six</p><p>seven eight</p>"
	summary, ok := ExtractSummary(content, 5, nil)

	if !ok {
		t.Fatal("expected a summary")
	}
	// The bound is crossed inside the first paragraph; the excerpt keeps
	// the whole element so the markup stays well formed.
	if summary != "<p>one two three four five six</p>" {
		t.Errorf("summary = %q", summary)
	}
	if strings.Contains(summary, "seven") {
		t.Error("content after the bound must not appear")
	}
}

func TestExtractSummary_StopTagAfterBoundIgnored(t *testing.T) {
	t.Parallel()

	content := `<p>one two three four five six</p><div class="output">x</div>`
	summary, ok := ExtractSummary(content, 3, DefaultStopTags())

	if !ok {
		t.Fatal("expected a summary")
	}
	if summary != "<p>one two three four five six</p>" {
		t.Errorf("summary = %q", summary)
	}
}

func TestExtractSummary_NoTrigger(t *testing.T) {
	t.Parallel()

	if summary, ok := ExtractSummary("<p>one two</p>", 50, DefaultStopTags()); ok {
		t.Errorf("short content without stop tags must not produce a summary, got %q", summary)
	}
}

func TestExtractSummary_EmptyContent(t *testing.T) {
	t.Parallel()

	if _, ok := ExtractSummary("", 50, DefaultStopTags()); ok {
		t.Error("empty content must not produce a summary")
	}
}

func TestExtractSummary_AttributeMustMatchExactly(t *testing.T) {
	t.Parallel()

	// class="output extra" is not an exact match for class="output".
	content := `<p>one two</p><div class="output extra">x</div><h2 id="Header-2">next</h2>`
	summary, ok := ExtractSummary(content, 50, DefaultStopTags())

	if !ok {
		t.Fatal("expected a summary at the h2 stop tag")
	}
	if !strings.Contains(summary, "output extra") {
		t.Errorf("non-exact attribute must not stop the scan, got %q", summary)
	}
	if strings.Contains(summary, "next") {
		t.Errorf("scan must stop before the matching h2, got %q", summary)
	}
}

func TestExtractSummary_BareTagStop(t *testing.T) {
	t.Parallel()

	stops := []StopTag{{Tag: "blockquote"}}
	summary, ok := ExtractSummary("<p>intro words</p><blockquote>rest</blockquote>", 50, stops)

	if !ok {
		t.Fatal("expected a summary")
	}
	if !strings.Contains(summary, "intro words") || strings.Contains(summary, "rest") {
		t.Errorf("summary = %q", summary)
	}
}

func TestStripTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "nested markup", input: "<div><p>a <b>b</b> c</p></div>", want: "a b c"},
		{name: "no markup", input: "plain text", want: "plain text"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := StripTags(tt.input); got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
