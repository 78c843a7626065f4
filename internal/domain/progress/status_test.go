package progress

import "testing"

func TestParseStatusWords(t *testing.T) {
	t.Parallel()

	cases := map[string]Status{
		"completed":   StatusCompleted,
		"Completed":   StatusCompleted,
		"done":        StatusCompleted,
		"in-progress": StatusInProgress,
		"In Progress": StatusInProgress,
		"wip":         StatusInProgress,
		"not-started": StatusNotStarted,
		"not started": StatusNotStarted,
		"pending":     StatusNotStarted,
		"  todo  ":    StatusNotStarted,
	}

	for input, expected := range cases {
		status, err := ParseStatus(input)
		if err != nil {
			t.Fatalf("ParseStatus(%q) returned error: %v", input, err)
		}
		if status != expected {
			t.Fatalf("ParseStatus(%q) = %q, expected %q", input, status, expected)
		}
	}
}

func TestParseStatusGlyphs(t *testing.T) {
	t.Parallel()

	cases := map[string]Status{
		"✅": StatusCompleted,
		"🔄": StatusInProgress,
		"⏳": StatusNotStarted,
	}

	for input, expected := range cases {
		status, err := ParseStatus(input)
		if err != nil {
			t.Fatalf("ParseStatus(%q) returned error: %v", input, err)
		}
		if status != expected {
			t.Fatalf("ParseStatus(%q) = %q, expected %q", input, status, expected)
		}
	}
}

func TestParseStatusResolvesAmbiguousMarkers(t *testing.T) {
	t.Parallel()

	// Checklist sources occasionally combine markers; the more progressed
	// state wins.
	cases := map[string]Status{
		"not-started / partially done": StatusInProgress,
		"in-progress / completed":      StatusCompleted,
		"⏳, partial":                   StatusInProgress,
	}

	for input, expected := range cases {
		status, err := ParseStatus(input)
		if err != nil {
			t.Fatalf("ParseStatus(%q) returned error: %v", input, err)
		}
		if status != expected {
			t.Fatalf("ParseStatus(%q) = %q, expected %q", input, status, expected)
		}
	}
}

func TestParseStatusRejectsUnknownInput(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "  ", "finished?", "🚀", "blocked / stuck"} {
		if _, err := ParseStatus(input); err == nil {
			t.Fatalf("expected error for input %q", input)
		}
	}
}

func TestStatusGlyphRoundTrip(t *testing.T) {
	t.Parallel()

	for _, status := range Statuses {
		parsed, err := ParseStatus(status.Glyph())
		if err != nil {
			t.Fatalf("ParseStatus(%q) returned error: %v", status.Glyph(), err)
		}
		if parsed != status {
			t.Fatalf("glyph round trip for %q produced %q", status, parsed)
		}
	}
}

func TestStatusValid(t *testing.T) {
	t.Parallel()

	for _, status := range Statuses {
		if !status.Valid() {
			t.Fatalf("expected %q to be valid", status)
		}
	}

	if Status("finished").Valid() {
		t.Fatalf("expected arbitrary status word to be invalid")
	}
}
