package progress

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Status is the closed set of completion states a topic can be in.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every status from least to most progressed.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// Glyph returns the checklist marker used when rendering this status.
func (s Status) Glyph() string {
	switch s {
	case StatusCompleted:
		return "✅"
	case StatusInProgress:
		return "🔄"
	default:
		return "⏳"
	}
}

func (s Status) rank() int {
	switch s {
	case StatusCompleted:
		return 2
	case StatusInProgress:
		return 1
	default:
		return 0
	}
}

// Valid reports whether the status is one of the three known variants.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

var statusWords = map[string]Status{
	"completed":      StatusCompleted,
	"complete":       StatusCompleted,
	"done":           StatusCompleted,
	"✅":              StatusCompleted,
	"in-progress":    StatusInProgress,
	"in progress":    StatusInProgress,
	"in_progress":    StatusInProgress,
	"partially done": StatusInProgress,
	"partial":        StatusInProgress,
	"wip":            StatusInProgress,
	"🔄":              StatusInProgress,
	"not-started":    StatusNotStarted,
	"not started":    StatusNotStarted,
	"not_started":    StatusNotStarted,
	"todo":           StatusNotStarted,
	"pending":        StatusNotStarted,
	"⏳":              StatusNotStarted,
}

// ParseStatus maps free-text status markers onto the closed status set.
// Checklist sources mix words and glyphs, sometimes combining several in one
// marker ("not-started / partially done"); when more than one recognised
// marker appears, the most progressed one wins. Unrecognised input is
// rejected rather than passed through.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", eris.New("status is required")
	}

	if status, ok := statusWords[normalized]; ok {
		return status, nil
	}

	best := Status("")
	for _, part := range strings.FieldsFunc(normalized, func(r rune) bool {
		return r == '/' || r == ','
	}) {
		if status, ok := statusWords[strings.TrimSpace(part)]; ok {
			if best == "" || status.rank() > best.rank() {
				best = status
			}
		}
	}

	if best == "" {
		return "", eris.Errorf("unrecognised status: %s", raw)
	}

	return best, nil
}
