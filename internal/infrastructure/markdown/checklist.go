package markdown

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"studylog/app/internal/domain/catalog"
	"studylog/app/internal/domain/progress"
)

// ChecklistItem is one parsed line of a checklist document: a status marker,
// a link to the topic file, and an optional trailing note.
type ChecklistItem struct {
	Slug   string
	Status progress.Status
	Note   string
}

var checklistLinePattern = regexp.MustCompile(`^\s*[-*]\s+(.+?)\s*\[[^\]]*\]\(([^)]+)\)\s*(?:-\s*(.*))?$`)

// ParseChecklist reads a README-style checklist and returns one item per
// recognised topic line. Lines without a topic-file link are skipped; lines
// whose status marker cannot be parsed are rejected.
func ParseChecklist(raw string) ([]ChecklistItem, error) {
	items := make([]ChecklistItem, 0)

	for lineNo, line := range strings.Split(raw, "\n") {
		match := checklistLinePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		fileMatch := topicFilePattern.FindStringSubmatch(path.Base(strings.TrimSpace(match[2])))
		if fileMatch == nil {
			continue
		}

		status, err := progress.ParseStatus(match[1])
		if err != nil {
			return nil, eris.Wrapf(err, "parsing checklist line %d", lineNo+1)
		}

		items = append(items, ChecklistItem{
			Slug:   fileMatch[2],
			Status: status,
			Note:   strings.TrimSpace(match[3]),
		})
	}

	return items, nil
}

// RenderChecklist produces the checklist document for the given catalog
// topics and ledger entries. Topics without an entry render with the
// not-started glyph.
func RenderChecklist(topics []catalog.Topic, entries map[int]progress.Entry) string {
	var b strings.Builder
	b.WriteString("# Learning Checklist\n\n")

	for _, topic := range topics {
		status := progress.StatusNotStarted
		note := ""
		if entry, ok := entries[topic.ID]; ok {
			status = entry.Status
			note = entry.Note
		}

		fmt.Fprintf(&b, "- %s [%02d - %s](%02d_%s.md)", status.Glyph(), topic.ID, topic.Title, topic.ID, topic.Slug)
		if note != "" {
			fmt.Fprintf(&b, " - %s", note)
		}
		b.WriteByte('\n')
	}

	return b.String()
}
