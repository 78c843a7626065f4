package markdown

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"studylog/app/internal/domain/catalog"
	"studylog/app/internal/domain/progress"
)

// Importer loads topic documents and checklist state into the catalog and
// ledger. Re-running an import is safe: topics already present are skipped
// and status upserts overwrite in place.
type Importer struct {
	topics catalog.Service
	ledger progress.Service
	logger *logrus.Logger
}

// NewImporter wires the importer with its dependencies.
func NewImporter(topics catalog.Service, ledger progress.Service, logger *logrus.Logger) (*Importer, error) {
	if topics == nil {
		return nil, eris.New("catalog service is required")
	}
	if ledger == nil {
		return nil, eris.New("ledger service is required")
	}

	return &Importer{topics: topics, ledger: ledger, logger: logger}, nil
}

// ImportDir scans the content directory and appends every discovered topic
// to the catalog in prefix order. It returns the number of topics added.
func (i *Importer) ImportDir(ctx context.Context, dir string) (int, error) {
	files, err := ScanDir(dir)
	if err != nil {
		return 0, eris.Wrapf(err, "scanning content directory: %s", dir)
	}

	added := 0
	for _, file := range files {
		_, err := i.topics.AddTopic(ctx, file.Title, file.Slug, file.Body)
		if err != nil {
			if eris.Is(err, catalog.ErrDuplicateSlug) {
				if i.logger != nil {
					i.logger.WithFields(logrus.Fields{"slug": file.Slug, "path": file.Path}).
						Info("topic already in catalog, skipping")
				}
				continue
			}
			return added, eris.Wrapf(err, "importing topic file: %s", file.Path)
		}

		added++
		if i.logger != nil {
			i.logger.WithFields(logrus.Fields{"slug": file.Slug, "path": file.Path}).
				Info("topic imported")
		}
	}

	return added, nil
}

// ImportChecklist parses the checklist file and applies each status to the
// ledger. Checklist lines referencing topics absent from the catalog are
// reported as errors; the catalog is the source of truth.
func (i *Importer) ImportChecklist(ctx context.Context, checklistPath string) (int, error) {
	raw, err := os.ReadFile(checklistPath)
	if err != nil {
		return 0, eris.Wrapf(err, "reading checklist: %s", checklistPath)
	}

	items, err := ParseChecklist(string(raw))
	if err != nil {
		return 0, eris.Wrapf(err, "parsing checklist: %s", checklistPath)
	}

	applied := 0
	for _, item := range items {
		topic, err := i.topics.GetTopic(ctx, item.Slug)
		if err != nil {
			return applied, eris.Wrapf(err, "resolving checklist topic: %s", item.Slug)
		}

		if err := i.ledger.SetStatus(ctx, topic.ID, item.Status, item.Note); err != nil {
			return applied, eris.Wrapf(err, "applying checklist status for topic: %s", item.Slug)
		}

		applied++
	}

	return applied, nil
}

// Checklist renders the current catalog and ledger as a checklist document.
func (i *Importer) Checklist(ctx context.Context) (string, error) {
	topics, err := i.topics.ListTopics(ctx)
	if err != nil {
		return "", eris.Wrap(err, "listing topics for checklist")
	}

	entries := make(map[int]progress.Entry, len(topics))
	for _, topic := range topics {
		entry, err := i.ledger.GetStatus(ctx, topic.ID)
		if err != nil {
			return "", eris.Wrapf(err, "loading status for topic %d", topic.ID)
		}
		entries[topic.ID] = *entry
	}

	return RenderChecklist(topics, entries), nil
}
