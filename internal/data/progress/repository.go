package progress

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainprogress "studylog/app/internal/domain/progress"
)

// Repository persists ledger entries using a Gorm database connection.
type Repository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewRepository constructs a Gorm-backed repository implementation.
func NewRepository(db *gorm.DB, logger *logrus.Logger) (*Repository, error) {
	if db == nil {
		return nil, eris.New("gorm DB is required")
	}

	return &Repository{db: db, logger: logger}, nil
}

var _ domainprogress.Repository = (*Repository)(nil)

// Upsert stores the ledger entry, inserting or overwriting the row for the
// topic as needed.
func (r *Repository) Upsert(ctx context.Context, entry *domainprogress.Entry) error {
	if entry == nil {
		return eris.New("entry is nil")
	}
	if entry.TopicID <= 0 {
		return eris.New("entry topic id is required")
	}

	record := &EntryRecord{
		TopicID: entry.TopicID,
		Status:  string(entry.Status),
		Note:    strings.TrimSpace(entry.Note),
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "topic_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "note", "updated_at"}),
		}).
		Create(record).Error
	if err != nil {
		r.logError(logrus.Fields{"topic_id": entry.TopicID}, err, "upserting ledger entry")
		return eris.Wrapf(err, "upserting ledger entry for topic %d", entry.TopicID)
	}

	return nil
}

// GetByTopicID returns the entry for the provided topic or nil when the topic
// has no explicit entry yet.
func (r *Repository) GetByTopicID(ctx context.Context, topicID int) (*domainprogress.Entry, error) {
	if topicID <= 0 {
		return nil, nil
	}

	var record EntryRecord
	err := r.db.WithContext(ctx).First(&record, "topic_id = ?", topicID).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"topic_id": topicID}, err, "fetching ledger entry")
		return nil, eris.Wrapf(err, "fetching ledger entry for topic %d", topicID)
	}

	return toDomainEntry(&record)
}

// List returns every ledger entry ordered by ascending topic identifier.
func (r *Repository) List(ctx context.Context) ([]domainprogress.Entry, error) {
	var records []EntryRecord

	if err := r.db.WithContext(ctx).Order("topic_id ASC").Find(&records).Error; err != nil {
		r.logError(nil, err, "listing ledger entries")
		return nil, eris.Wrap(err, "listing ledger entries")
	}

	entries := make([]domainprogress.Entry, 0, len(records))
	for _, record := range records {
		entry, err := toDomainEntry(&record)
		if err != nil {
			r.logError(logrus.Fields{"topic_id": record.TopicID}, err, "decoding ledger entry")
			return nil, eris.Wrapf(err, "decoding ledger entry for topic %d", record.TopicID)
		}
		entries = append(entries, *entry)
	}

	return entries, nil
}

func (r *Repository) logError(fields logrus.Fields, err error, message string) {
	if r.logger == nil || err == nil {
		return
	}

	entry := r.logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}

// toDomainEntry rejects rows whose stored status fell outside the closed
// status set, rather than passing them through.
func toDomainEntry(record *EntryRecord) (*domainprogress.Entry, error) {
	if record == nil {
		return nil, nil
	}

	status := domainprogress.Status(record.Status)
	if !status.Valid() {
		return nil, eris.Errorf("stored status %q is not recognised", record.Status)
	}

	return &domainprogress.Entry{
		TopicID: record.TopicID,
		Status:  status,
		Note:    record.Note,
	}, nil
}
