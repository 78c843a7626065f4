package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	domaincatalog "studylog/app/internal/domain/catalog"
)

// Repository persists catalog topics using a Gorm database connection.
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

var _ domaincatalog.Repository = (*Repository)(nil)

// Create stores a new topic and assigns the next sequential identifier. It
// returns ErrDuplicateSlug when the slug is already taken, leaving the
// catalog unchanged.
func (r *Repository) Create(ctx context.Context, topic *domaincatalog.Topic) error {
	if topic == nil {
		return eris.New("topic is nil")
	}

	trimmedSlug := strings.TrimSpace(topic.Slug)
	if trimmedSlug == "" {
		return eris.New("topic slug is required")
	}

	record := &TopicRecord{
		Slug:  trimmedSlug,
		Title: strings.TrimSpace(topic.Title),
		Body:  topic.Body,
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
			dupErr := eris.Wrapf(domaincatalog.ErrDuplicateSlug, "creating topic: %s", trimmedSlug)
			r.logError(logrus.Fields{"slug": trimmedSlug}, dupErr, "creating topic with duplicate slug")
			return dupErr
		}
		r.logError(logrus.Fields{"slug": trimmedSlug}, err, "creating topic")
		return eris.Wrapf(err, "creating topic: %s", trimmedSlug)
	}

	topic.ID = int(record.ID)
	topic.Slug = trimmedSlug
	topic.Title = record.Title

	return nil
}

// GetByID returns the topic for the provided identifier or nil when not found.
func (r *Repository) GetByID(ctx context.Context, id int) (*domaincatalog.Topic, error) {
	if id <= 0 {
		return nil, nil
	}

	var record TopicRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"topic_id": id}, err, "fetching topic by id")
		return nil, eris.Wrapf(err, "fetching topic by id: %d", id)
	}

	return toDomainTopic(&record), nil
}

// GetBySlug returns the topic for the provided slug or nil when not found.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domaincatalog.Topic, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, eris.New("slug is required")
	}

	var record TopicRecord
	err := r.db.WithContext(ctx).First(&record, "slug = ?", trimmed).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"slug": trimmed}, err, "fetching topic by slug")
		return nil, eris.Wrapf(err, "fetching topic by slug: %s", trimmed)
	}

	return toDomainTopic(&record), nil
}

// List returns every topic ordered by ascending identifier.
func (r *Repository) List(ctx context.Context) ([]domaincatalog.Topic, error) {
	var records []TopicRecord

	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		r.logError(nil, err, "listing topics")
		return nil, eris.Wrap(err, "listing topics")
	}

	topics := make([]domaincatalog.Topic, 0, len(records))
	for _, record := range records {
		topics = append(topics, *toDomainTopic(&record))
	}

	return topics, nil
}

// UpdateBody overwrites the body of an existing topic in place. The boolean
// result reports whether a row was actually updated.
func (r *Repository) UpdateBody(ctx context.Context, id int, body string) (bool, error) {
	if id <= 0 {
		return false, nil
	}

	result := r.db.WithContext(ctx).
		Model(&TopicRecord{}).
		Where("id = ?", id).
		Update("body", body)
	if result.Error != nil {
		r.logError(logrus.Fields{"topic_id": id}, result.Error, "updating topic body")
		return false, eris.Wrapf(result.Error, "updating topic body: %d", id)
	}

	return result.RowsAffected > 0, nil
}

// Count returns the total number of persisted topics.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).Model(&TopicRecord{}).Count(&count).Error; err != nil {
		r.logError(nil, err, "counting topics")
		return 0, eris.Wrap(err, "counting topics")
	}

	return count, nil
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

func toDomainTopic(record *TopicRecord) *domaincatalog.Topic {
	if record == nil {
		return nil
	}

	return &domaincatalog.Topic{
		ID:    int(record.ID),
		Slug:  strings.TrimSpace(record.Slug),
		Title: strings.TrimSpace(record.Title),
		Body:  record.Body,
	}
}
