package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// Service defines higher-level catalog operations built on top of the repository.
type Service interface {
	AddTopic(ctx context.Context, title, slug, body string) (*Topic, error)
	GetTopic(ctx context.Context, ref string) (*Topic, error)
	ListTopics(ctx context.Context) ([]Topic, error)
	UpdateBody(ctx context.Context, id int, body string) error
	CountTopics(ctx context.Context) (int64, error)
}

type service struct {
	repo      Repository
	logger    *logrus.Logger
	sentryHub *sentry.Hub
}

var _ Service = (*service)(nil)

// NewService wires the catalog service with its dependencies.
func NewService(repo Repository, logger *logrus.Logger, hub *sentry.Hub) (Service, error) {
	if repo == nil {
		return nil, eris.New("catalog repository is required")
	}

	return &service{
		repo:      repo,
		logger:    logger,
		sentryHub: hub,
	}, nil
}

// AddTopic appends a new topic to the catalog. The slug is derived from the
// title when empty, and the next sequential identifier is assigned on insert.
func (s *service) AddTopic(ctx context.Context, title, slug, body string) (*Topic, error) {
	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" {
		return nil, eris.New("title is required")
	}

	trimmedSlug := strings.TrimSpace(slug)
	if trimmedSlug == "" {
		trimmedSlug = Slugify(trimmedTitle)
	}

	if err := ValidateSlug(trimmedSlug); err != nil {
		s.recordError(logrus.Fields{"slug": trimmedSlug}, err, "validating topic slug")
		return nil, eris.Wrapf(err, "validating slug: %s", trimmedSlug)
	}

	topic := &Topic{
		Slug:  trimmedSlug,
		Title: trimmedTitle,
		Body:  strings.TrimSpace(body),
	}

	if err := s.repo.Create(ctx, topic); err != nil {
		s.recordError(logrus.Fields{"slug": trimmedSlug}, err, "creating topic")
		return nil, eris.Wrapf(err, "adding topic: %s", trimmedSlug)
	}

	return topic, nil
}

// GetTopic resolves a topic by decimal identifier or by slug.
func (s *service) GetTopic(ctx context.Context, ref string) (*Topic, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return nil, eris.New("topic reference is required")
	}

	var (
		topic *Topic
		err   error
	)

	if id, convErr := strconv.Atoi(trimmed); convErr == nil {
		topic, err = s.repo.GetByID(ctx, id)
	} else {
		topic, err = s.repo.GetBySlug(ctx, trimmed)
	}

	if err != nil {
		s.recordError(logrus.Fields{"ref": trimmed}, err, "retrieving topic from repository")
		return nil, eris.Wrapf(err, "retrieving topic: %s", trimmed)
	}

	if topic == nil {
		return nil, eris.Wrapf(ErrTopicNotFound, "retrieving topic: %s", trimmed)
	}

	return topic, nil
}

// ListTopics returns every catalog entry ordered by ascending identifier,
// matching the intended learning path.
func (s *service) ListTopics(ctx context.Context) ([]Topic, error) {
	topics, err := s.repo.List(ctx)
	if err != nil {
		s.recordError(nil, err, "listing topics")
		return nil, eris.Wrap(err, "listing topics")
	}

	return topics, nil
}

// UpdateBody overwrites the body of an existing topic. Identifier and slug
// remain fixed.
func (s *service) UpdateBody(ctx context.Context, id int, body string) error {
	updated, err := s.repo.UpdateBody(ctx, id, strings.TrimSpace(body))
	if err != nil {
		s.recordError(logrus.Fields{"topic_id": id}, err, "updating topic body")
		return eris.Wrapf(err, "updating topic body: %d", id)
	}

	if !updated {
		return eris.Wrapf(ErrTopicNotFound, "updating topic body: %d", id)
	}

	return nil
}

// CountTopics returns the number of catalog entries.
func (s *service) CountTopics(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.recordError(nil, err, "counting topics")
		return 0, eris.Wrap(err, "counting topics")
	}

	return count, nil
}

func (s *service) recordError(fields logrus.Fields, err error, message string) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if len(fields) > 0 {
			entry = entry.WithFields(fields)
		}
		entry.Error(message)
	}

	if s.sentryHub != nil {
		s.sentryHub.CaptureException(err)
	}
}
