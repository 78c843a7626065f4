package progress

import (
	"context"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"studylog/app/internal/domain/catalog"
)

// Service defines the ledger operations built on top of the entry repository
// and the catalog. Every tracked topic identifier must refer to an existing
// catalog entry.
type Service interface {
	SetStatus(ctx context.Context, topicID int, status Status, note string) error
	GetStatus(ctx context.Context, topicID int) (*Entry, error)
	Summary(ctx context.Context) (map[Status]int, error)
	TopicsWithStatus(ctx context.Context, status Status) ([]int, error)
}

type service struct {
	repo      Repository
	topics    catalog.Repository
	logger    *logrus.Logger
	sentryHub *sentry.Hub
}

var _ Service = (*service)(nil)

// NewService wires the ledger service with its dependencies.
func NewService(repo Repository, topics catalog.Repository, logger *logrus.Logger, hub *sentry.Hub) (Service, error) {
	if repo == nil {
		return nil, eris.New("ledger repository is required")
	}
	if topics == nil {
		return nil, eris.New("catalog repository is required")
	}

	return &service{
		repo:      repo,
		topics:    topics,
		logger:    logger,
		sentryHub: hub,
	}, nil
}

// SetStatus upserts the ledger entry for a topic. Any status may replace any
// other; the ledger enforces no transition order.
func (s *service) SetStatus(ctx context.Context, topicID int, status Status, note string) error {
	if !status.Valid() {
		return eris.Errorf("invalid status: %s", status)
	}

	if err := s.requireTopic(ctx, topicID); err != nil {
		return err
	}

	entry := &Entry{
		TopicID: topicID,
		Status:  status,
		Note:    strings.TrimSpace(note),
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		s.recordError(logrus.Fields{"topic_id": topicID, "status": status}, err, "upserting ledger entry")
		return eris.Wrapf(err, "setting status for topic %d", topicID)
	}

	return nil
}

// GetStatus returns the ledger entry for a topic. Topics without an explicit
// entry report the implicit not-started default; absence is a valid state,
// not an error.
func (s *service) GetStatus(ctx context.Context, topicID int) (*Entry, error) {
	if err := s.requireTopic(ctx, topicID); err != nil {
		return nil, err
	}

	entry, err := s.repo.GetByTopicID(ctx, topicID)
	if err != nil {
		s.recordError(logrus.Fields{"topic_id": topicID}, err, "retrieving ledger entry")
		return nil, eris.Wrapf(err, "retrieving status for topic %d", topicID)
	}

	if entry == nil {
		return &Entry{TopicID: topicID, Status: StatusNotStarted}, nil
	}

	return entry, nil
}

// Summary aggregates status counts across the whole catalog. Topics without
// an explicit ledger entry count as not started, so the totals always sum to
// the catalog size.
func (s *service) Summary(ctx context.Context) (map[Status]int, error) {
	entries, topics, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[Status]int{
		StatusCompleted:  0,
		StatusInProgress: 0,
		StatusNotStarted: 0,
	}

	for _, topic := range topics {
		status := StatusNotStarted
		if entry, ok := entries[topic.ID]; ok {
			status = entry.Status
		}
		counts[status]++
	}

	return counts, nil
}

// TopicsWithStatus returns the identifiers of every catalog topic currently
// in the given status, ascending.
func (s *service) TopicsWithStatus(ctx context.Context, status Status) ([]int, error) {
	if !status.Valid() {
		return nil, eris.Errorf("invalid status: %s", status)
	}

	entries, topics, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(topics))
	for _, topic := range topics {
		current := StatusNotStarted
		if entry, ok := entries[topic.ID]; ok {
			current = entry.Status
		}
		if current == status {
			ids = append(ids, topic.ID)
		}
	}

	return ids, nil
}

func (s *service) requireTopic(ctx context.Context, topicID int) error {
	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		s.recordError(logrus.Fields{"topic_id": topicID}, err, "checking topic existence")
		return eris.Wrapf(err, "checking topic %d", topicID)
	}

	if topic == nil {
		return eris.Wrapf(ErrUnknownTopic, "topic %d", topicID)
	}

	return nil
}

// load fetches the ledger keyed by topic and the catalog in learning order.
func (s *service) load(ctx context.Context) (map[int]Entry, []catalog.Topic, error) {
	listed, err := s.repo.List(ctx)
	if err != nil {
		s.recordError(nil, err, "listing ledger entries")
		return nil, nil, eris.Wrap(err, "listing ledger entries")
	}

	entries := make(map[int]Entry, len(listed))
	for _, entry := range listed {
		entries[entry.TopicID] = entry
	}

	topics, err := s.topics.List(ctx)
	if err != nil {
		s.recordError(nil, err, "listing catalog topics")
		return nil, nil, eris.Wrap(err, "listing catalog topics")
	}

	return entries, topics, nil
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
