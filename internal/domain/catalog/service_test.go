package catalog

import (
	"context"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

func TestNewServiceRequiresRepository(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil, nil, nil); err == nil {
		t.Fatalf("expected error when repository is nil")
	}
}

func TestAddTopicAssignsIDAndDerivesSlug(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	service := newTestService(t, repo)
	ctx := context.Background()

	topic, err := service.AddTopic(ctx, "Async/Await", "", "notes on coroutines")
	if err != nil {
		t.Fatalf("AddTopic returned error: %v", err)
	}

	if topic.ID != 1 {
		t.Fatalf("expected id 1, got %d", topic.ID)
	}
	if topic.Slug != "async_await" {
		t.Fatalf("expected derived slug async_await, got %q", topic.Slug)
	}
	if topic.Title != "Async/Await" {
		t.Fatalf("expected title preserved, got %q", topic.Title)
	}
}

func TestAddTopicRejectsDuplicateSlugAndLeavesCatalogUnchanged(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	service := newTestService(t, repo)
	ctx := context.Background()

	if _, err := service.AddTopic(ctx, "Async/Await", "async_await", ""); err != nil {
		t.Fatalf("AddTopic returned error: %v", err)
	}

	_, err := service.AddTopic(ctx, "Async Await Again", "async_await", "")
	if err == nil {
		t.Fatalf("expected duplicate slug error")
	}
	if !eris.Is(err, ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", err)
	}

	if len(repo.topics) != 1 {
		t.Fatalf("expected catalog unchanged with 1 topic, got %d", len(repo.topics))
	}
}

func TestAddTopicRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	service := newTestService(t, newFakeRepository())
	ctx := context.Background()

	if _, err := service.AddTopic(ctx, "   ", "", ""); err == nil {
		t.Fatalf("expected error for blank title")
	}

	if _, err := service.AddTopic(ctx, "Valid Title", "Bad Slug!", ""); err == nil {
		t.Fatalf("expected error for invalid slug")
	}
}

func TestGetTopicResolvesIDAndSlugToSameEntry(t *testing.T) {
	t.Parallel()

	service := newTestService(t, newFakeRepository())
	ctx := context.Background()

	added, err := service.AddTopic(ctx, "Dependency Injection", "", "")
	if err != nil {
		t.Fatalf("AddTopic returned error: %v", err)
	}

	byID, err := service.GetTopic(ctx, "1")
	if err != nil {
		t.Fatalf("GetTopic by id returned error: %v", err)
	}
	bySlug, err := service.GetTopic(ctx, "dependency_injection")
	if err != nil {
		t.Fatalf("GetTopic by slug returned error: %v", err)
	}

	if *byID != *bySlug || byID.ID != added.ID {
		t.Fatalf("expected identical topic by id and slug, got %#v and %#v", byID, bySlug)
	}
}

func TestGetTopicReturnsNotFound(t *testing.T) {
	t.Parallel()

	service := newTestService(t, newFakeRepository())

	_, err := service.GetTopic(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected not found error")
	}
	if !eris.Is(err, ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound, got %v", err)
	}
}

func TestListTopicsIsNonDecreasingInID(t *testing.T) {
	t.Parallel()

	service := newTestService(t, newFakeRepository())
	ctx := context.Background()

	for _, title := range []string{"Charlie", "Alpha", "Bravo"} {
		if _, err := service.AddTopic(ctx, title, "", ""); err != nil {
			t.Fatalf("AddTopic returned error: %v", err)
		}
	}

	topics, err := service.ListTopics(ctx)
	if err != nil {
		t.Fatalf("ListTopics returned error: %v", err)
	}
	if len(topics) != 3 {
		t.Fatalf("expected 3 topics, got %d", len(topics))
	}

	if !sort.SliceIsSorted(topics, func(i, j int) bool { return topics[i].ID < topics[j].ID }) {
		t.Fatalf("expected topics sorted by ascending id, got %#v", topics)
	}
}

func TestUpdateBodyKeepsIDAndSlugFixed(t *testing.T) {
	t.Parallel()

	service := newTestService(t, newFakeRepository())
	ctx := context.Background()

	topic, err := service.AddTopic(ctx, "Background Jobs", "", "old body")
	if err != nil {
		t.Fatalf("AddTopic returned error: %v", err)
	}

	if err := service.UpdateBody(ctx, topic.ID, "  new body  "); err != nil {
		t.Fatalf("UpdateBody returned error: %v", err)
	}

	stored, err := service.GetTopic(ctx, "background_jobs")
	if err != nil {
		t.Fatalf("GetTopic returned error: %v", err)
	}
	if stored.Body != "new body" {
		t.Fatalf("expected trimmed new body, got %q", stored.Body)
	}
	if stored.ID != topic.ID || stored.Slug != topic.Slug {
		t.Fatalf("expected id and slug unchanged, got %#v", stored)
	}
}

func TestUpdateBodyReturnsNotFoundForMissingTopic(t *testing.T) {
	t.Parallel()

	service := newTestService(t, newFakeRepository())

	err := service.UpdateBody(context.Background(), 99, "body")
	if err == nil {
		t.Fatalf("expected not found error")
	}
	if !eris.Is(err, ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound, got %v", err)
	}
}

// fakeRepository is an in-memory Repository used to exercise the service
// without a database.
type fakeRepository struct {
	topics []Topic
	nextID int
}

var _ Repository = (*fakeRepository)(nil)

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1}
}

func (f *fakeRepository) Create(_ context.Context, topic *Topic) error {
	for _, existing := range f.topics {
		if existing.Slug == topic.Slug {
			return eris.Wrapf(ErrDuplicateSlug, "creating topic: %s", topic.Slug)
		}
	}

	topic.ID = f.nextID
	f.nextID++
	topic.Title = strings.TrimSpace(topic.Title)
	f.topics = append(f.topics, *topic)
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id int) (*Topic, error) {
	for _, topic := range f.topics {
		if topic.ID == id {
			copied := topic
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) GetBySlug(_ context.Context, slug string) (*Topic, error) {
	for _, topic := range f.topics {
		if topic.Slug == slug {
			copied := topic
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) List(_ context.Context) ([]Topic, error) {
	listed := make([]Topic, len(f.topics))
	copy(listed, f.topics)
	sort.Slice(listed, func(i, j int) bool { return listed[i].ID < listed[j].ID })
	return listed, nil
}

func (f *fakeRepository) UpdateBody(_ context.Context, id int, body string) (bool, error) {
	for idx := range f.topics {
		if f.topics[idx].ID == id {
			f.topics[idx].Body = body
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) Count(_ context.Context) (int64, error) {
	return int64(len(f.topics)), nil
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	service, err := NewService(repo, logger, nil)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	return service
}
