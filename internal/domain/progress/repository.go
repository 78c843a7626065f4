package progress

import "context"

// Repository defines persistence operations supported by the ledger domain.
type Repository interface {
	Upsert(ctx context.Context, entry *Entry) error
	GetByTopicID(ctx context.Context, topicID int) (*Entry, error)
	List(ctx context.Context) ([]Entry, error)
}
