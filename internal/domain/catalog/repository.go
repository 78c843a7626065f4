package catalog

import "context"

// Repository defines persistence operations supported by the catalog domain.
type Repository interface {
	Create(ctx context.Context, topic *Topic) error
	GetByID(ctx context.Context, id int) (*Topic, error)
	GetBySlug(ctx context.Context, slug string) (*Topic, error)
	List(ctx context.Context) ([]Topic, error)
	UpdateBody(ctx context.Context, id int, body string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
