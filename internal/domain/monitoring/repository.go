package monitoring

import "context"

// Repository appends events. Rows are never updated or deleted.
type Repository interface {
	Insert(ctx context.Context, e Event) (Event, error)
}
