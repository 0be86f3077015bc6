package team

import "context"

// Repository describes team lookups needed by ingestion. Teams are never
// created through this interface.
type Repository interface {
	GetByName(ctx context.Context, name string) (Team, bool, error)
	List(ctx context.Context) ([]Team, error)
}
