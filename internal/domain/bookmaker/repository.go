package bookmaker

import "context"

type Repository interface {
	GetByKey(ctx context.Context, key string) (Bookmaker, bool, error)
	List(ctx context.Context) ([]Bookmaker, error)
}
