package stats

import "context"

// Repository reads aggregate figures from storage.
type Repository interface {
	Summary(ctx context.Context) (*Summary, error)
}
