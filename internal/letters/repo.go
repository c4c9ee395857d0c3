package letters

import "context"

// Repo defines retention operations for generated letters.
type Repo interface {
	Create(ctx context.Context, letter Letter) error
	GetByID(ctx context.Context, letterID string) (Letter, error)
	List(ctx context.Context, limit, offset int) ([]Letter, error)
}
