package letters

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo keeps generated letters in memory and is safe for concurrent use.
// Letters only need to outlive their submission long enough to be downloaded.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Letter
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Letter)}
}

// Create stores the letter.
func (r *MemoryRepo) Create(ctx context.Context, letter Letter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[letter.ID] = letter
	return nil
}

// GetByID returns a letter by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, letterID string) (Letter, error) {
	if err := ctx.Err(); err != nil {
		return Letter{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	letter, ok := r.byID[letterID]
	if !ok {
		return Letter{}, ErrNotFound
	}
	return letter, nil
}

// List returns letters newest first, with limit/offset.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Letter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	all := make([]Letter, 0, len(r.byID))
	for _, letter := range r.byID {
		all = append(all, letter)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []Letter{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
