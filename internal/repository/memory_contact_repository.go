package repository

import (
	"context"
	"sync"

	"github.com/portfolio/backend/internal/model"
)

// MemoryContactRepository keeps contact messages in process memory. Used
// for local development (DATABASE_DRIVER=memory) and tests.
type MemoryContactRepository struct {
	mu       sync.RWMutex
	messages []model.ContactMessage
	byID     map[string]int
}

// NewMemoryContactRepository returns an empty in-memory store.
func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{byID: make(map[string]int)}
}

var _ Store = (*MemoryContactRepository)(nil)

func (r *MemoryContactRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *MemoryContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[msg.ID]; ok {
		return ErrDuplicateID
	}
	r.byID[msg.ID] = len(r.messages)
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *MemoryContactRepository) FindByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	m := r.messages[i]
	return &m, nil
}

// List returns messages in reverse insertion order, which is newest first.
func (r *MemoryContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.ContactMessage
	skipped := 0
	for i := len(r.messages) - 1; i >= 0; i-- {
		if skipped < opts.Offset {
			skipped++
			continue
		}
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
		m := r.messages[i]
		out = append(out, &m)
	}
	return out, nil
}

// Len reports how many messages are stored.
func (r *MemoryContactRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages)
}
