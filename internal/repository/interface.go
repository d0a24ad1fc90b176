package repository

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// DB checks that the backing store is reachable.
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository defines the persistence interface for contact messages.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	// Create inserts msg. msg.ID must already be set; the stored creation
	// time is written back into msg.CreatedAt.
	Create(ctx context.Context, msg *model.ContactMessage) error
	FindByID(ctx context.Context, id string) (*model.ContactMessage, error)
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
}

// Store is a ContactRepository whose backing store can be health-checked.
type Store interface {
	DB
	ContactRepository
}
