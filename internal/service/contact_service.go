package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates input against the contact-form schema and stores one
	// new message. A schema failure is returned as *contactform.ValidationError
	// and nothing is stored. Every successful call creates a distinct record.
	Submit(ctx context.Context, input map[string]any) (*model.ContactMessage, error)

	// Get returns a single message or repository.ErrNotFound.
	Get(ctx context.Context, id string) (*model.ContactMessage, error)

	// List returns contact messages according to the given options.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
}
