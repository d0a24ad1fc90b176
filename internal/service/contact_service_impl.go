package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/pkg/contactform"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo  repository.ContactRepository
	now   func() time.Time
	newID func() string
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Submit validates input, assigns a new ID and creation time, and persists
// the normalized record.
func (s *contactServiceImpl) Submit(ctx context.Context, input map[string]any) (*model.ContactMessage, error) {
	sub, err := contactform.Validate(input)
	if err != nil {
		return nil, err
	}

	msg := &model.ContactMessage{
		ID:        s.newID(),
		Name:      sub.Name,
		Email:     sub.Email,
		Message:   sub.Message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("save contact message: %w", err)
	}
	return msg, nil
}

func (s *contactServiceImpl) Get(ctx context.Context, id string) (*model.ContactMessage, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns contact messages according to the given pagination options.
func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	return s.repo.List(ctx, opts)
}
