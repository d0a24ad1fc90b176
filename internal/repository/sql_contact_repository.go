package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/portfolio/backend/internal/model"
)

// SQLContactRepository is the MySQL (sqlx) implementation of ContactRepository.
type SQLContactRepository struct {
	db *sqlx.DB
}

// NewSQLContactRepository creates a SQLContactRepository backed by db.
func NewSQLContactRepository(db *sqlx.DB) *SQLContactRepository {
	return &SQLContactRepository{db: db}
}

var _ Store = (*SQLContactRepository)(nil)

func (r *SQLContactRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Create inserts msg as-is; MySQL has no RETURNING so the service-assigned
// CreatedAt is what gets stored.
func (r *SQLContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, message, created_at)
		 VALUES (:id, :name, :email, :message, :created_at)`,
		msg,
	)
	return err
}

func (r *SQLContactRepository) FindByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	var m model.ContactMessage
	err := r.db.GetContext(ctx, &m,
		`SELECT id, name, email, message, created_at FROM contact_messages WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *SQLContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	var messages []*model.ContactMessage
	err := r.db.SelectContext(ctx, &messages,
		`SELECT id, name, email, message, created_at FROM contact_messages
		 ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	return messages, nil
}
