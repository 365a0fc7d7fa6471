package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

type promptStore interface {
	GetPromptByPurpose(ctx context.Context, purpose string) (Prompt, error)
}

// PromptRepository provides read-only access to stored prompt templates.
// At most one template is expected per purpose; when several exist the one
// with the lowest id wins.
type PromptRepository struct {
	store promptStore
}

func NewPromptRepository(store promptStore) *PromptRepository {
	return &PromptRepository{store: store}
}

// TemplateByPurpose returns the template body for a purpose, or ErrNotFound.
func (r *PromptRepository) TemplateByPurpose(ctx context.Context, purpose string) (string, error) {
	p, err := r.store.GetPromptByPurpose(ctx, purpose)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return p.Body, nil
}
