package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

type problemStore interface {
	ListProblems(ctx context.Context, limit, offset int32) ([]Problem, error)
	CountProblems(ctx context.Context) (int64, error)
	GetProblem(ctx context.Context, id int64) (Problem, error)
	InsertProblem(ctx context.Context, arg InsertProblemParams) (int64, error)
}

// ProblemRepository exposes typed DB operations for puzzle records.
type ProblemRepository struct {
	store problemStore
}

func NewProblemRepository(store problemStore) *ProblemRepository {
	return &ProblemRepository{store: store}
}

// List returns one page of problems ordered by id.
func (r *ProblemRepository) List(ctx context.Context, limit, offset int32) ([]Problem, error) {
	return r.store.ListProblems(ctx, limit, offset)
}

// Count returns the total number of stored problems.
func (r *ProblemRepository) Count(ctx context.Context) (int64, error) {
	return r.store.CountProblems(ctx)
}

// Get fetches one problem by id, mapping an empty result to ErrNotFound.
func (r *ProblemRepository) Get(ctx context.Context, id int64) (Problem, error) {
	p, err := r.store.GetProblem(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return Problem{}, ErrNotFound
	}
	return p, err
}

// Insert persists a generated problem and returns the assigned id.
func (r *ProblemRepository) Insert(ctx context.Context, params InsertProblemParams) (int64, error) {
	return r.store.InsertProblem(ctx, params)
}
