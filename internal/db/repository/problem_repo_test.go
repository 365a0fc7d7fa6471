package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockProblemStore struct {
	mock.Mock
}

func (m *mockProblemStore) ListProblems(ctx context.Context, limit, offset int32) ([]Problem, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]Problem), args.Error(1)
}

func (m *mockProblemStore) CountProblems(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProblemStore) GetProblem(ctx context.Context, id int64) (Problem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Problem), args.Error(1)
}

func (m *mockProblemStore) InsertProblem(ctx context.Context, arg InsertProblemParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func TestProblemRepository_List(t *testing.T) {
	store := new(mockProblemStore)
	repo := NewProblemRepository(store)

	expect := []Problem{{ID: 1, Title: "The Lighthouse"}, {ID: 2, Title: "The Elevator"}}
	store.On("ListProblems", mock.Anything, int32(10), int32(20)).Return(expect, nil)
	store.On("CountProblems", mock.Anything).Return(int64(42), nil)

	got, err := repo.List(context.Background(), 10, 20)
	assert.NoError(t, err)
	assert.Equal(t, expect, got)

	total, err := repo.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(42), total)
	store.AssertExpectations(t)
}

func TestProblemRepository_GetMapsNoRows(t *testing.T) {
	store := new(mockProblemStore)
	repo := NewProblemRepository(store)

	store.On("GetProblem", mock.Anything, int64(7)).Return(Problem{}, pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
	store.AssertExpectations(t)
}

func TestProblemRepository_GetPassesOtherErrors(t *testing.T) {
	store := new(mockProblemStore)
	repo := NewProblemRepository(store)

	boom := errors.New("connection reset")
	store.On("GetProblem", mock.Anything, int64(7)).Return(Problem{}, boom)

	_, err := repo.Get(context.Background(), 7)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestProblemRepository_Insert(t *testing.T) {
	store := new(mockProblemStore)
	repo := NewProblemRepository(store)

	params := InsertProblemParams{
		Title:      "The Dock",
		Content:    "A boat never arrives.",
		Answer:     "It sank years ago.",
		Difficulty: "NORMAL",
	}
	store.On("InsertProblem", mock.Anything, params).Return(int64(11), nil)

	id, err := repo.Insert(context.Background(), params)
	assert.NoError(t, err)
	assert.Equal(t, int64(11), id)
	store.AssertExpectations(t)
}
