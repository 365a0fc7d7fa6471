package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// ErrNotFound is returned when a point lookup resolves no row.
var ErrNotFound = errors.New("record not found")

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx alike.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries bundles the hand-written SQL for the soup schema.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Problem mirrors a row of the problems table.
type Problem struct {
	ID         int64
	Title      string
	Content    string
	Answer     string
	Difficulty string
	CreatedAt  pgtype.Timestamptz
}

// Prompt mirrors a row of the prompts table.
type Prompt struct {
	ID      int64
	Purpose string
	Body    string
}

// InsertProblemParams carries the columns for a new problem row; the id is
// store-assigned.
type InsertProblemParams struct {
	Title      string
	Content    string
	Answer     string
	Difficulty string
}

const listProblemsSQL = `
SELECT id, title, content, answer, difficulty, created_at
FROM problems
ORDER BY id
LIMIT $1 OFFSET $2`

func (q *Queries) ListProblems(ctx context.Context, limit, offset int32) ([]Problem, error) {
	rows, err := q.db.Query(ctx, listProblemsSQL, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var problems []Problem
	for rows.Next() {
		var p Problem
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Answer, &p.Difficulty, &p.CreatedAt); err != nil {
			return nil, err
		}
		problems = append(problems, p)
	}
	return problems, rows.Err()
}

const countProblemsSQL = `SELECT count(*) FROM problems`

func (q *Queries) CountProblems(ctx context.Context) (int64, error) {
	var total int64
	err := q.db.QueryRow(ctx, countProblemsSQL).Scan(&total)
	return total, err
}

const getProblemSQL = `
SELECT id, title, content, answer, difficulty, created_at
FROM problems
WHERE id = $1`

func (q *Queries) GetProblem(ctx context.Context, id int64) (Problem, error) {
	var p Problem
	err := q.db.QueryRow(ctx, getProblemSQL, id).
		Scan(&p.ID, &p.Title, &p.Content, &p.Answer, &p.Difficulty, &p.CreatedAt)
	return p, err
}

const insertProblemSQL = `
INSERT INTO problems (title, content, answer, difficulty)
VALUES ($1, $2, $3, $4)
RETURNING id`

func (q *Queries) InsertProblem(ctx context.Context, arg InsertProblemParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, insertProblemSQL, arg.Title, arg.Content, arg.Answer, arg.Difficulty).Scan(&id)
	return id, err
}

const getPromptByPurposeSQL = `
SELECT id, purpose, body
FROM prompts
WHERE purpose = $1
ORDER BY id
LIMIT 1`

func (q *Queries) GetPromptByPurpose(ctx context.Context, purpose string) (Prompt, error) {
	var p Prompt
	err := q.db.QueryRow(ctx, getPromptByPurposeSQL, purpose).Scan(&p.ID, &p.Purpose, &p.Body)
	return p, err
}
