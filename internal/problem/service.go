package problem

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/haeun-dev/seaturtle-soup/internal/ai"
	"github.com/haeun-dev/seaturtle-soup/internal/db/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ErrInvalidDifficulty rejects generation requests outside the known tiers.
var ErrInvalidDifficulty = errors.New("unknown difficulty")

type problemRepo interface {
	List(ctx context.Context, limit, offset int32) ([]repository.Problem, error)
	Count(ctx context.Context) (int64, error)
	Get(ctx context.Context, id int64) (repository.Problem, error)
	Insert(ctx context.Context, params repository.InsertProblemParams) (int64, error)
}

type gameMaster interface {
	JudgeQuestion(ctx context.Context, content, answer, question string) (ai.Judgment, error)
	GenerateStory(ctx context.Context, difficulty string) (ai.Story, error)
}

type detailCache interface {
	Get(ctx context.Context, id int64) (*repository.Problem, error)
	Set(ctx context.Context, p repository.Problem) error
}

// Service orchestrates the puzzle workflow: listing, detail, judged questions
// and on-demand generation.
type Service struct {
	problems problemRepo
	master   gameMaster
	cache    detailCache
	logger   zerolog.Logger
}

// NewService wires the workflow. cache may be nil when Redis is not
// configured.
func NewService(problems problemRepo, master gameMaster, cache detailCache, logger zerolog.Logger) *Service {
	return &Service{
		problems: problems,
		master:   master,
		cache:    cache,
		logger:   logger.With().Str("component", "problem_service").Logger(),
	}
}

// List returns one page of puzzle summaries.
func (s *Service) List(ctx context.Context, page, size int) (Page, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	rows, err := s.problems.List(ctx, int32(size), int32(page*size))
	if err != nil {
		return Page{}, fmt.Errorf("list problems: %w", err)
	}
	total, err := s.problems.Count(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("count problems: %w", err)
	}

	summaries := make([]Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, toSummary(row))
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return Page{
		Content:       summaries,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// Get returns a single puzzle summary; repository.ErrNotFound passes through.
func (s *Service) Get(ctx context.Context, id int64) (Summary, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return Summary{}, err
	}
	return toSummary(row), nil
}

// Ask loads the puzzle and lets the game master judge the player's question.
func (s *Service) Ask(ctx context.Context, id int64, question string) (QueryResult, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return QueryResult{}, err
	}

	judgment, err := s.master.JudgeQuestion(ctx, row.Content, row.Answer, question)
	if err != nil {
		return QueryResult{}, err
	}

	result := QueryResult{
		IsAnswer:    judgment.IsAnswer,
		QueryResult: judgment.QueryResult,
	}
	if judgment.IsAnswer {
		answer := judgment.Answer
		result.Answer = &answer
	}
	return result, nil
}

// Make generates a new puzzle at the given difficulty and persists it,
// returning the assigned id.
func (s *Service) Make(ctx context.Context, difficulty string) (int64, error) {
	if !ValidDifficulty(difficulty) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidDifficulty, difficulty)
	}

	story, err := s.master.GenerateStory(ctx, difficulty)
	if err != nil {
		return 0, err
	}

	id, err := s.problems.Insert(ctx, repository.InsertProblemParams{
		Title:      story.Title,
		Content:    story.Content,
		Answer:     story.Answer,
		Difficulty: difficulty,
	})
	if err != nil {
		return 0, fmt.Errorf("insert problem: %w", err)
	}
	return id, nil
}

// load fetches a full problem row, consulting the cache first when present.
func (s *Service) load(ctx context.Context, id int64) (repository.Problem, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err != nil {
			s.logger.Warn().Err(err).Int64("problem_id", id).Msg("cache read failed")
		} else if cached != nil {
			return *cached, nil
		}
	}

	row, err := s.problems.Get(ctx, id)
	if err != nil {
		return repository.Problem{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, row); err != nil {
			s.logger.Warn().Err(err).Int64("problem_id", id).Msg("cache write failed")
		}
	}
	return row, nil
}

func toSummary(row repository.Problem) Summary {
	return Summary{
		ID:         row.ID,
		Title:      row.Title,
		Content:    row.Content,
		Difficulty: row.Difficulty,
	}
}
