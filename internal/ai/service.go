package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/haeun-dev/seaturtle-soup/internal/db/repository"
)

type templateSource interface {
	TemplateByPurpose(ctx context.Context, purpose string) (string, error)
}

type completer interface {
	Complete(ctx context.Context, prompt string) ([]byte, error)
}

// Service holds the judging and generation adapters: template lookup, literal
// substitution, one transport round-trip, shape extraction.
type Service struct {
	templates templateSource
	client    completer
	logger    zerolog.Logger
}

func NewService(templates templateSource, client completer, logger zerolog.Logger) *Service {
	return &Service{
		templates: templates,
		client:    client,
		logger:    logger.With().Str("component", "ai_service").Logger(),
	}
}

// JudgeQuestion asks the model whether question matches the puzzle's hidden
// answer, given the puzzle narrative for context.
func (s *Service) JudgeQuestion(ctx context.Context, content, answer, question string) (Judgment, error) {
	prompt, err := s.buildPrompt(ctx, PurposeJudgeQuestion, map[string]string{
		PlaceholderContent:  content,
		PlaceholderAnswer:   answer,
		PlaceholderQuestion: question,
	})
	if err != nil {
		return Judgment{}, err
	}

	raw, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return Judgment{}, err
	}

	judgment, err := ExtractJudgment(raw, answer)
	if err != nil {
		extractionFailures.WithLabelValues("judgment").Inc()
		s.logger.Warn().Err(err).Msg("judgment extraction failed")
		return Judgment{}, err
	}
	return judgment, nil
}

// GenerateStory asks the model to author a new puzzle at the given difficulty.
func (s *Service) GenerateStory(ctx context.Context, difficulty string) (Story, error) {
	prompt, err := s.buildPrompt(ctx, PurposeGenerateStory, map[string]string{
		PlaceholderDifficulty: difficulty,
	})
	if err != nil {
		return Story{}, err
	}

	raw, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return Story{}, err
	}

	story, err := ExtractStory(raw)
	if err != nil {
		extractionFailures.WithLabelValues("generation").Inc()
		s.logger.Warn().Err(err).Msg("story extraction failed")
		return Story{}, err
	}
	return story, nil
}

func (s *Service) buildPrompt(ctx context.Context, purpose string, vars map[string]string) (string, error) {
	body, err := s.templates.TemplateByPurpose(ctx, purpose)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: purpose %s", ErrTemplateNotFound, purpose)
		}
		return "", fmt.Errorf("load template %s: %w", purpose, err)
	}
	return fillTemplate(body, vars), nil
}
