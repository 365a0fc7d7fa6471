package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillTemplateReplacesAllOccurrences(t *testing.T) {
	body := "Story: {content}\nAgain: {content}\nAnswer: {answer}"

	got := fillTemplate(body, map[string]string{
		PlaceholderContent: "a man orders soup",
		PlaceholderAnswer:  "he was a castaway",
	})

	assert.Equal(t, "Story: a man orders soup\nAgain: a man orders soup\nAnswer: he was a castaway", got)
}

func TestFillTemplateLeavesUnmatchedTokensVerbatim(t *testing.T) {
	body := "difficulty={difficulty} question={question}"

	got := fillTemplate(body, map[string]string{PlaceholderDifficulty: "EASY"})

	assert.Equal(t, "difficulty=EASY question={question}", got)
}

func TestFillTemplateDoesNotEscapeSubstitutedText(t *testing.T) {
	// A placeholder-shaped substring inside puzzle text is substituted
	// literally and then left alone.
	got := fillTemplate("{content}", map[string]string{
		PlaceholderContent: "the note read {answer}",
	})

	assert.Equal(t, "the note read {answer}", got)
}

func TestConversationShape(t *testing.T) {
	messages := conversation("judge this")

	assert.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, systemInstruction, messages[0].Content)
	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, "judge this", messages[1].Content)
}
