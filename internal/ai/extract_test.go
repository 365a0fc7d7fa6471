package ai

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func envelope(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	assert.NoError(t, err)
	return body
}

func TestExtractJudgmentCorrectGuess(t *testing.T) {
	body := []byte(`{"choices":[{"message":{"content":"` + "```" + `json\n{\"isAnswer\":true,\"queryResult\":\"Correct!\"}\n` + "```" + `"}}]}`)

	judgment, err := ExtractJudgment(body, "a turtle")
	assert.NoError(t, err)
	assert.Equal(t, Judgment{IsAnswer: true, QueryResult: "Correct!", Answer: "a turtle"}, judgment)
}

func TestExtractJudgmentWrongGuessRedactsAnswer(t *testing.T) {
	body := envelope(t, "```json\n{\"isAnswer\":false,\"queryResult\":\"No, keep asking.\"}\n```")

	judgment, err := ExtractJudgment(body, "a turtle")
	assert.NoError(t, err)
	assert.False(t, judgment.IsAnswer)
	assert.Equal(t, "No, keep asking.", judgment.QueryResult)
	assert.Empty(t, judgment.Answer, "answer must never leak on a wrong guess")
}

func TestExtractJudgmentFencingIsIdempotent(t *testing.T) {
	payload := `{"isAnswer":true,"queryResult":"Yes!"}`

	variants := map[string]string{
		"plain":         payload,
		"fenced":        "```json\n" + payload + "\n```",
		"leading only":  "```json\n" + payload,
		"trailing only": payload + "\n```",
		"padded":        "  \n```json\n  " + payload + "  \n```  \n",
	}

	want, err := ExtractJudgment(envelope(t, payload), "soup")
	assert.NoError(t, err)

	for name, content := range variants {
		got, err := ExtractJudgment(envelope(t, content), "soup")
		assert.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestExtractJudgmentKeepsInnerBackticks(t *testing.T) {
	payload := `{"isAnswer":false,"queryResult":"the ` + "```json" + ` marker means a code fence"}`

	judgment, err := ExtractJudgment(envelope(t, payload), "soup")
	assert.NoError(t, err)
	assert.Equal(t, "the ```json marker means a code fence", judgment.QueryResult)
}

func TestExtractJudgmentMissingFields(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		field   string
	}{
		{"isAnswer absent", `{"queryResult":"hm"}`, "isAnswer"},
		{"isAnswer wrong type", `{"isAnswer":"yes","queryResult":"hm"}`, "isAnswer"},
		{"queryResult absent", `{"isAnswer":true}`, "queryResult"},
		{"queryResult wrong type", `{"isAnswer":true,"queryResult":42}`, "queryResult"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExtractJudgment(envelope(t, tc.payload), "soup")
			var missing *MissingFieldError
			assert.ErrorAs(t, err, &missing)
			assert.Equal(t, tc.field, missing.Field)
		})
	}
}

func TestExtractJudgmentMalformedPayload(t *testing.T) {
	for _, content := range []string{"not json at all", "```json\n{oops\n```"} {
		_, err := ExtractJudgment(envelope(t, content), "soup")
		assert.ErrorIs(t, err, ErrMalformedPayload, content)
	}
}

func TestExtractNonObjectPayload(t *testing.T) {
	// Valid JSON without fields: fatal for judgments, all defaults for stories.
	_, err := ExtractJudgment(envelope(t, "[1,2,3]"), "soup")
	var missing *MissingFieldError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, "isAnswer", missing.Field)

	story, err := ExtractStory(envelope(t, "[1,2,3]"))
	assert.NoError(t, err)
	assert.Equal(t, Story{Title: DefaultTitle, Content: DefaultContent, Answer: DefaultAnswer}, story)
}

func TestExtractJudgmentMalformedEnvelope(t *testing.T) {
	bodies := [][]byte{
		[]byte(`not json`),
		[]byte(`{}`),
		[]byte(`{"choices":[]}`),
		[]byte(`{"choices":[{"message":{}}]}`),
	}
	for _, body := range bodies {
		_, err := ExtractJudgment(body, "soup")
		assert.ErrorIs(t, err, ErrMalformedEnvelope, string(body))
	}
}

func TestExtractStoryDefaults(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    Story
	}{
		{
			"all fields present",
			`{"title":"The Lighthouse","content":"A man at sea.","answer":"He was the keeper."}`,
			Story{Title: "The Lighthouse", Content: "A man at sea.", Answer: "He was the keeper."},
		},
		{
			"title only",
			`{"title":"The Lighthouse"}`,
			Story{Title: "The Lighthouse", Content: DefaultContent, Answer: DefaultAnswer},
		},
		{
			"answer only",
			`{"answer":"He was the keeper."}`,
			Story{Title: DefaultTitle, Content: DefaultContent, Answer: "He was the keeper."},
		},
		{
			"empty object",
			`{}`,
			Story{Title: DefaultTitle, Content: DefaultContent, Answer: DefaultAnswer},
		},
		{
			"wrong type falls back",
			`{"title":7,"content":"A man at sea."}`,
			Story{Title: DefaultTitle, Content: "A man at sea.", Answer: DefaultAnswer},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			story, err := ExtractStory(envelope(t, tc.payload))
			assert.NoError(t, err)
			assert.Equal(t, tc.want, story)
		})
	}
}

func TestExtractStoryFenced(t *testing.T) {
	content := "```json\n{\"title\":\"The Elevator\",\"content\":\"She rides to floor 7.\",\"answer\":\"She cannot reach the top button.\"}\n```"

	story, err := ExtractStory(envelope(t, content))
	assert.NoError(t, err)
	assert.Equal(t, "The Elevator", story.Title)
	assert.Equal(t, "She cannot reach the top button.", story.Answer)
}

func TestExtractStoryMalformed(t *testing.T) {
	_, err := ExtractStory(envelope(t, "nope"))
	assert.ErrorIs(t, err, ErrMalformedPayload)

	_, err = ExtractStory([]byte(`{"choices":[]}`))
	assert.ErrorIs(t, err, ErrMalformedEnvelope)
}

func TestMissingFieldErrorMessage(t *testing.T) {
	err := error(&MissingFieldError{Field: "isAnswer"})
	assert.Contains(t, err.Error(), `"isAnswer"`)
	assert.False(t, errors.Is(err, ErrMalformedPayload))
}
