package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Judgment is the model's verdict on a player's question or guess. Answer is
// populated with the puzzle's true answer only when IsAnswer is true; the
// redaction happens here, not in callers.
type Judgment struct {
	IsAnswer    bool
	QueryResult string
	Answer      string
}

// Story is a freshly generated puzzle, not yet persisted.
type Story struct {
	Title   string
	Content string
	Answer  string
}

// Placeholders substituted for generation fields the model omitted.
const (
	DefaultTitle   = "Default Title"
	DefaultContent = "Default Content"
	DefaultAnswer  = "Default Answer"
)

const fenceMarker = "```json"

type completionEnvelope struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// messageContent pulls the first choice's message text out of a raw
// chat-completion body.
func messageContent(body []byte) (string, error) {
	var env completionEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if len(env.Choices) == 0 || env.Choices[0].Message.Content == nil {
		return "", ErrMalformedEnvelope
	}
	return *env.Choices[0].Message.Content, nil
}

// stripFence removes a leading "```json" marker and a trailing "```" marker,
// each at most once, trimming whitespace around each removal. Unfenced text
// passes through untouched; markers anywhere else in the text are left alone.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, fenceMarker) {
		s = strings.TrimSpace(strings.TrimPrefix(s, fenceMarker))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

// payloadFields unwraps the envelope, strips fences and parses the inner JSON
// object into raw fields.
func payloadFields(body []byte) (map[string]json.RawMessage, error) {
	content, err := messageContent(body)
	if err != nil {
		return nil, err
	}
	text := []byte(stripFence(content))
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(text, &fields); err != nil {
		if !json.Valid(text) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		// Valid JSON that is not an object carries no fields; the per-shape
		// projection decides whether that is fatal.
	}
	return fields, nil
}

// ExtractJudgment parses a raw completion body into a Judgment. The "isAnswer"
// and "queryResult" fields are mandatory and type-checked; trueAnswer is
// attached only on a correct guess. A failure never yields a partial result.
func ExtractJudgment(body []byte, trueAnswer string) (Judgment, error) {
	fields, err := payloadFields(body)
	if err != nil {
		return Judgment{}, err
	}

	var isAnswer bool
	if raw, ok := fields["isAnswer"]; !ok || json.Unmarshal(raw, &isAnswer) != nil {
		return Judgment{}, &MissingFieldError{Field: "isAnswer"}
	}
	var queryResult string
	if raw, ok := fields["queryResult"]; !ok || json.Unmarshal(raw, &queryResult) != nil {
		return Judgment{}, &MissingFieldError{Field: "queryResult"}
	}

	result := Judgment{IsAnswer: isAnswer, QueryResult: queryResult}
	if isAnswer {
		result.Answer = trueAnswer
	}
	return result, nil
}

// ExtractStory parses a raw completion body into a Story. Unlike judgments,
// every field is optional: anything absent or unreadable falls back to a fixed
// placeholder so a generation round always yields a playable puzzle.
func ExtractStory(body []byte) (Story, error) {
	fields, err := payloadFields(body)
	if err != nil {
		return Story{}, err
	}
	return Story{
		Title:   stringOrDefault(fields, "title", DefaultTitle),
		Content: stringOrDefault(fields, "content", DefaultContent),
		Answer:  stringOrDefault(fields, "answer", DefaultAnswer),
	}, nil
}

func stringOrDefault(fields map[string]json.RawMessage, key, fallback string) string {
	raw, ok := fields[key]
	if !ok {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fallback
	}
	return s
}
