package ai

import "strings"

// Template purposes as stored in the prompts table.
const (
	PurposeJudgeQuestion = "JUDGE_QUESTION"
	PurposeGenerateStory = "GENERATE_STORY"
)

// Placeholder tokens used inside stored template bodies.
const (
	PlaceholderContent    = "{content}"
	PlaceholderAnswer     = "{answer}"
	PlaceholderQuestion   = "{question}"
	PlaceholderDifficulty = "{difficulty}"
)

const systemInstruction = "You are the game master of a Sea Turtle Soup lateral thinking game. You must respond in JSON format only."

// fillTemplate substitutes placeholder tokens with literal find-and-replace.
// Every occurrence of a token is replaced; tokens without a value stay
// verbatim, and no escaping of the substituted text happens.
func fillTemplate(body string, vars map[string]string) string {
	for token, value := range vars {
		body = strings.ReplaceAll(body, token, value)
	}
	return body
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// conversation builds the fixed two-message exchange sent on every call: the
// static system instruction followed by the substituted user prompt.
func conversation(prompt string) []chatMessage {
	return []chatMessage{
		{Role: "system", Content: systemInstruction},
		{Role: "user", Content: prompt},
	}
}
