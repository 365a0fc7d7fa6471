package problem

// Difficulty tiers accepted for stored and generated puzzles.
const (
	DifficultyEasy   = "EASY"
	DifficultyNormal = "NORMAL"
	DifficultyHard   = "HARD"
)

// ValidDifficulty reports whether s is one of the known tiers.
func ValidDifficulty(s string) bool {
	switch s {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	default:
		return false
	}
}

// Summary is the client-facing view of a puzzle. The hidden answer is never
// part of it.
type Summary struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Difficulty string `json:"difficulty"`
}

// Page is the listing envelope for /api/problems.
type Page struct {
	Content       []Summary `json:"content"`
	Page          int       `json:"page"`
	Size          int       `json:"size"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
}

// QueryResult is the outcome of asking a question about a puzzle. Answer is
// null unless the guess was correct.
type QueryResult struct {
	IsAnswer    bool    `json:"isAnswer"`
	QueryResult string  `json:"queryResult"`
	Answer      *string `json:"answer"`
}
