// Package quiz turns a free-text topic into a validated batch of quiz
// questions. It owns the inbound request contract and the gateway to the
// external model; HTTP and CLI surfaces are thin wrappers around it.
package quiz

// Question is one generated quiz question, shaped for direct rendering.
type Question struct {
	// ID is the 1-based position of the question within its batch.
	// It is not stable across calls.
	ID int `json:"id"`

	// Question is the prompt shown to the user. Never blank.
	Question string `json:"question"`

	Difficulty Difficulty `json:"difficulty"`

	// Category is a free-text label such as "Architecture". Never blank.
	Category string `json:"category"`

	// Options holds distinct answer choices in display order.
	// Nil for open-response questions.
	Options []string `json:"options,omitempty"`

	// CorrectAnswer is normally one of Options for multiple-choice
	// questions. Empty when the model did not supply one.
	CorrectAnswer string `json:"correctAnswer,omitempty"`
}

// Difficulty is the closed set of difficulty tiers.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Batch is the ordered result of one generation call.
type Batch []Question

// TopicRequest is a validated inbound request.
type TopicRequest struct {
	// Topic is trimmed and non-empty.
	Topic string `json:"topic"`
}
