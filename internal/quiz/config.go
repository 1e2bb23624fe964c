package quiz

import "time"

// DefaultMaxTopicLength bounds the topic in runes. The limit belongs to
// the RequestValidator, not the Gateway.
const DefaultMaxTopicLength = 500

// Config controls the behavior of the Gateway.
type Config struct {
	// QuestionCount is the number of questions requested from the model.
	// The model may return more or fewer; the difference is logged.
	QuestionCount int

	// MaxTokens is the token budget for the model response.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// StrictAnswers rejects a batch when a multiple-choice question's
	// correctAnswer is not one of its options. When false the mismatch is
	// only logged.
	StrictAnswers bool

	// Timeout bounds a single generation, retries included. Zero means the
	// caller's context is the only limit.
	Timeout time.Duration
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		QuestionCount: 10,
		MaxTokens:     4096,
		Temperature:   0.7,
		StrictAnswers: false,
	}
}
