package quiz

import (
	"fmt"
	"strings"
)

const systemPromptTemplate = `Generate %d questions about the given topic. Include a mix of difficulties and types of questions.

Rules:
- Spread the questions across the "easy", "medium" and "hard" tiers.
- Give every question a short category naming the sub-topic it covers.
- Number the questions with consecutive ids starting at 1.
- For multiple-choice questions provide distinct options and set correctAnswer to the exact text of the correct option.
- Open questions may omit options.
- Reply with JSON only.`

// buildSystemPrompt returns the fixed instruction for a batch of count questions.
func buildSystemPrompt(count int) string {
	return fmt.Sprintf(systemPromptTemplate, count)
}

// buildUserMessage interpolates the topic verbatim.
func buildUserMessage(topic string) string {
	var b strings.Builder
	b.WriteString("Generate questions about: ")
	b.WriteString(topic)
	return b.String()
}
