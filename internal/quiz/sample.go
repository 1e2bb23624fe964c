package quiz

import (
	"encoding/json"
	"fmt"
)

var sampleCategories = []string{"Fundamentals", "Applications", "History"}

// SampleReply returns a well-formed model reply with count placeholder
// questions, cycling through the difficulty tiers. Every third question is
// open-ended. It backs the offline mock provider, which answers every topic
// with the same batch.
func SampleReply(count int) json.RawMessage {
	tiers := []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
	batch := make(Batch, 0, count)
	for i := range count {
		q := Question{
			ID:         i + 1,
			Question:   fmt.Sprintf("Sample question %d?", i+1),
			Difficulty: tiers[i%len(tiers)],
			Category:   sampleCategories[i%len(sampleCategories)],
		}
		if (i+1)%3 == 0 {
			q.CorrectAnswer = "Any reasoned answer."
		} else {
			q.Options = []string{"Option A", "Option B", "Option C", "Option D"}
			q.CorrectAnswer = "Option A"
		}
		batch = append(batch, q)
	}
	out, _ := json.Marshal(map[string]any{"questions": batch})
	return out
}
