package quiz

import (
	"fmt"
	"slices"
	"strings"
)

// normalize turns decoded model output into a Batch. It trims text fields,
// drops duplicate and blank options, and renumbers ids 1..n in reply order.
// Blank question or category text is a schema violation. A correctAnswer
// outside options is one too when strict is set; otherwise it is reported
// as a correction. Corrections describe every change made.
func normalize(in []questionOutput, strict bool) (Batch, []string, error) {
	batch := make(Batch, 0, len(in))
	var corrections []string

	for i, raw := range in {
		pos := i + 1
		q := Question{
			ID:            pos,
			Question:      strings.TrimSpace(raw.Question),
			Difficulty:    Difficulty(raw.Difficulty),
			Category:      strings.TrimSpace(raw.Category),
			CorrectAnswer: strings.TrimSpace(raw.CorrectAnswer),
		}

		if q.Question == "" {
			return nil, nil, fmt.Errorf("question %d: question text is blank", pos)
		}
		if q.Category == "" {
			return nil, nil, fmt.Errorf("question %d: category is blank", pos)
		}
		if !q.Difficulty.Valid() {
			return nil, nil, fmt.Errorf("question %d: unknown difficulty %q", pos, raw.Difficulty)
		}

		if id, err := raw.ID.Float64(); err != nil || id != float64(pos) {
			corrections = append(corrections, fmt.Sprintf("question %d: id %s renumbered", pos, raw.ID))
		}

		opts, dropped := dedupOptions(raw.Options)
		if dropped > 0 {
			corrections = append(corrections, fmt.Sprintf("question %d: dropped %d duplicate or blank options", pos, dropped))
		}
		q.Options = opts

		if q.CorrectAnswer != "" && len(q.Options) > 0 && !slices.Contains(q.Options, q.CorrectAnswer) {
			if strict {
				return nil, nil, fmt.Errorf("question %d: correctAnswer %q is not one of the options", pos, q.CorrectAnswer)
			}
			corrections = append(corrections, fmt.Sprintf("question %d: correctAnswer is not one of the options", pos))
		}

		batch = append(batch, q)
	}

	return batch, corrections, nil
}

// dedupOptions trims options and keeps the first occurrence of each.
// An empty result is nil so the field is omitted on output.
func dedupOptions(options []string) ([]string, int) {
	if len(options) == 0 {
		return nil, 0
	}
	seen := make(map[string]bool, len(options))
	out := make([]string, 0, len(options))
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	dropped := len(options) - len(out)
	if len(out) == 0 {
		return nil, dropped
	}
	return out, dropped
}
