package quiz

import (
	"encoding/json"

	"github.com/abhisek/quizgen/internal/llm"
)

// QuestionBatchSchema is the output contract sent to the model.
// Structured-output APIs require an object root, so the questions are
// wrapped in a "questions" array, and Anthropic requires every object to
// close its properties. Keywords that some vendors reject (minLength,
// minimum, uniqueItems) are left out and enforced by normalize instead.
var QuestionBatchSchema = &llm.Schema{
	Name:        "question-batch",
	Description: "A batch of quiz questions about a single topic",
	Definition:  questionBatchDefinition(false),
}

// replySchema is what a reply is checked against. It accepts null for the
// optional fields, which models often emit instead of leaving them out,
// and tolerates extra properties; both are dropped on decode.
var replySchema = &llm.Schema{
	Name:        "question-batch-reply",
	Description: QuestionBatchSchema.Description,
	Definition:  questionBatchDefinition(true),
}

func questionBatchDefinition(lenient bool) map[string]any {
	optional := func(typ string) any {
		if lenient {
			return []any{typ, "null"}
		}
		return typ
	}

	item := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type":        "integer",
				"description": "Position of the question in the batch, starting at 1",
			},
			"question": map[string]any{
				"type":        "string",
				"description": "The question text shown to the user",
			},
			"difficulty": map[string]any{
				"type":        "string",
				"enum":        []any{"easy", "medium", "hard"},
				"description": "Difficulty tier of the question",
			},
			"category": map[string]any{
				"type":        "string",
				"description": "Short sub-topic label, e.g. \"Architecture\"",
			},
			"options": map[string]any{
				"type": optional("array"),
				"items": map[string]any{
					"type": "string",
				},
				"description": "Distinct answer choices for multiple-choice questions. Omit for open questions.",
			},
			"correctAnswer": map[string]any{
				"type":        optional("string"),
				"description": "The correct answer. For multiple choice, the exact text of one option.",
			},
		},
		"required": []any{"id", "question", "difficulty", "category"},
	}
	root := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":  "array",
				"items": item,
			},
		},
		"required": []any{"questions"},
	}
	if !lenient {
		item["additionalProperties"] = false
		root["additionalProperties"] = false
	}
	return root
}

// batchOutput is the decoded model reply.
type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

// questionOutput is one raw question before normalization. ID stays a
// json.Number because models sometimes write integral ids as 1.0; it is
// renumbered anyway.
type questionOutput struct {
	ID            json.Number `json:"id"`
	Question      string      `json:"question"`
	Difficulty    string      `json:"difficulty"`
	Category      string      `json:"category"`
	Options       []string    `json:"options"`
	CorrectAnswer string      `json:"correctAnswer"`
}
