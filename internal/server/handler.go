package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/quiz"
)

// maxBodyBytes caps the POST /questions body.
const maxBodyBytes = 64 << 10

// Generator produces a question batch for a validated topic.
type Generator interface {
	Generate(ctx context.Context, req quiz.TopicRequest) (quiz.Batch, error)
}

// QuestionHandler serves the question endpoints.
type QuestionHandler struct {
	validator *quiz.RequestValidator
	generator Generator
	now       func() time.Time
}

// NewQuestionHandler creates a QuestionHandler.
func NewQuestionHandler(v *quiz.RequestValidator, g Generator) *QuestionHandler {
	return &QuestionHandler{validator: v, generator: g, now: time.Now}
}

// Health handles GET /health.
func (h *QuestionHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthBody{
		Status:    "OK",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
	})
}

// Generate handles POST /questions.
func (h *QuestionHandler) Generate(c *gin.Context) {
	log := requestLogger(c).With().Str("state", string(quiz.StateReceived)).Logger()

	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		reason := "body could not be read"
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			reason = "body is too large"
		}
		failValidation(c, &quiz.ValidationError{Fields: []quiz.FieldError{{Field: "body", Reason: reason}}})
		return
	}

	req, verr := h.validator.Parse(raw)
	if verr != nil {
		log.Info().
			Str("state", string(quiz.StateValidatingInput)).
			Str("kind", string(quiz.KindValidation)).
			Err(verr).
			Msg("request rejected")
		failValidation(c, verr)
		return
	}

	ctx := llm.WithRequestID(c.Request.Context(), c.GetString(ctxKeyRequestID))
	batch, err := h.generator.Generate(ctx, req)
	if err != nil {
		// The gateway has already logged the failure with its kind.
		failGeneration(c, err)
		return
	}

	if batch == nil {
		batch = quiz.Batch{}
	}
	c.JSON(http.StatusOK, batch)
}
