package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/quizgen/internal/quiz"
)

const (
	msgValidationFailed = "Validation failed"
	msgGenerationFailed = "Failed to generate questions"
)

// validationBody is the 400 envelope.
type validationBody struct {
	Error   string            `json:"error"`
	Details []quiz.FieldError `json:"details"`
}

// failureBody is the 500 envelope.
type failureBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// healthBody is the GET /health payload.
type healthBody struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func failValidation(c *gin.Context, ve *quiz.ValidationError) {
	c.JSON(http.StatusBadRequest, validationBody{Error: msgValidationFailed, Details: ve.Fields})
}

func failGeneration(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, failureBody{Error: msgGenerationFailed, Details: err.Error()})
}
