package assistant

import (
	"context"

	"finance-assistant/internal/model"
)

// UseCase defines the business logic interface for the assistant domain.
type UseCase interface {
	// Answer runs the full answer pipeline for one user message and always
	// produces a usable ChatResponse; errors are reserved for invalid input.
	Answer(ctx context.Context, sc model.Scope, input AnswerInput) (AnswerOutput, error)

	// Feedback applies routing feedback to the online calibration.
	Feedback(ctx context.Context, sc model.Scope, input FeedbackInput) error
}
