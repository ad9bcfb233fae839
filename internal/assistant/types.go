package assistant

import (
	"finance-assistant/internal/intent"
	"finance-assistant/internal/model"
)

// AnswerInput is the input for one answer request. The message travels
// inside the ChatContext together with the caller's data snapshot.
type AnswerInput struct {
	Context model.ChatContext
}

// AnswerOutput is the pipeline result.
type AnswerOutput struct {
	RequestID string
	Response  *model.ChatResponse
	Intent    intent.Intent
	RouteType intent.RouteType
	Shadow    *intent.ShadowRoute
}

// FeedbackInput reports which intent a request should have routed to.
type FeedbackInput struct {
	ExpectedIntent string
	ActualIntent   string
}
