package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"finance-assistant/internal/assistant"
	"finance-assistant/internal/model"
	"finance-assistant/pkg/response"
)

// chatRequest is the POST /api/v1/chat body.
type chatRequest struct {
	ConversationID string            `json:"conversation_id" binding:"required"`
	UserID         string            `json:"user_id"`
	Locale         string            `json:"locale"`
	Currency       string            `json:"currency"`
	Context        model.ChatContext `json:"context" binding:"required"`
}

// chatResponse is the envelope data for a chat answer.
type chatResponse struct {
	RequestID string              `json:"request_id"`
	Intent    string              `json:"intent"`
	RouteType string              `json:"route_type"`
	Response  *model.ChatResponse `json:"response"`
}

// Chat handles POST /api/v1/chat.
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "invalid chat request: %v", err)
		response.Error(c, err, nil)
		return
	}

	sc := model.Scope{
		UserID:         req.UserID,
		ConversationID: req.ConversationID,
		Locale:         req.Locale,
		Currency:       req.Currency,
	}

	out, err := h.uc.Answer(ctx, sc, assistant.AnswerInput{Context: req.Context})
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyMessage) {
			response.Error(c, err, nil)
			return
		}
		h.l.Errorf(ctx, "answer failed: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, chatResponse{
		RequestID: out.RequestID,
		Intent:    string(out.Intent),
		RouteType: string(out.RouteType),
		Response:  out.Response,
	})
}

// feedbackRequest is the POST /api/v1/chat/feedback body.
type feedbackRequest struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	ExpectedIntent string `json:"expected_intent" binding:"required"`
	ActualIntent   string `json:"actual_intent" binding:"required"`
}

// Feedback handles POST /api/v1/chat/feedback.
func (h *handler) Feedback(c *gin.Context) {
	ctx := c.Request.Context()

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "invalid feedback request: %v", err)
		response.Error(c, err, nil)
		return
	}

	sc := model.Scope{ConversationID: req.ConversationID}
	if err := h.uc.Feedback(ctx, sc, assistant.FeedbackInput{
		ExpectedIntent: req.ExpectedIntent,
		ActualIntent:   req.ActualIntent,
	}); err != nil {
		response.Error(c, err, nil)
		return
	}

	response.OK(c, gin.H{"applied": true})
}
