package http

import (
	"github.com/gin-gonic/gin"

	"finance-assistant/internal/assistant"
	pkgLog "finance-assistant/pkg/log"
)

// Handler is the interface for the assistant HTTP delivery handler.
type Handler interface {
	Chat(c *gin.Context)
	Feedback(c *gin.Context)
}

type handler struct {
	l  pkgLog.Logger
	uc assistant.UseCase
}

// New creates a new assistant delivery handler.
func New(l pkgLog.Logger, uc assistant.UseCase) Handler {
	return &handler{l: l, uc: uc}
}

// RegisterRoutes mounts the chat endpoints on the given group.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, middlewares ...gin.HandlerFunc) {
	rg.Use(middlewares...)
	rg.POST("", h.Chat)
	rg.POST("/feedback", h.Feedback)
}
