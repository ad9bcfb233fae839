package test

import (
	"github.com/gin-gonic/gin"

	"finance-assistant/internal/intent"
	pkgLog "finance-assistant/pkg/log"
)

// Handler is the interface for the route dry-run handler
type Handler interface {
	HandleRouteTest(c *gin.Context)
}

type handler struct {
	l      pkgLog.Logger
	router *intent.Router
	cal    *intent.Calibrator
}

// New creates a new route dry-run handler
func New(l pkgLog.Logger, router *intent.Router, cal *intent.Calibrator) Handler {
	return &handler{
		l:      l,
		router: router,
		cal:    cal,
	}
}
