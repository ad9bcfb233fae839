package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	chatDelivery "finance-assistant/internal/assistant/delivery/http"
)

func (srv *HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
	return nil
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
}

// registerDomainRoutes registers all domain routes under /api/v1.
func (srv *HTTPServer) registerDomainRoutes() {
	ctx := context.Background()

	api := srv.gin.Group("/api/v1")
	chatDelivery.RegisterRoutes(api.Group("/chat"), srv.chatHandler, srv.mw.RateLimit())
	srv.l.Infof(ctx, "Chat routes registered at POST /api/v1/chat")

	if srv.testHandler != nil {
		api.POST("/test/route", srv.testHandler.HandleRouteTest)
		srv.l.Infof(ctx, "Route dry-run registered at POST /api/v1/test/route")
	}
}
