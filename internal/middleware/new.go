package middleware

import (
	"finance-assistant/config"
	"finance-assistant/pkg/log"
)

// Middleware bundles the HTTP middlewares with their dependencies.
type Middleware struct {
	l       log.Logger
	chatCfg config.ChatConfig
	limiter *rateLimiter
}

func New(l log.Logger, chatCfg config.ChatConfig) Middleware {
	return Middleware{
		l:       l,
		chatCfg: chatCfg,
		limiter: newRateLimiter(chatCfg.RateLimitPerMin),
	}
}
