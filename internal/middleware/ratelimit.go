package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	pkgResponse "finance-assistant/pkg/response"
)

// maxPeekBytes bounds how much of a request body the limiter will buffer to
// find the conversation id.
const maxPeekBytes = 1 << 16

// RateLimit throttles chat requests per conversation. The id is taken from
// the X-Conversation-ID header or conversation_id query param when present,
// otherwise peeked from the JSON body the chat handler binds; unidentified
// requests share one bucket per client IP.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Conversation-ID")
		if key == "" {
			key = c.Query("conversation_id")
		}
		if key == "" {
			key = peekConversationID(c)
		}
		if key == "" {
			key = c.ClientIP()
		}

		if err := m.limiter.Allow(key); err != nil {
			m.l.Warnf(c.Request.Context(), "rate limited: %v", err)
			pkgResponse.TooManyRequests(c)
			return
		}

		c.Next()
	}
}

// peekConversationID reads the body for the conversation_id field and
// restores it so the handler can still bind the request.
func peekConversationID(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPeekBytes))
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), c.Request.Body))

	var peek struct {
		ConversationID string `json:"conversation_id"`
	}
	if err := json.Unmarshal(body, &peek); err != nil {
		return ""
	}
	return peek.ConversationID
}

// rateLimiter keys token buckets by conversation with auto-expiry.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	if requestsPerMin <= 0 {
		requestsPerMin = 30
	}
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,
			nil,
			time.Minute*5,
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0),
		burst: burst,
	}
}

func (rl *rateLimiter) Allow(key string) error {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}

	if !limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for %s", key)
	}
	return nil
}
