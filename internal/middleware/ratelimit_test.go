package middleware

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"finance-assistant/config"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, arg ...any)                    {}
func (nopLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) Info(ctx context.Context, arg ...any)                     {}
func (nopLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (nopLogger) Warn(ctx context.Context, arg ...any)                     {}
func (nopLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (nopLogger) Error(ctx context.Context, arg ...any)                    {}
func (nopLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (nopLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (nopLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (nopLogger) Panic(ctx context.Context, arg ...any)                    {}
func (nopLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func TestRateLimiter(t *testing.T) {
	t.Run("allows within burst", func(t *testing.T) {
		rl := newRateLimiter(600) // burst 60
		for i := 0; i < 10; i++ {
			if err := rl.Allow("conv-a"); err != nil {
				t.Fatalf("request %d rejected: %v", i, err)
			}
		}
	})

	t.Run("rejects past burst", func(t *testing.T) {
		rl := newRateLimiter(30) // burst 3
		var rejected bool
		for i := 0; i < 10; i++ {
			if err := rl.Allow("conv-b"); err != nil {
				rejected = true
				break
			}
		}
		if !rejected {
			t.Error("expected a rejection within 10 rapid requests")
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl := newRateLimiter(30)
		for i := 0; i < 3; i++ {
			rl.Allow("conv-c")
		}
		if err := rl.Allow("conv-d"); err != nil {
			t.Errorf("fresh key rejected: %v", err)
		}
	})

	t.Run("zero config falls back to default", func(t *testing.T) {
		rl := newRateLimiter(0)
		if err := rl.Allow("conv-e"); err != nil {
			t.Errorf("Allow = %v, want nil", err)
		}
	})
}

func TestRateLimitKeysOnBodyConversation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(nopLogger{}, config.ChatConfig{RateLimitPerMin: 30}) // burst 3

	var bound struct {
		ConversationID string `json:"conversation_id"`
		Message        string `json:"message"`
	}
	r := gin.New()
	r.POST("/chat", m.RateLimit(), func(c *gin.Context) {
		if err := c.ShouldBindJSON(&bound); err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	post := func(conversation string) int {
		body := fmt.Sprintf(`{"conversation_id":%q,"message":"hi"}`, conversation)
		req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	// Body-only clients get their own bucket, not a shared per-IP one.
	var limited bool
	for i := 0; i < 10; i++ {
		if post("conv-busy") == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Fatal("expected conv-busy to be rate limited within 10 rapid requests")
	}

	if code := post("conv-fresh"); code != http.StatusOK {
		t.Fatalf("fresh conversation got %d, want 200", code)
	}
	// The peeked body must still reach the handler intact.
	if bound.ConversationID != "conv-fresh" || bound.Message != "hi" {
		t.Errorf("bound body = %+v, want the original request body restored", bound)
	}
}
