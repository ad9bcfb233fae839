package usecase

import (
	"time"

	"finance-assistant/config"
	"finance-assistant/internal/analytics"
	"finance-assistant/internal/fastlane"
	"finance-assistant/internal/guard"
	"finance-assistant/internal/intent"
	"finance-assistant/internal/narration"
	"finance-assistant/internal/session"
	pkgLog "finance-assistant/pkg/log"
)

type implUseCase struct {
	l        pkgLog.Logger
	router   *intent.Router
	cal      *intent.Calibrator
	sessions *session.Store
	lane     *fastlane.Lane
	rescue   fastlane.Strategy
	narrator *narration.Narrator
	critic   *narration.Critic
	scorer   *guard.Scorer
	emitter  analytics.Emitter
	chatCfg  config.ChatConfig
	now      func() time.Time
}

// New creates a new assistant UseCase instance. The rescue strategy is the
// fast lane's mini-model step, reused for off-topic recovery.
func New(
	l pkgLog.Logger,
	router *intent.Router,
	cal *intent.Calibrator,
	sessions *session.Store,
	lane *fastlane.Lane,
	rescue fastlane.Strategy,
	narrator *narration.Narrator,
	critic *narration.Critic,
	scorer *guard.Scorer,
	emitter analytics.Emitter,
	chatCfg config.ChatConfig,
) *implUseCase {
	return &implUseCase{
		l:        l,
		router:   router,
		cal:      cal,
		sessions: sessions,
		lane:     lane,
		rescue:   rescue,
		narrator: narrator,
		critic:   critic,
		scorer:   scorer,
		emitter:  emitter,
		chatCfg:  chatCfg,
		now:      time.Now,
	}
}

// SetClock overrides the time source. Test hook.
func (uc *implUseCase) SetClock(now func() time.Time) {
	uc.now = now
}
