package usecase

import (
	"context"
	"time"

	"finance-assistant/internal/factpack"
	"finance-assistant/internal/grounding"
	"finance-assistant/internal/intent"
	"finance-assistant/internal/narration"
)

// computeShadow renders the second-best intent's would-be answer off the
// critical path. Only the cheap template path runs here; no model calls.
// Failures are swallowed and the shadow is simply omitted.
func (uc *implUseCase) computeShadow(ctx context.Context, decision intent.RouteDecision, scores []intent.IntentScore, pack *factpack.FactPack, message string) <-chan *intent.ShadowRoute {
	ch := make(chan *intent.ShadowRoute, 1)

	if len(decision.Secondary) == 0 {
		close(ch)
		return ch
	}
	alt := decision.Secondary[0]

	go func() {
		defer func() {
			if r := recover(); r != nil {
				uc.l.Warnf(ctx, "shadow route panic: %v", r)
			}
			close(ch)
		}()

		ground := grounding.Ground(alt.Intent, pack, message)
		if ground == nil {
			return
		}
		resp := narration.Compose(ground.Fact)
		ch <- &intent.ShadowRoute{
			AlternativeIntent:   alt.Intent,
			AlternativeResponse: resp.Message,
			Delta:               decision.Primary.Calibrated - alt.Calibrated,
		}
	}()

	return ch
}

// joinShadow waits briefly for the shadow computation; a slow or failed
// shadow is dropped rather than delaying the response.
func (uc *implUseCase) joinShadow(ch <-chan *intent.ShadowRoute) *intent.ShadowRoute {
	if ch == nil {
		return nil
	}
	timeout := uc.chatCfg.ShadowTimeout
	if timeout <= 0 {
		timeout = time.Second
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case shadow := <-ch:
		return shadow
	case <-timer.C:
		return nil
	}
}
