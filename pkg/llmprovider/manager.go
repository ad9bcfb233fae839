package llmprovider

import (
	"context"
	"fmt"
	"time"

	"finance-assistant/pkg/log"
)

// Manager orchestrates tiered provider selection, fallback, and retry logic.
// Providers are registered per tier; a failed tier degrades to the next
// cheaper one so a narration request never fails just because the expensive
// model is down.
type Manager struct {
	tiers  map[Tier][]Provider
	config *Config
	logger log.Logger
}

// Config defines configuration for the provider Manager.
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration // global timeout for the entire fallback chain
}

// NewManager creates a new provider Manager.
func NewManager(tiers map[Tier][]Provider, config *Config, logger log.Logger) *Manager {
	return &Manager{
		tiers:  tiers,
		config: config,
		logger: logger,
	}
}

// HasTier reports whether at least one provider is registered for the tier.
func (m *Manager) HasTier(tier Tier) bool {
	return len(m.tiers[tier]) > 0
}

// Generate runs a request against the given tier, retrying per provider and
// degrading to cheaper tiers when every provider of a tier fails.
func (m *Manager) Generate(ctx context.Context, tier Tier, req *Request) (*Response, error) {
	if len(m.tiers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	var cancel context.CancelFunc
	if m.config.MaxTotalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error

	for {
		providers := m.tiers[tier]
		if len(providers) == 0 && tier != TierMini {
			tier = tier.Downgrade()
			continue
		}
		if len(providers) == 0 {
			if lastErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrAllProvidersFailed, lastErr)
			}
			return nil, ErrNoProvidersConfigured
		}

		for _, provider := range providers {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("global timeout exceeded on tier %s: %w", tier, ctx.Err())
			default:
			}

			resp, err := m.generateWithRetry(ctx, provider, req)
			if err == nil {
				m.logSuccess(ctx, tier, provider, resp)
				return resp, nil
			}

			m.logFailure(ctx, tier, provider, err)
			lastErr = err

			if !m.config.FallbackEnabled {
				return nil, fmt.Errorf("%w: %v", ErrAllProvidersFailed, lastErr)
			}
		}

		if tier == TierMini {
			return nil, fmt.Errorf("%w: %v", ErrAllProvidersFailed, lastErr)
		}
		tier = tier.Downgrade()
	}
}

// generateWithRetry implements retry with linear backoff for one provider.
func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt < m.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * m.config.RetryDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err := provider.GenerateContent(ctx, req)
		if err == nil {
			return resp, nil
		}

		lastErr = err
	}

	return nil, lastErr
}

func (m *Manager) logSuccess(ctx context.Context, tier Tier, provider Provider, resp *Response) {
	m.logger.Info(ctx, "LLM generation successful",
		"tier", string(tier),
		"provider", provider.Name(),
		"model", provider.Model(),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
	)
}

func (m *Manager) logFailure(ctx context.Context, tier Tier, provider Provider, err error) {
	m.logger.Warn(ctx, "LLM generation failed",
		"tier", string(tier),
		"provider", provider.Name(),
		"model", provider.Model(),
		"error", err.Error(),
	)
}
