package llmprovider

import (
	"fmt"
	"strings"
	"time"

	"finance-assistant/config"
	"finance-assistant/pkg/deepseek"
	"finance-assistant/pkg/gemini"
	"finance-assistant/pkg/qwen"
)

// InitializeTiers creates Provider instances from config.LLMConfig grouped by
// tier. Providers that fail to initialize are skipped so one bad credential
// does not take down the whole engine.
func InitializeTiers(cfg *config.LLMConfig) (map[Tier][]Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("LLM config is nil")
	}
	if len(cfg.Providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	tiers := make(map[Tier][]Provider)
	var initErrors []string

	for _, p := range cfg.Providers {
		if !p.Enabled {
			continue
		}

		tier, err := parseTier(p.Tier)
		if err != nil {
			initErrors = append(initErrors, fmt.Sprintf("provider %s: %v", p.Name, err))
			continue
		}

		provider, err := createProvider(p)
		if err != nil {
			initErrors = append(initErrors, fmt.Sprintf("provider %s (tier %s): %v", p.Name, tier, err))
			continue
		}

		tiers[tier] = append(tiers[tier], provider)
	}

	if len(tiers) == 0 {
		return nil, fmt.Errorf("no providers successfully initialized: %s", strings.Join(initErrors, "; "))
	}

	return tiers, nil
}

func parseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierMini, TierStd, TierPro:
		return Tier(s), nil
	default:
		return "", fmt.Errorf("unknown tier %q", s)
	}
}

// createProvider creates a concrete provider instance from its config.
func createProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	switch cfg.Name {
	case "gemini":
		client, err := gemini.New(gemini.Config{
			APIKey: cfg.APIKey,
			Model:  cfg.Model,
			APIURL: cfg.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		return NewGeminiAdapter(client), nil

	case "deepseek":
		timeout, _ := time.ParseDuration(cfg.Timeout)
		client, err := deepseek.New(deepseek.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: timeout,
		})
		if err != nil {
			return nil, err
		}
		return NewDeepSeekAdapter(client), nil

	case "qwen":
		client, err := qwen.New(qwen.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		return NewQwenAdapter(client), nil

	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Name)
	}
}

// ManagerConfigFromLLM converts duration strings from config into a Manager Config.
func ManagerConfigFromLLM(cfg *config.LLMConfig) *Config {
	retryDelay, err := time.ParseDuration(cfg.RetryDelay)
	if err != nil {
		retryDelay = time.Second
	}
	maxTimeout, err := time.ParseDuration(cfg.MaxTotalTimeout)
	if err != nil {
		maxTimeout = 60 * time.Second
	}
	return &Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTimeout,
	}
}
