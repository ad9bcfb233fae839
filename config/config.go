package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Answer engine tunables
	Router     RouterConfig
	Usefulness UsefulnessConfig
	Cache      CacheConfig
	Knowledge  KnowledgeConfig
	Chat       ChatConfig

	// LLM provider abstraction
	LLM LLMConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// RouterConfig holds intent-router calibration and hysteresis parameters.
// These are hand-tuned against a labeled utterance set; treat them as
// versioned configuration, not contracts.
type RouterConfig struct {
	Temperature     float64 // logistic temperature for score calibration
	Bias            float64 // additive bias after the logistic transform
	Scale           float64 // multiplicative scale after the logistic transform
	EnterThreshold  float64 // calibrated probability needed to enter a grounded route
	ExitThreshold   float64 // lower threshold used while a route is stable
	MinStableTime   time.Duration
	StabilityWindow time.Duration
	VarianceEpsilon float64
	HistorySize     int
	MinTemperature  float64 // clamp range for online calibration updates
	MaxTemperature  float64
}

// UsefulnessConfig holds the minimum usefulness score per query complexity.
type UsefulnessConfig struct {
	MinLow    float64
	MinMedium float64
	MinHigh   float64
}

// CacheConfig bounds the shared caches.
type CacheConfig struct {
	AnswerSize  int
	AnswerTTL   time.Duration
	SessionSize int
	SessionTTL  time.Duration
}

// KnowledgeConfig tunes the knowledge-base lane.
type KnowledgeConfig struct {
	TopK          int
	MinSimilarity float64
}

// ChatConfig holds delivery-level settings.
type ChatConfig struct {
	Timezone        string
	RateLimitPerMin int
	ShadowTimeout   time.Duration
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name    string `yaml:"name"`
	Enabled bool   `yaml:"enabled"`
	Tier    string `yaml:"tier"` // mini, std, pro
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Router calibration and hysteresis
	cfg.Router.Temperature = viper.GetFloat64("router.temperature")
	cfg.Router.Bias = viper.GetFloat64("router.bias")
	cfg.Router.Scale = viper.GetFloat64("router.scale")
	cfg.Router.EnterThreshold = viper.GetFloat64("router.enter_threshold")
	cfg.Router.ExitThreshold = viper.GetFloat64("router.exit_threshold")
	cfg.Router.MinStableTime = viper.GetDuration("router.min_stable_time")
	cfg.Router.StabilityWindow = viper.GetDuration("router.stability_window")
	cfg.Router.VarianceEpsilon = viper.GetFloat64("router.variance_epsilon")
	cfg.Router.HistorySize = viper.GetInt("router.history_size")
	cfg.Router.MinTemperature = viper.GetFloat64("router.min_temperature")
	cfg.Router.MaxTemperature = viper.GetFloat64("router.max_temperature")

	// Usefulness thresholds
	cfg.Usefulness.MinLow = viper.GetFloat64("usefulness.min_low")
	cfg.Usefulness.MinMedium = viper.GetFloat64("usefulness.min_medium")
	cfg.Usefulness.MinHigh = viper.GetFloat64("usefulness.min_high")

	// Caches
	cfg.Cache.AnswerSize = viper.GetInt("cache.answer_size")
	cfg.Cache.AnswerTTL = viper.GetDuration("cache.answer_ttl")
	cfg.Cache.SessionSize = viper.GetInt("cache.session_size")
	cfg.Cache.SessionTTL = viper.GetDuration("cache.session_ttl")

	// Knowledge base
	cfg.Knowledge.TopK = viper.GetInt("knowledge.top_k")
	cfg.Knowledge.MinSimilarity = viper.GetFloat64("knowledge.min_similarity")

	// Chat delivery
	cfg.Chat.Timezone = viper.GetString("chat.timezone")
	cfg.Chat.RateLimitPerMin = viper.GetInt("chat.rate_limit_per_min")
	cfg.Chat.ShadowTimeout = viper.GetDuration("chat.shadow_timeout")

	// LLM provider abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:    getStringFromMap(providerMap, "name"),
						Enabled: getBoolFromMap(providerMap, "enabled"),
						Tier:    getStringFromMap(providerMap, "tier"),
						APIKey:  expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL: getStringFromMap(providerMap, "base_url"),
						Model:   getStringFromMap(providerMap, "model"),
						Timeout: getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// Router defaults: tuned against the labeled utterance set, v3
	viper.SetDefault("router.temperature", 0.85)
	viper.SetDefault("router.bias", 0.02)
	viper.SetDefault("router.scale", 1.0)
	viper.SetDefault("router.enter_threshold", 0.55)
	viper.SetDefault("router.exit_threshold", 0.40)
	viper.SetDefault("router.min_stable_time", "8s")
	viper.SetDefault("router.stability_window", "30s")
	viper.SetDefault("router.variance_epsilon", 0.0025)
	viper.SetDefault("router.history_size", 10)
	viper.SetDefault("router.min_temperature", 0.5)
	viper.SetDefault("router.max_temperature", 2.0)

	viper.SetDefault("usefulness.min_low", 0.30)
	viper.SetDefault("usefulness.min_medium", 0.45)
	viper.SetDefault("usefulness.min_high", 0.60)

	viper.SetDefault("cache.answer_size", 512)
	viper.SetDefault("cache.answer_ttl", "6h")
	viper.SetDefault("cache.session_size", 2048)
	viper.SetDefault("cache.session_ttl", "2h")

	viper.SetDefault("knowledge.top_k", 3)
	viper.SetDefault("knowledge.min_similarity", 0.35)

	viper.SetDefault("chat.timezone", "UTC")
	viper.SetDefault("chat.rate_limit_per_min", 30)
	viper.SetDefault("chat.shadow_timeout", "5s")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}
