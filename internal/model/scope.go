package model

// Scope carries the caller identity for a request.
// UserID and ConversationID are set by the delivery layer, never by the engine.
type Scope struct {
	UserID         string
	ConversationID string
	Locale         string // BCP-47 tag, e.g. "en-US"
	Currency       string // ISO-4217 code, e.g. "USD"
}

// Environment represents the deployment environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)
