package logging

import "context"

// Context keys for common log fields.
type contextKey string

const (
	// AnalysisIDKey is the context key for analysis run IDs.
	AnalysisIDKey contextKey = "analysis_id"

	// ModelKey is the context key for model identifiers.
	ModelKey contextKey = "model"

	// ProviderKey is the context key for pricing provider names.
	ProviderKey contextKey = "provider"
)

// WithAnalysisID adds an analysis ID to the context.
func WithAnalysisID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, AnalysisIDKey, id)
}

// GetAnalysisID retrieves the analysis ID from the context.
func GetAnalysisID(ctx context.Context) string {
	if id, ok := ctx.Value(AnalysisIDKey).(string); ok {
		return id
	}
	return ""
}

// WithModel adds a model identifier to the context.
func WithModel(ctx context.Context, model string) context.Context {
	return context.WithValue(ctx, ModelKey, model)
}

// GetModel retrieves the model identifier from the context.
func GetModel(ctx context.Context) string {
	if model, ok := ctx.Value(ModelKey).(string); ok {
		return model
	}
	return ""
}

// WithProvider adds a provider name to the context.
func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, ProviderKey, provider)
}

// GetProvider retrieves the provider name from the context.
func GetProvider(ctx context.Context) string {
	if provider, ok := ctx.Value(ProviderKey).(string); ok {
		return provider
	}
	return ""
}
