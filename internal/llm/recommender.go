package llm

import (
	"context"
	"fmt"

	"github.com/web4all/web4all/internal/model"
)

// Recommender wraps a Provider and converts its output into the report's
// Recommendations block. A Recommender with a nil provider is valid and
// permanently disabled.
type Recommender struct {
	provider Provider
	config   Config
}

// NewRecommender creates a recommender from configuration.
func NewRecommender(config Config) (*Recommender, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Recommender{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (r *Recommender) IsEnabled() bool {
	return r.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled.
func (r *Recommender) ProviderName() string {
	if r.provider == nil {
		return ""
	}
	return r.provider.Name()
}

// Generate produces recommendations for the report. Returns nil when
// disabled. Provider failures are returned as errors; the caller decides
// whether the audit proceeds without recommendations (it should).
func (r *Recommender) Generate(ctx context.Context, report model.Report) (*model.Recommendations, error) {
	if r.provider == nil {
		return nil, nil
	}

	if !r.provider.IsAvailable(ctx) {
		return &model.Recommendations{
			Enabled:  true,
			Provider: r.provider.Name(),
			Warnings: []string{fmt.Sprintf("provider %s is not available", r.provider.Name())},
		}, nil
	}

	resp, err := r.provider.Recommend(ctx, RecommendRequest{
		Report:    report,
		Model:     r.config.Model,
		MaxTokens: r.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}

	return &model.Recommendations{
		Enabled:  true,
		Provider: r.provider.Name(),
		Model:    resp.Model,
		Markdown: resp.Markdown,
	}, nil
}
