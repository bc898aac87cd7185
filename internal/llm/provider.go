// Package llm generates remediation recommendations from a finished
// audit report. Recommendations are advisory text only: they are
// produced after scoring and never influence the score.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/web4all/web4all/internal/model"
)

// Provider defines the interface for recommendation backends.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Recommend generates remediation advice for the report's issues
	Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// RecommendRequest contains the input for recommendation generation.
type RecommendRequest struct {
	// Report is the finished audit report
	Report model.Report

	// Prompt is an optional custom prompt (if empty, use the default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// RecommendResponse contains the generated recommendations.
type RecommendResponse struct {
	// Markdown is the recommendation text
	Markdown string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// ConfigFromModel converts the application LLM configuration.
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	}
}

// systemPrompt frames every provider call.
const systemPrompt = "You are a web accessibility expert providing concise, practical recommendations."

// BuildPrompt constructs the default recommendation prompt from the
// report's score and issue list, grouped by category.
func BuildPrompt(report model.Report) string {
	var issues strings.Builder
	for _, cat := range model.Categories() {
		var lines []string
		for _, issue := range report.Issues {
			if issue.Category == cat {
				lines = append(lines, fmt.Sprintf("- [%s] %s", issue.Severity, issue.Message))
			}
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&issues, "\n%s ISSUES (score %d/100):\n%s\n",
			strings.ToUpper(string(cat)), report.Categories[cat], strings.Join(lines, "\n"))
	}
	if issues.Len() == 0 {
		issues.WriteString("\n(no issues detected)\n")
	}

	return fmt.Sprintf(`Based on the following accessibility issues found on a web page, provide 3-5 practical recommendations to improve the page's accessibility.

OVERALL SCORE: %d/100 (%s)

ISSUES FOUND:%s
Address the most critical issues first. Provide specific, actionable changes to the markup. Format your response with markdown headings and bullet points.`,
		report.OverallScore, report.Rating, issues.String())
}
