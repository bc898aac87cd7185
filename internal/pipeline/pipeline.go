// Package pipeline orchestrates a complete audit: fetch the page, parse
// it, run the rule evaluators, aggregate the weighted score, and attach
// optional AI recommendations.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/web4all/web4all/internal/cache"
	"github.com/web4all/web4all/internal/evaluate"
	"github.com/web4all/web4all/internal/htmldoc"
	"github.com/web4all/web4all/internal/llm"
	"github.com/web4all/web4all/internal/model"
	"github.com/web4all/web4all/internal/score"
	"github.com/web4all/web4all/internal/util"
)

// Pipeline runs audits end to end.
type Pipeline struct {
	fetcher     *Fetcher
	robots      *util.RobotsChecker
	limiter     *util.Limiter
	pageCache   cache.Cache // nil when caching is disabled
	aggregator  *score.Aggregator
	policy      evaluate.Policy
	recommender *llm.Recommender // nil provider when disabled
	renderer    *Renderer
	config      *model.Config
}

// New creates a pipeline from the configuration. An invalid weight table
// is rejected here, before any audit runs.
func New(cfg *model.Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	aggregator, err := score.NewAggregator(cfg.Weights)
	if err != nil {
		return nil, err
	}

	recommender, err := llm.NewRecommender(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		// Recommendations are advisory; a misconfigured provider must not
		// block auditing.
		fmt.Fprintf(os.Stderr, "Warning: LLM provider unavailable: %v\n", err)
		recommender, _ = llm.NewRecommender(llm.Config{})
	}

	return &Pipeline{
		fetcher:     NewFetcher(cfg.HTTP),
		robots:      util.NewRobotsChecker(cfg.HTTP.UserAgent, 10*time.Second),
		limiter:     util.NewLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst),
		pageCache:   cache.FromConfig(cfg.Cache),
		aggregator:  aggregator,
		policy:      evaluate.DefaultPolicy(),
		recommender: recommender,
		renderer:    NewRenderer(cfg.Output.IncludeFooter),
		config:      cfg,
	}, nil
}

// AuditResult contains the complete audit result for one URL.
type AuditResult struct {
	Report *model.Report
}

// AuditURL fetches and audits a single page.
func (p *Pipeline) AuditURL(ctx context.Context, rawURL string) (*AuditResult, error) {
	allowed, err := p.robots.Allowed(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("robots.txt disallows fetching %s", rawURL)
	}

	if err := p.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	fetched, err := p.loadPage(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	report, err := p.AuditHTML(fetched.HTML)
	if err != nil {
		return nil, err
	}

	report.Subject = fetched.Subject
	report.SourceURL = fetched.FinalURL
	report.FetchedAt = time.Now().UTC()
	report.FetchMeta = fetched.Meta

	// Recommendations run after scoring and never affect it.
	if p.recommender.IsEnabled() {
		recs, err := p.recommender.Generate(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: recommendation generation failed: %v\n", err)
		} else if recs != nil {
			report.LLM = recs
		}
	}

	return &AuditResult{Report: report}, nil
}

// AuditHTML audits already-fetched markup. This is the pure core: parse,
// evaluate all categories, aggregate, compose. Any non-empty input
// yields a complete report.
func (p *Pipeline) AuditHTML(html string) (*model.Report, error) {
	doc, err := htmldoc.ParseString(html)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	results := evaluate.Run(doc, p.policy)
	report, err := p.aggregator.Compose(results)
	if err != nil {
		return nil, fmt.Errorf("compose report: %w", err)
	}
	return report, nil
}

// loadPage returns the cached fetch result or performs a fresh fetch.
func (p *Pipeline) loadPage(ctx context.Context, rawURL string) (*FetchResult, error) {
	key := cache.Key(rawURL)

	if p.pageCache != nil {
		if data, found := p.pageCache.Get(key); found {
			var cached FetchResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	fetched, err := p.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if p.pageCache != nil {
		if data, err := json.Marshal(fetched); err == nil {
			_ = p.pageCache.Set(key, data, p.config.Cache.TTL)
		}
	}
	return fetched, nil
}

// RenderReport writes the report to the configured outputs.
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath, csvPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	if csvPath != "" {
		if err := p.renderer.RenderCSV(report, csvPath); err != nil {
			return fmt.Errorf("render CSV: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote CSV: %s\n", csvPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}

// Renderer exposes the pipeline's renderer for callers that deliver the
// report elsewhere (e.g. email).
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}
