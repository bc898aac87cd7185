package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/web4all/web4all/internal/model"
	"github.com/web4all/web4all/internal/pipeline"
)

// Auditor audits a single URL. Satisfied by pipeline.Pipeline.
type Auditor interface {
	AuditURL(ctx context.Context, url string) (*pipeline.AuditResult, error)
}

// AuditJob audits one URL through the pool.
type AuditJob struct {
	URL     string
	Auditor Auditor
}

// Execute runs the audit.
func (j *AuditJob) Execute(ctx context.Context) Result {
	result, err := j.Auditor.AuditURL(ctx, j.URL)
	if err != nil {
		return &AuditOutcome{URL: j.URL, Error: err}
	}
	return &AuditOutcome{URL: j.URL, Report: result.Report}
}

// AuditOutcome is the per-URL result of a batch audit.
type AuditOutcome struct {
	URL    string
	Report *model.Report
	Error  error
}

// GetError returns the audit error, if any.
func (r *AuditOutcome) GetError() error {
	return r.Error
}

// BatchProcessor audits many URLs concurrently.
type BatchProcessor struct {
	auditor     Auditor
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(auditor Auditor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		auditor:     auditor,
		concurrency: concurrency,
	}
}

// ProcessURLs audits the URLs and returns one outcome per URL, in
// completion order.
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*AuditOutcome {
	if len(urls) == 0 {
		return []*AuditOutcome{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, url := range urls {
		pool.Submit(&AuditJob{URL: url, Auditor: b.auditor})
	}

	results := pool.Wait()

	outcomes := make([]*AuditOutcome, len(results))
	for i, result := range results {
		outcomes[i] = result.(*AuditOutcome)
	}
	return outcomes
}

// ProcessFile reads URLs from a file and audits them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*AuditOutcome, error) {
	urls, err := ReadURLsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}
	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads one URL per line, skipping blanks and lines
// starting with "#", and deduplicates while preserving order.
func ReadURLsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return urls, nil
}
