package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/web4all/web4all/internal/email"
	"github.com/web4all/web4all/internal/model"
	"github.com/web4all/web4all/internal/pipeline"
)

var (
	outJSON     string
	outMD       string
	outCSV      string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	insecureTLS bool
	httpProxy   string
	httpsProxy  string
	llmEnabled  bool
	llmProvider string
	llmModel    string
	emailTo     string
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <url>",
	Short: "Audit a single URL and generate an accessibility report",
	Long: `Audit fetches a web page and analyzes its static markup:
- Image text alternatives
- Heading hierarchy
- Link text quality
- Form labeling
- Landmark structure and page language
- Inline-style color contrast
- Keyboard focusability

Example:
  web4all audit https://example.com
  web4all audit https://example.com --json report.json --md report.md --csv issues.csv
  web4all audit https://example.com --llm --llm-provider openai --llm-model gpt-4o-mini
  web4all audit https://example.com --email-to team@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	// Output flags
	auditCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	auditCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	auditCmd.Flags().StringVar(&outCSV, "csv", "", "output CSV issue list path (optional)")

	// HTTP flags
	auditCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall audit timeout")
	auditCmd.Flags().StringVar(&userAgent, "ua", "Web4All/0.1 (+https://github.com/web4all/web4all)", "HTTP User-Agent")
	auditCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	auditCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	auditCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	auditCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	auditCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	auditCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	auditCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable AI recommendation generation")
	auditCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	auditCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")

	// Email flags
	auditCmd.Flags().StringVar(&emailTo, "email-to", "", "email the report to this address (requires SMTP config)")
}

func runAudit(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Auditing: %s\n", url)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Fetching HTML...\n")
	}

	result, err := p.AuditURL(ctx, url)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Overall score: %d/100 (%s)\n", result.Report.OverallScore, result.Report.Rating)
		fmt.Fprintf(os.Stderr, "✓ Found %d issues\n", len(result.Report.Issues))
		if result.Report.LLM != nil && result.Report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated recommendations using %s/%s\n", result.Report.LLM.Provider, result.Report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(result.Report, outJSON, outMD, outCSV, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if emailTo != "" {
		if err := sendReportEmail(cfg, emailTo, result.Report); err != nil {
			return fmt.Errorf("email failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Emailed report to %s\n", emailTo)
	}

	return nil
}

// buildConfig assembles the effective configuration from defaults, the
// config file, environment variables, and flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	// Custom weights from the config file, if present.
	if viper.IsSet("weights") {
		weights := model.Weights{}
		for cat, w := range viper.GetStringMap("weights") {
			weight, ok := w.(int)
			if !ok {
				return nil, fmt.Errorf("config: weight for %q is not an integer", cat)
			}
			weights[model.Category(cat)] = weight
		}
		cfg.Weights = weights
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			baseURL := os.Getenv("OLLAMA_BASE_URL")
			if baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	// SMTP settings come from the config file or WEB4ALL_* environment
	// variables; the password only from the environment.
	if host := viper.GetString("email.host"); host != "" {
		cfg.Email.Host = host
	}
	if port := viper.GetInt("email.port"); port != 0 {
		cfg.Email.Port = port
	}
	if user := viper.GetString("email.username"); user != "" {
		cfg.Email.Username = user
	}
	if from := viper.GetString("email.from"); from != "" {
		cfg.Email.From = from
	}
	cfg.Email.Password = os.Getenv("WEB4ALL_SMTP_PASSWORD")

	return cfg, nil
}

// sendReportEmail delivers the finished report over SMTP.
func sendReportEmail(cfg *model.Config, to string, report *model.Report) error {
	mailer, err := email.NewMailer(cfg.Email)
	if err != nil {
		return err
	}
	return mailer.SendReport(to, report)
}
