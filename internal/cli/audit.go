package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sentinel-india/sentinel/internal/ingest"
	"github.com/sentinel-india/sentinel/internal/model"
	"github.com/sentinel-india/sentinel/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outJSON      string
	outMD        string
	auditTimeout time.Duration
	noCache      bool
	noFooter     bool
	provider     string
	modelName    string
	turnoverCr   float64
	httpProxy    string
	httpsProxy   string
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <filing>",
	Short: "Audit a single filing for related-party red flags",
	Long: `Audit runs one filing through the full pipeline:
- Locate related-party and governance sections by heading heuristics
- Parse amounts in Indian numbering (Lakhs/Crores) to rupees
- Submit the excerpt to the reasoning service as a forensic auditor
- Validate the response against the fixed risk schema
- Mask PAN/Aadhaar identifiers before anything is written

The filing may be a local path (extracted text or HTML) or an http(s) URL.

Example:
  sentinel audit annual-report.txt
  sentinel audit filing.html --json report.json --md report.md
  sentinel audit https://example.com/ar-2025.html --provider ollama
  sentinel audit annual-report.txt --turnover-crore 4200`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	auditCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	auditCmd.Flags().DurationVar(&auditTimeout, "timeout", 3*time.Minute, "overall audit timeout")
	auditCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the audit cache (force a fresh model call)")
	auditCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	auditCmd.Flags().StringVar(&provider, "provider", "openai", "reasoning service (openai, anthropic, ollama)")
	auditCmd.Flags().StringVar(&modelName, "model", "gpt-4o-mini", "model name")
	auditCmd.Flags().Float64Var(&turnoverCr, "turnover-crore", 0, "annual consolidated turnover in Crores (sharpens the materiality threshold)")
	auditCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	auditCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runAudit(cmd *cobra.Command, args []string) error {
	source := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Auditing: %s\n", source)
		fmt.Fprintf(os.Stderr, "Provider: %s/%s\n", cfg.Audit.Provider, cfg.Audit.Model)
		fmt.Fprintf(os.Stderr, "Cache:    %v\n\n", cfg.Cache.Enabled)
	}

	filing, err := loadFiling(ctx, cfg, source)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d pages\n", filing.PageCount())
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	outcome, err := p.Run(ctx, filing)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	if verbose && outcome.Excerpt != nil {
		fmt.Fprintf(os.Stderr, "✓ Excerpt: %d segments, %d chars\n", len(outcome.Excerpt.Segments), outcome.Excerpt.Length)
		fmt.Fprintf(os.Stderr, "✓ Figures: %d recognized\n", len(outcome.Figures))
	}

	renderer := pipeline.NewRenderer(!noFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(outcome, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(outcome, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}
	renderer.RenderSummary(outcome)

	switch outcome.State {
	case model.StateMalformedOutput:
		return fmt.Errorf("analysis failed, retry later")
	case model.StateAuditorTimeout:
		return fmt.Errorf("reasoning service timed out, retry later")
	}
	return nil
}

// buildConfig resolves the configuration hierarchy: defaults, then the
// config file and SENTINEL_* environment via viper, then explicitly set
// flags, then credentials from the provider environment variables.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.Audit.Provider = provider
	}
	if flags.Changed("model") {
		cfg.Audit.Model = modelName
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if flags.Changed("http-proxy") {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if flags.Changed("https-proxy") {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}
	if turnoverCr > 0 {
		cfg.Materiality.TurnoverINR = turnoverCr * 1e7
	}

	switch strings.ToLower(cfg.Audit.Provider) {
	case "openai":
		cfg.Audit.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Audit.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.Audit.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.Audit.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Audit.BaseURL = baseURL
		}
	}

	return cfg, nil
}

// loadFiling reads the filing from disk or fetches it over HTTP
func loadFiling(ctx context.Context, cfg *model.Config, source string) (*model.Filing, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		fetcher := ingest.NewFetcher(cfg.HTTP, cfg.Extract.PageChars)
		return fetcher.Fetch(ctx, source)
	}
	return ingest.LoadFile(source, cfg.Extract.PageChars)
}
