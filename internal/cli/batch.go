package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/sentinel-india/sentinel/internal/model"
	"github.com/sentinel-india/sentinel/internal/pipeline"
	"github.com/sentinel-india/sentinel/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|list-file>",
	Short: "Audit many filings in parallel",
	Long: `Batch audits a set of filings concurrently:
- Point it at a directory of filings, or at a text file listing one
  path or URL per line
- Filings are processed by a fixed worker pool; each invocation is
  independent and shares no state
- One JSON report is written per filing

Example:
  sentinel batch ./filings
  sentinel batch filings.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./sentinel-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().DurationVar(&auditTimeout, "audit-timeout", 3*time.Minute, "timeout for individual audits")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the audit cache")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().StringVar(&provider, "provider", "openai", "reasoning service (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&modelName, "model", "gpt-4o-mini", "model name")
	batchCmd.Flags().Float64Var(&turnoverCr, "turnover-crore", 0, "annual consolidated turnover in Crores")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL")
}

// auditJob runs one filing through a shared pipeline
type auditJob struct {
	source   string
	cfg      *model.Config
	pipe     *pipeline.Pipeline
	renderer *pipeline.Renderer
	parent   context.Context
	timeout  time.Duration
}

// auditResult reports one filing's outcome back to the pool
type auditResult struct {
	source string
	state  model.State
	err    error
}

// GetError implements worker.Result
func (r *auditResult) GetError() error { return r.err }

// Execute implements worker.Job
func (j *auditJob) Execute(ctx context.Context) worker.Result {
	res := &auditResult{source: j.source}

	// Honor both the pool's lifecycle and the batch deadline
	select {
	case <-ctx.Done():
		res.err = ctx.Err()
		return res
	default:
	}
	jobCtx, cancel := context.WithTimeout(j.parent, j.timeout)
	defer cancel()

	filing, err := loadFiling(jobCtx, j.cfg, j.source)
	if err != nil {
		res.err = fmt.Errorf("%s: %w", j.source, err)
		return res
	}

	outcome, err := j.pipe.Run(jobCtx, filing)
	if err != nil {
		res.err = fmt.Errorf("%s: %w", j.source, err)
		return res
	}
	res.state = outcome.State

	name := reportName(j.source)
	if err := j.renderer.RenderJSON(outcome, filepath.Join(outputDir, name+".json")); err != nil {
		res.err = fmt.Errorf("%s: %w", j.source, err)
	}
	return res
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	sources, err := collectSources(input)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no filings found in %s", input)
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Filings:  %d\n", len(sources))
	fmt.Fprintf(os.Stderr, "Workers:  %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output:   %s\n\n", outputDir)

	pipe, err := pipeline.New(cfg)
	if err != nil {
		return err
	}
	renderer := pipeline.NewRenderer(!noFooter)

	pool := worker.NewPool(concurrency)
	pool.Start()
	for _, source := range sources {
		pool.Submit(&auditJob{
			source:   source,
			cfg:      cfg,
			pipe:     pipe,
			renderer: renderer,
			parent:   ctx,
			timeout:  auditTimeout,
		})
	}

	results := pool.Wait()

	ok, failed := 0, 0
	for _, r := range results {
		res := r.(*auditResult)
		if res.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %v\n", res.err)
			continue
		}
		ok++
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s (%s)\n", res.source, res.state)
		}
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d succeeded, %d failed\n", ok, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d filings failed", failed, len(results))
	}
	return nil
}

// collectSources expands the input into filing paths or URLs
func collectSources(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", input, err)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(input)
		if err != nil {
			return nil, err
		}
		var sources []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".txt", ".html", ".htm", ".xhtml":
				sources = append(sources, filepath.Join(input, e.Name()))
			}
		}
		return sources, nil
	}

	// A list file: one path or URL per line, # comments allowed
	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var sources []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sources = append(sources, line)
	}
	return sources, scanner.Err()
}

// reportName derives a filesystem-safe report name from a path or URL
func reportName(source string) string {
	name := filepath.Base(strings.TrimSuffix(source, "/"))
	if idx := strings.Index(name, "?"); idx >= 0 {
		name = name[:idx]
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "filing"
	}
	return b.String()
}
