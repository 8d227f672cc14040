package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sentinel-india/sentinel/internal/model"
	"github.com/sentinel-india/sentinel/internal/util"
	"github.com/sentinel-india/sentinel/internal/worker"
)

// ErrRobotsDisallowed means the host's robots.txt forbids fetching the URL
var ErrRobotsDisallowed = errors.New("fetch disallowed by robots.txt")

// Fetcher downloads filings from exchange and registrar sites, honoring
// robots.txt and per-host rate limits.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	pageChars  int
}

// NewFetcher creates a fetcher from HTTP configuration
func NewFetcher(cfg model.HTTPConfig, pageChars int) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter:   worker.NewLimiter(cfg.RatePerHost, 2),
		pageChars: pageChars,
	}
}

// Fetch downloads one filing and parses it by content type
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*model.Filing, error) {
	allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s", ErrRobotsDisallowed, rawURL)
	}

	if err := f.limiter.WaitWithDelay(ctx, rawURL, capDelay(crawlDelay)); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch filing: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	name := resp.Request.URL.String()
	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "html") || isHTML(name, body) {
		return FromHTML(name, string(body), f.pageChars)
	}
	return FromText(name, string(body), f.pageChars)
}

// crawl delays longer than this are capped so one slow host cannot stall
// a whole batch
const maxCrawlDelay = 30 * time.Second

func capDelay(d time.Duration) time.Duration {
	if d > maxCrawlDelay {
		return maxCrawlDelay
	}
	return d
}
