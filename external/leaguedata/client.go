package leaguedata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/bowling-league/internal/domain/league"
	"github.com/riskibarqy/bowling-league/internal/platform/logging"
	"github.com/riskibarqy/bowling-league/internal/platform/resilience"
	"github.com/riskibarqy/bowling-league/internal/usecase"
	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/sync/singleflight"
)

const (
	maxDocumentBytes       = 6 << 20
	defaultFetchConcurrent = 4
)

var (
	errLeagueDataTransient = crerr.New("league data transient failure")
	errDocumentTooLarge    = crerr.New("league document too large")
)

type ClientConfig struct {
	HTTPClient       *http.Client
	BaseURL          string
	Timeout          time.Duration
	MaxRetries       int
	RetryBackoff     time.Duration
	FetchConcurrency int
	Logger           *logging.Logger
	CircuitBreaker   resilience.CircuitBreakerConfig
}

// Client fetches raw league documents published as
// {base}/leagues/{id}.json.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	maxRetries   int
	retryBackoff time.Duration
	concurrency  int
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       singleflight.Group
}

func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("league data base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("parse league data base url: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}
	concurrency := cfg.FetchConcurrency
	if concurrency < 1 {
		concurrency = defaultFetchConcurrent
	}

	logger = logger.Named("leaguedata")
	circuit := cfg.CircuitBreaker
	circuit.OnStateChange = func(from, to resilience.CircuitState) {
		logger.Warn("league data circuit breaker state changed", "from", string(from), "to", string(to))
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		concurrency:  concurrency,
		logger:       logger,
		breaker:      resilience.NewCircuitBreaker(circuit),
	}, nil
}

// FetchLeague downloads and validates one league document.
func (c *Client) FetchLeague(ctx context.Context, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", usecase.ErrInvalidInput)
	}

	var doc league.League
	if err := c.doJSON(ctx, "/leagues/"+url.PathEscape(leagueID)+".json", &doc); err != nil {
		return league.League{}, fmt.Errorf("fetch league=%s: %w", leagueID, err)
	}
	if err := doc.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: league=%s: %v", usecase.ErrInvalidInput, leagueID, err)
	}
	return doc, nil
}

type fetched struct {
	index int
	doc   league.League
}

// FetchLeagues downloads several documents with bounded concurrency. The
// result keeps the order of leagueIDs and skips documents that failed; the
// error reports every failure.
func (c *Client) FetchLeagues(ctx context.Context, leagueIDs []string) ([]league.League, error) {
	if len(leagueIDs) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(leagueIDs))
	p := pool.NewWithResults[fetched]().
		WithContext(ctx).
		WithMaxGoroutines(min(c.concurrency, len(leagueIDs)))
	for i, id := range leagueIDs {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		p.Go(func(ctx context.Context) (fetched, error) {
			doc, err := c.FetchLeague(ctx, id)
			return fetched{index: i, doc: doc}, err
		})
	}

	results, err := p.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })

	docs := make([]league.League, 0, len(results))
	for _, r := range results {
		docs = append(docs, r.doc)
	}
	return docs, err
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	fullURL := c.baseURL + path

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		var raw []byte
		execErr := c.breaker.Execute(ctx, func(ctx context.Context) error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isCircuitFailure)
		return raw, execErr
	})
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "league data circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("%w: league data source is temporarily unavailable", usecase.ErrUnavailable)
	}
	if err != nil {
		if isCircuitFailure(err) {
			return fmt.Errorf("%w: %w", usecase.ErrUnavailable, err)
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode league document: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errLeagueDataTransient, err)
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case crerr.Is(readErr, errDocumentTooLarge):
				return nil, fmt.Errorf("%w: league document %s exceeds %d bytes", usecase.ErrInvalidInput, fullURL, maxDocumentBytes)
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errLeagueDataTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, fmt.Errorf("%w: league document %s", usecase.ErrNotFound, fullURL)
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: status=%d body=%s", errLeagueDataTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("league data status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("league data request failed")
	}
	c.logger.WarnContext(ctx, "league data request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

// readBody copies the body through a pooled buffer. Bodies longer than
// maxDocumentBytes fail with errDocumentTooLarge instead of being cut short.
func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, maxDocumentBytes+1)); err != nil {
		return nil, err
	}
	if buf.Len() > maxDocumentBytes {
		return nil, errDocumentTooLarge
	}
	return append([]byte(nil), buf.B...), nil
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errLeagueDataTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const limit = 240
	body := strings.TrimSpace(string(raw))
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "..."
}
