package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"

	"github.com/matchsight/matchsight/internal/pkg/config"
	"github.com/matchsight/matchsight/internal/pkg/models"
)

const datasetUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

// MatchesClient fetches the historical match dataset from the data provider's
// /matches endpoint. Requests are rate limited towards the provider, and
// JS-guarded responses can fall back to a headless browser render.
type MatchesClient struct {
	baseURL         string
	httpClient      *http.Client
	limiter         *rate.Limiter
	browserFallback bool
}

// NewMatchesClient creates a dataset client, or nil when no base URL is
// configured.
func NewMatchesClient(cfg *config.DataSourceConfig) *MatchesClient {
	if cfg == nil || cfg.BaseURL == "" {
		return nil
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 2
	}

	return &MatchesClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:         rate.NewLimiter(rate.Limit(rps), 1),
		browserFallback: cfg.BrowserFallback,
	}
}

// matchesResponse represents the response from the /matches endpoint.
type matchesResponse struct {
	Matches []models.Match `json:"matches"`
	Meta    struct {
		Count  int    `json:"count"`
		Source string `json:"source"`
	} `json:"meta"`
}

// GetMatches fetches all played matches from the provider.
func (c *MatchesClient) GetMatches(ctx context.Context) ([]models.Match, error) {
	if c == nil {
		return nil, fmt.Errorf("matches client is not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u, err := url.Parse(c.baseURL + "/matches")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", datasetUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Some providers front their API with a JavaScript challenge page. When
	// that happens the body is HTML, not JSON; render it in a headless
	// browser and retry the extraction there.
	if looksLikeJSChallenge(resp, body) {
		if !c.browserFallback {
			return nil, fmt.Errorf("provider returned a JS challenge page and browser fallback is disabled")
		}
		return c.getMatchesWithBrowser(ctx, u.String())
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from provider", resp.StatusCode)
	}

	var parsed matchesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode matches response: %w", err)
	}
	return parsed.Matches, nil
}

func looksLikeJSChallenge(resp *http.Response, body []byte) bool {
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusServiceUnavailable &&
		!strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return false
	}
	bodyStr := string(body)
	return strings.Contains(bodyStr, "<script") || strings.Contains(bodyStr, "window.location") ||
		strings.Contains(bodyStr, "document.location")
}

// getMatchesWithBrowser loads the endpoint in headless Chrome so the
// provider's JavaScript challenge runs, then reads the JSON out of the
// rendered page body.
func (c *MatchesClient) getMatchesWithBrowser(ctx context.Context, endpoint string) ([]models.Match, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(datasetUserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, v ...interface{}) {
		if os.Getenv("MATCHSIGHT_BROWSER_DEBUG") == "1" {
			fmt.Printf("chromedp: "+format, v...)
		}
	}))
	defer cancel()

	var raw string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(endpoint),
		// Give the challenge script time to pass and reload.
		chromedp.Sleep(3*time.Second),
		chromedp.Text("body", &raw, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp navigation: %w", err)
	}

	var parsed matchesResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode browser-rendered response: %w", err)
	}
	return parsed.Matches, nil
}
