package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	// BaseURL for sports-reference college basketball school pages
	BaseURL = "https://www.sports-reference.com/cbb/schools"

	// UserAgent for requests; a browser-y string avoids stripped-down pages
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36 hardwood/0.1"

	// RequestTimeout bounds a single page fetch
	RequestTimeout = 15 * time.Second
)

// FetchError reports a failed page retrieval for one team. It is recoverable:
// the caller skips the team and continues with the rest of the run.
type FetchError struct {
	TeamSlug   string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d for %s", e.TeamSlug, e.StatusCode, e.URL)
	}
	return fmt.Sprintf("fetching %s: %v", e.TeamSlug, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client fetches team season pages with a fixed inter-request delay.
type Client struct {
	httpClient *http.Client
	baseURL    string

	lastRequest time.Time
	delay       time.Duration

	// Chromedp context, set only when rendering is enabled
	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewClient creates a plain HTTP fetcher.
func NewClient(delay time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: RequestTimeout},
		baseURL:    BaseURL,
		delay:      delay,
	}
}

// NewRenderingClient creates a fetcher that runs pages through a headless
// browser, for pages whose tables only materialize after scripts run.
func NewRenderingClient(delay time.Duration) *Client {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	c := NewClient(delay)
	c.allocCtx = allocCtx
	c.cancel = cancel
	return c
}

// Close releases browser resources if rendering was enabled.
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// TeamURL builds the page URL for one team season, e.g.
// https://www.sports-reference.com/cbb/schools/troy/men/2025.html
func (c *Client) TeamURL(slug string, seasonEndYear int) string {
	return fmt.Sprintf("%s/%s/men/%d.html", c.baseURL, slug, seasonEndYear)
}

// FetchTeamPage retrieves the raw HTML for one team season and returns it
// with the resolved URL. A fixed delay is enforced between successive calls.
func (c *Client) FetchTeamPage(ctx context.Context, slug string, seasonEndYear int) (string, string, error) {
	url := c.TeamURL(slug, seasonEndYear)

	if !c.lastRequest.IsZero() {
		if wait := c.delay - time.Since(c.lastRequest); wait > 0 {
			log.Printf("Rate limiting: waiting %v before next request", wait)
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return "", url, &FetchError{TeamSlug: slug, URL: url, Err: ctx.Err()}
			}
		}
	}

	var html string
	var err error
	if c.allocCtx != nil {
		html, err = c.fetchRendered(ctx, url)
		if err != nil {
			err = &FetchError{TeamSlug: slug, URL: url, Err: err}
		}
	} else {
		html, err = c.fetch(ctx, slug, url)
	}
	c.lastRequest = time.Now()

	if err != nil {
		return "", url, err
	}
	return html, url, nil
}

func (c *Client) fetch(ctx context.Context, slug, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{TeamSlug: slug, URL: url, Err: err}
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &FetchError{TeamSlug: slug, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{TeamSlug: slug, URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{TeamSlug: slug, URL: url, Err: fmt.Errorf("reading body: %w", err)}
	}

	return string(body), nil
}

func (c *Client) fetchRendered(ctx context.Context, url string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(1*time.Second), // Allow JS to render
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp error: %w", err)
	}

	if htmlContent == "" {
		return "", fmt.Errorf("empty HTML content returned for %s", url)
	}

	return htmlContent, nil
}
