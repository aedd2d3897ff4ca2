package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.weather.gov"

// acceptGeoJSON is the media type api.weather.gov serves alert records in.
const acceptGeoJSON = "application/geo+json"

// Client talks to the api.weather.gov alerts API. One Client shares its
// *http.Client with the rest of the run; requests go out one at a time
// through a polite per-client rate limiter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
}

// NewClient creates an alerts API client. The userAgent must carry a
// contact string; api.weather.gov refuses anonymous callers.
func NewClient(httpClient *http.Client, baseURL, userAgent string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(5, 5),
	}
}

// Alert fetches and decodes the full alert record for one CAP identifier.
// The caller cannot distinguish a transport failure from a malformed
// body; both come back as an error for the identifier.
func (c *Client) Alert(ctx context.Context, id string) (*Alert, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "nws: rate limiter wait")
	}

	reqURL := fmt.Sprintf("%s/alerts/%s", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "nws: build request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptGeoJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "nws: fetch alert %s", id)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("nws: alert %s returned status %d", id, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "nws: read alert %s", id)
	}

	var alert Alert
	if err := json.Unmarshal(body, &alert); err != nil {
		return nil, eris.Wrapf(err, "nws: parse alert %s", id)
	}

	return &alert, nil
}
