package espn

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/omarshaarawi/fantasyfeed/internal/config"
)

const (
	baseURL           = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"
	scoreboardBaseURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"
)

type Client struct {
	httpClient    *http.Client
	baseURL       string
	scoreboardURL string
	Config        config.ESPNAPI
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

func WithScoreboardURL(url string) Option {
	return func(c *Client) { c.scoreboardURL = strings.TrimRight(url, "/") }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func NewClient(cfg config.ESPNAPI, opts ...Option) *Client {
	c := &Client{
		httpClient:    &http.Client{Timeout: 10 * time.Second, Transport: otelhttp.NewTransport(http.DefaultTransport)},
		baseURL:       baseURL,
		scoreboardURL: scoreboardBaseURL,
		Config:        cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get calls the fantasy API. Comma separated param values are sent as
// repeated query keys, which is how ESPN expects multiple views.
func (c *Client) Get(ctx context.Context, endpoint string, params, headers map[string]string, result interface{}) error {
	return c.get(ctx, c.baseURL+endpoint, params, headers, true, result)
}

// GetScoreboard calls the public NFL site API, which needs no cookies.
func (c *Client) GetScoreboard(ctx context.Context, endpoint string, params map[string]string, result interface{}) error {
	return c.get(ctx, c.scoreboardURL+endpoint, params, nil, false, result)
}

func (c *Client) get(ctx context.Context, url string, params, headers map[string]string, withCookies bool, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	q := req.URL.Query()
	for key, value := range params {
		values := strings.Split(value, ",")
		for _, v := range values {
			q.Add(key, strings.TrimSpace(v))
		}
	}
	req.URL.RawQuery = q.Encode()

	if withCookies {
		c.setCookies(req)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}

func (c *Client) setCookies(req *http.Request) {
	if c.Config.SWID == "" && c.Config.ESPNS2 == "" {
		return
	}
	cookie := fmt.Sprintf("SWID=%s; espn_s2=%s", c.Config.SWID, c.Config.ESPNS2)
	req.Header.Set("Cookie", cookie)
}
