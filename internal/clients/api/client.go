package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/maxaizer/career-dashboard/internal/logger"
	"github.com/maxaizer/career-dashboard/internal/metrics"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

const (
	loginPath    = "/auth/login/"
	registerPath = "/auth/register/"
	refreshPath  = "/auth/refresh/"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the career API on behalf of one visitor. Credentials live
// in the client's own cookie jar. A 401 triggers one silent refresh after
// which the request is replayed once. Concurrent 401s share the same refresh.
type Client struct {
	baseURL     *url.URL
	httpClient  HTTPClient
	rateLimiter *rate.Limiter

	mu                 sync.RWMutex
	jar                http.CookieJar
	expiries           map[string]time.Time
	onSessionExpired   func()
	onSessionRefreshed func()

	refreshGroup singleflight.Group
}

type call struct {
	name    string
	method  string
	path    string
	query   url.Values
	payload any
}

func NewClient(baseURL string) (*Client, error) {

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base url: %s", baseURL)
	}

	jar, err := newJar()
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		jar:        jar,
		expiries:   make(map[string]time.Time),
	}, nil
}

func newJar() (http.CookieJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("error creating cookie jar: %w", err)
	}
	return jar, nil
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient = &http.Client{Timeout: timeout}
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	if maxRequestsPerSecond <= 0 {
		c.rateLimiter = nil
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// OnSessionExpired registers the hook called when a refresh fails or a
// replayed request is rejected again.
func (c *Client) OnSessionExpired(hook func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSessionExpired = hook
}

// OnSessionRefreshed registers the hook called after a refresh succeeded and
// the jar holds the rotated credentials.
func (c *Client) OnSessionRefreshed(hook func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSessionRefreshed = hook
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) send(ctx context.Context, call call, out any) error {

	body, err := encodePayload(call.payload)
	if err != nil {
		return err
	}

	status, respBody, err := c.do(ctx, call, body)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && refreshable(call.path) {
		if err := c.refreshSession(ctx); err != nil {
			log.Debugf("session refresh before %s failed: %v", call.name, err)
			c.expireSession()
			return ErrSessionExpired
		}

		status, respBody, err = c.do(ctx, call, body)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			c.expireSession()
			return ErrSessionExpired
		}
	}

	if status < 200 || status >= 300 {
		return newAPIError(status, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("error decoding JSON response of %s: %w", call.name, err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, call call, body []byte) (int, []byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return 0, nil, err
		}
	}

	target := c.endpoint(call.path)
	if len(call.query) > 0 {
		target.RawQuery = call.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, call.method, target.String(), reader)
	if err != nil {
		return 0, nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	jar := c.cookieJar()
	for _, cookie := range jar.Cookies(target) {
		req.AddCookie(cookie)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.APIRequestDuration.WithLabelValues(call.name).Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.APIRequestsCounter.WithLabelValues(call.name, "error").Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAPI).Errorf("error sending %s request: %v", call.name, err)
		return 0, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	metrics.APIRequestsCounter.WithLabelValues(call.name, strconv.Itoa(resp.StatusCode)).Inc()

	if cookies := resp.Cookies(); len(cookies) > 0 {
		jar.SetCookies(target, cookies)
		c.rememberExpiries(cookies, time.Now())
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAPI).
			Errorf("%s request failed with status %d", call.name, resp.StatusCode)
	}

	return resp.StatusCode, respBody, nil
}

// refreshSession runs at most one refresh call at a time for this client;
// callers arriving while it is in flight wait for and share its outcome.
func (c *Client) refreshSession(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		err := c.Refresh(context.WithoutCancel(ctx))
		if err != nil {
			metrics.SessionRefreshCounter.WithLabelValues("failed").Inc()
			return nil, err
		}
		metrics.SessionRefreshCounter.WithLabelValues("succeeded").Inc()

		c.mu.RLock()
		hook := c.onSessionRefreshed
		c.mu.RUnlock()
		if hook != nil {
			hook()
		}
		return nil, nil
	})
	return err
}

func (c *Client) expireSession() {
	c.ResetCookies()

	c.mu.RLock()
	hook := c.onSessionExpired
	c.mu.RUnlock()

	if hook != nil {
		hook()
	}
}

func (c *Client) endpoint(path string) *url.URL {
	target := *c.baseURL
	target.Path = c.baseURL.Path + path
	target.RawQuery = ""
	return &target
}

func refreshable(path string) bool {
	switch path {
	case loginPath, registerPath, refreshPath:
		return false
	}
	return true
}

func encodePayload(payload any) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error encoding request body: %w", err)
	}
	return body, nil
}
