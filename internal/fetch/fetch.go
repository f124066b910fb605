package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// StatusError reports a response whose status code was outside the 2xx range.
// The body is discarded; callers that need to branch on the code can unwrap
// with errors.As.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d fetching %s", e.Code, e.URL)
}

// Client wraps http.Client with a per-request timeout, custom headers, and a
// redirect cap. It performs exactly one attempt per Get: no retries and no
// caching. The zero value is usable.
type Client struct {
	// HTTPClient, when set, is used as the transport instead of a fresh
	// default client. A copy is taken to attach the redirect policy, so the
	// caller's client is never mutated.
	HTTPClient *http.Client
	UserAgent  string
	// Headers are set verbatim on every request after the User-Agent.
	Headers map[string]string
	// Timeout bounds each request. Zero means no bound beyond ctx.
	Timeout time.Duration
	// RedirectMaxHops caps redirect following to avoid loops. Zero means
	// default (5).
	RedirectMaxHops int
	// InsecureSkipVerify disables TLS certificate verification. Ignored when
	// HTTPClient carries its own transport.
	InsecureSkipVerify bool

	Logger zerolog.Logger
}

// Get issues a single GET with context and returns the response body together
// with its Content-Type header. Transport errors surface unchanged; non-2xx
// statuses are returned as *StatusError.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("parse url: %w", err)
	}
	if !isHTTPScheme(u) {
		return nil, "", fmt.Errorf("unsupported URL scheme: %q", rawURL)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("new request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}

	c.Logger.Debug().Str("url", u.String()).Msg("fetch start")
	resp, err := c.getHTTPClient().Do(req)
	if err != nil {
		c.Logger.Debug().Str("url", u.String()).Err(err).Msg("fetch failed")
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.Logger.Debug().Str("url", u.String()).Int("status", resp.StatusCode).Msg("fetch rejected")
		return nil, "", &StatusError{Code: resp.StatusCode, URL: u.String()}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	contentType := resp.Header.Get("Content-Type")
	c.Logger.Debug().
		Str("url", u.String()).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Str("contentType", contentType).
		Msg("fetch done")
	return body, contentType, nil
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating caller's client
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	hc := &http.Client{CheckRedirect: c.checkRedirectFunc()}
	if c.InsecureSkipVerify {
		hc.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return hc
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		// Only allow http/https during redirects
		if req.URL == nil || !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
