// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package f5client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/helper/gc"
)

const (
	// loginPath is the iControl REST authentication endpoint.
	loginPath = "/mgmt/shared/authn/login"

	// authTokenHeader carries the session token on every authenticated call.
	authTokenHeader = "X-F5-Auth-Token"

	// sessionMaxAge is the safety margin after which a cached session is
	// considered stale. BIG-IP tokens are hard-limited to 20 minutes; the
	// 18-minute margin guarantees the token is never used near expiry.
	sessionMaxAge = 18 * time.Minute

	// defaultTimeout bounds each HTTP request when no timeout is configured.
	defaultTimeout = 30 * time.Second
)

// Config holds connection settings for a BIG-IP management endpoint.
type Config struct {
	// Host is the management address, either a bare hostname
	// ("bigip.example.com") or a full URL ("https://bigip.example.com").
	Host string
	// Username and Password are the credentials for the "tmos" login provider.
	Username string
	Password string
	// InsecureSkipVerify disables TLS certificate verification, which is
	// common for appliances carrying self-signed management certificates.
	InsecureSkipVerify bool
	// Timeout bounds each HTTP request. Zero means defaultTimeout.
	Timeout time.Duration
	// UserAgent overrides the default User-Agent string.
	UserAgent string
}

// Client is an authenticated HTTP client for the BIG-IP iControl REST API.
//
// The session token is shared, mutable state: a single Client may be used by
// multiple goroutines, so token reads and lazy re-authentication are guarded
// by a mutex (single-writer discipline — two callers can never clobber each
// other's token).
type Client struct {
	baseURL    string
	username   string
	password   string
	userAgent  string
	httpClient *http.Client

	mu          sync.Mutex
	token       string
	tokenIssued time.Time

	// now is the clock used for session-age checks; overridable in tests.
	now func() time.Time
}

// New creates a Client from the given configuration.
//
// It validates required fields before any network call and returns a
// ConfigurationError when Host, Username, or Password is empty. The HTTP
// transport is cloned from http.DefaultTransport with the TLS-verification
// preference applied.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, &ConfigurationError{Field: "Host", Reason: "must not be empty"}
	}
	if cfg.Username == "" {
		return nil, &ConfigurationError{Field: "Username", Reason: "must not be empty"}
	}
	if cfg.Password == "" {
		return nil, &ConfigurationError{Field: "Password", Reason: "must not be empty"}
	}

	base := cfg.Host
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	base = strings.TrimRight(base, "/")
	if _, err := url.Parse(base); err != nil {
		return nil, &ConfigurationError{Field: "Host", Reason: fmt.Sprintf("is not a valid URL: %v", err)}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify} //nolint:gosec // explicit user choice for appliance endpoints

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "BIG-IP-Cert-Reporter (+https://github.com/H0llyW00dzZ/bigip-cert-reporter)"
	}

	return &Client{
		baseURL:   base,
		username:  cfg.Username,
		password:  cfg.Password,
		userAgent: userAgent,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		now: time.Now,
	}, nil
}

// BaseURL returns the normalized management endpoint URL.
func (c *Client) BaseURL() string { return c.baseURL }

// RewriteLoopback rewrites a reference link whose host is the appliance's
// loopback address to point at the real session host. BIG-IP embeds
// "https://localhost/..." links in profilesReference fields; those links are
// only reachable through the management address the session was opened on.
func (c *Client) RewriteLoopback(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	host := u.Hostname()
	if host != "localhost" && host != "127.0.0.1" {
		return link
	}
	return c.baseURL + u.RequestURI()
}

// loginRequest is the wire shape of the authentication payload.
type loginRequest struct {
	Username          string `json:"username"`
	Password          string `json:"password"`
	LoginProviderName string `json:"loginProviderName"`
}

// loginResponse is the wire shape of a successful authentication.
type loginResponse struct {
	Token struct {
		Token     string `json:"token"`
		StartTime string `json:"startTime"`
	} `json:"token"`
}

// login acquires a fresh session token. Callers must hold c.mu.
func (c *Client) login(ctx context.Context) error {
	payload, err := json.Marshal(loginRequest{
		Username:          c.username,
		Password:          c.password,
		LoginProviderName: "tmos",
	})
	if err != nil {
		return &TransportError{Op: "login", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(payload))
	if err != nil {
		return &TransportError{Op: "login", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "login", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return &AuthenticationError{Op: "login", Err: fmt.Errorf("credentials rejected for user %q", c.username)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Op: "login", StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status")}
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return &TransportError{Op: "login", Err: fmt.Errorf("reading response body: %w", err)}
	}

	var lr loginResponse
	if err := json.Unmarshal(buf.Bytes(), &lr); err != nil {
		return &TransportError{Op: "login", Err: fmt.Errorf("decoding response: %w", err)}
	}
	if lr.Token.Token == "" {
		return &AuthenticationError{Op: "login", Err: fmt.Errorf("no token in response")}
	}

	c.token = lr.Token.Token
	c.tokenIssued = c.now()
	return nil
}

// ensureSession returns a token valid for the upcoming call, re-authenticating
// when the cached session's issue time plus the safety margin has elapsed.
// Renewal is lazy: there is no proactive background refresh.
//
// ensureSession is safe for concurrent use.
func (c *Client) ensureSession(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == "" || c.now().Sub(c.tokenIssued) >= sessionMaxAge {
		if err := c.login(ctx); err != nil {
			return "", err
		}
	}
	return c.token, nil
}

// Do performs an authenticated HTTP call against the management API and
// returns the raw response body.
//
// The session token is attached via the X-F5-Auth-Token header. An HTTP 401
// yields an AuthenticationError; any other failure (network, TLS, non-2xx)
// yields a TransportError. There is no automatic retry.
func (c *Client) Do(ctx context.Context, method, path string, header http.Header, body []byte) ([]byte, error) {
	token, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	reqURL := path
	if !strings.Contains(path, "://") {
		reqURL = c.baseURL + path
	}
	op := method + " " + path

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set(authTokenHeader, token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &AuthenticationError{Op: op, Err: fmt.Errorf("session rejected")}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", strings.TrimSpace(string(buf.Bytes())))}
	}

	return append([]byte(nil), buf.Bytes()...), nil
}

// GetJSON performs an authenticated GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	data, err := c.Do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: "GET " + path, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// PostJSON performs an authenticated POST with a JSON payload and, when out is
// non-nil, decodes the JSON response into it.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out)
}

// PatchJSON performs an authenticated PATCH with a JSON payload and, when out
// is non-nil, decodes the JSON response into it.
func (c *Client) PatchJSON(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPatch, path, in, out)
}

// sendJSON marshals in, performs the call, and optionally decodes into out.
func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: fmt.Errorf("encoding request: %w", err)}
	}
	data, err := c.Do(ctx, method, path, nil, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: method + " " + path, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
