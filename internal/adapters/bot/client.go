package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/lcalzada-xor/duskboard/internal/core/ports"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	statsPath    = "/api/stats"
	configPath   = "/api/config"
	savePath     = "/api/saveThings"
	maxBodyBytes = 4 << 20

	// DefaultPassword is what the bot ships with.
	DefaultPassword = "password"
)

// StatusError is returned for non-2xx responses from the bot.
type StatusError struct {
	Code     int
	Endpoint string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bot %s returned status %d", e.Endpoint, e.Code)
}

// Client talks to the bot's HTTP API.
type Client struct {
	baseURL  string
	password string
	http     *http.Client
}

var (
	_ ports.SnapshotSource = (*Client)(nil)
	_ ports.SettingsRemote = (*Client)(nil)
)

type Option func(*Client)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

func NewClient(baseURL, password string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		password: password,
		http:     &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchSnapshot implements ports.SnapshotSource.
func (c *Client) FetchSnapshot(ctx context.Context) (domain.Snapshot, error) {
	body, err := c.do(ctx, http.MethodGet, statsPath, nil, false)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.DecodeSnapshot(body)
}

// LoadSettings implements ports.SettingsRemote.
func (c *Client) LoadSettings(ctx context.Context) (domain.Settings, error) {
	body, err := c.do(ctx, http.MethodGet, configPath, nil, true)
	if err != nil {
		return nil, err
	}
	doc, err := domain.ParseSettings(body)
	if err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return doc, nil
}

// SaveSettings implements ports.SettingsRemote.
func (c *Client) SaveSettings(ctx context.Context, doc domain.Settings) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, savePath, payload, true)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, auth bool) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("password", c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{Code: resp.StatusCode, Endpoint: path}
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}
