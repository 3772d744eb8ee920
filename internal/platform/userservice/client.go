package userservice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/todo-microservices/task-service/internal/platform/logger"
)

// DefaultTimeout bounds a lookup when the caller configures none.
const DefaultTimeout = 5 * time.Second

// Client asks the user service whether a user exists.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled client built by NewClient.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithTimeout sets the per-lookup deadline. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// NewClient creates a client for the user service at baseURL.
// If logger is nil, a default logger will be used.
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid user service url %q", baseURL)
	}

	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: cleanhttp.DefaultPooledClient(),
		timeout:    DefaultTimeout,
		logger:     logger.With(slog.String("component", "user_service_client")),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Exists reports whether the user service knows userID. Only a 200 response
// counts as existing; any other status, a transport failure or a timeout is
// logged and reported as false.
func (c *Client) Exists(ctx context.Context, userID int64) bool {
	log := logger.FromContextOrDefault(ctx, c.logger).With(slog.Int64("user_id", userID))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/api/users/" + strconv.FormatInt(userID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Warn("failed to build user lookup request", slog.String("error", err.Error()))
		return false
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("user lookup failed", slog.String("error", err.Error()))
		return false
	}
	defer func() {
		// Drain so the pooled connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		log.Debug("user lookup returned non-OK status", slog.Int("status", resp.StatusCode))
		return false
	}

	return true
}
