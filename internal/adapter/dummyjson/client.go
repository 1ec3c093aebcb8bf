package dummyjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/niksmo/shoe-store/internal/core/domain"
	"github.com/niksmo/shoe-store/internal/core/port"
	"github.com/niksmo/shoe-store/pkg/retry"
)

const DefaultBaseURL = "https://dummyjson.com"

var _ port.CatalogSource = (*Client)(nil)

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrInvalidBaseURL   = errors.New("invalid base url")
)

// HTTPDoer is satisfied by [*http.Client].
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// A Client reads product categories from a dummyjson compatible API.
type Client struct {
	baseURL  string
	doer     HTTPDoer
	retryCfg retry.RetryConfig
}

type ClientOpt func(*Client) error

func BaseURLOpt(rawURL string) ClientOpt {
	return func(c *Client) error {
		u, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidBaseURL, rawURL)
		}
		c.baseURL = strings.TrimRight(rawURL, "/")
		return nil
	}
}

func HTTPDoerOpt(doer HTTPDoer) ClientOpt {
	return func(c *Client) error {
		if doer == nil {
			return errors.New("http doer is nil")
		}
		c.doer = doer
		return nil
	}
}

func TimeoutOpt(timeout time.Duration) ClientOpt {
	return func(c *Client) error {
		if timeout <= 0 {
			return errors.New("timeout must be positive")
		}
		c.doer = &http.Client{Timeout: timeout}
		return nil
	}
}

// MaxAttemptsOpt sets how many times a category request is tried. Only
// transport errors and 5xx responses are retried.
func MaxAttemptsOpt(n int) ClientOpt {
	return func(c *Client) error {
		if n < 1 {
			return errors.New("max attempts must be at least 1")
		}
		c.retryCfg.MaxAttempts = n
		return nil
	}
}

func NewClient(opts ...ClientOpt) (*Client, error) {
	const op = "dummyjson.NewClient"

	c := &Client{
		baseURL: DefaultBaseURL,
		doer:    &http.Client{Timeout: 10 * time.Second},
		retryCfg: retry.RetryConfig{
			MaxAttempts: 1,
			Backoff:     retry.ExponentialBackoff(100 * time.Millisecond),
			ShouldRetry: isTransient,
		},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return c, nil
}

func (c *Client) FetchCategory(
	ctx context.Context, category string,
) ([]domain.Product, error) {
	const op = "Client.FetchCategory"
	log := slog.With("op", op, "category", category)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := retry.DoWithResult(ctx, c.retryCfg, func() (categoryResponse, error) {
		return c.getCategory(ctx, category)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", category, err)
	}

	log.Debug("category fetched", "nProducts", len(resp.Products))
	return toDomain(resp.Products), nil
}

func (c *Client) categoryURL(category string) string {
	return c.baseURL + "/products/category/" + url.PathEscape(category)
}

func (c *Client) getCategory(
	ctx context.Context, category string,
) (categoryResponse, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.categoryURL(category), nil,
	)
	if err != nil {
		return categoryResponse{}, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.doer.Do(req)
	if err != nil {
		return categoryResponse{}, transientErr{err}
	}
	defer c.drainAndClose(res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		err := fmt.Errorf("%w: %s", ErrUnexpectedStatus, res.Status)
		if res.StatusCode >= 500 {
			return categoryResponse{}, transientErr{err}
		}
		return categoryResponse{}, err
	}

	var v categoryResponse
	if err := json.NewDecoder(res.Body).Decode(&v); err != nil {
		return categoryResponse{}, fmt.Errorf("invalid JSON body: %w", err)
	}
	return v, nil
}

func (c *Client) drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	if err := body.Close(); err != nil {
		slog.Warn("failed to close response body", "err", err)
	}
}

type transientErr struct {
	err error
}

func (e transientErr) Error() string {
	return e.err.Error()
}

func (e transientErr) Unwrap() error {
	return e.err
}

func isTransient(err error) bool {
	var te transientErr
	return errors.As(err, &te) && !errors.Is(err, context.Canceled)
}
