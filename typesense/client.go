// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package typesense

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-resty/resty/v2"

	"github.com/danielhkuo/quickly-ask/models"
)

const apiKeyHeader = "X-TYPESENSE-API-KEY"

var ErrUnhealthy = errors.New("typesense reports unhealthy")

type Config struct {
	Host     string
	Port     int
	Protocol string

	// SearchKey is used for health checks and searches,
	// AdminKey for everything that writes
	SearchKey string
	AdminKey  string

	SearchTimeout time.Duration
	AdminTimeout  time.Duration
	NumRetries    int
	RetryInterval time.Duration
}

// DefaultConfig returns the timeouts and retry policy used in production
func DefaultConfig() Config {
	return Config{
		Protocol:      "http",
		Port:          8108,
		SearchTimeout: 2 * time.Second,
		AdminTimeout:  5 * time.Second,
		NumRetries:    3,
		RetryInterval: time.Second,
	}
}

func (c Config) BaseURL() string {
	return fmt.Sprintf("%s://%s:%s", c.Protocol, c.Host, strconv.Itoa(c.Port))
}

// APIError is a non-2xx answer from Typesense
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("typesense: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to a single Typesense node
type Client struct {
	search        *resty.Client
	admin         *resty.Client
	numRetries    int
	retryInterval time.Duration
}

func New(cfg Config) *Client {
	base := cfg.BaseURL()
	return &Client{
		search: resty.New().
			SetBaseURL(base).
			SetHeader(apiKeyHeader, cfg.SearchKey).
			SetTimeout(cfg.SearchTimeout),
		admin: resty.New().
			SetBaseURL(base).
			SetHeader(apiKeyHeader, cfg.AdminKey).
			SetTimeout(cfg.AdminTimeout),
		numRetries:    cfg.NumRetries,
		retryInterval: cfg.RetryInterval,
	}
}

type healthResponse struct {
	OK bool `json:"ok"`
}

type field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type collectionSchema struct {
	Name   string  `json:"name"`
	Fields []field `json:"fields"`
}

type searchResponse struct {
	Found int `json:"found"`
	Hits  []struct {
		Document models.Question `json:"document"`
	} `json:"hits"`
}

// Health checks GET /health
func (c *Client) Health(ctx context.Context) error {
	var out healthResponse
	_, err := c.do(ctx, c.search, http.MethodGet, "/health", func(r *resty.Request) {
		r.SetResult(&out)
	})
	if err != nil {
		return err
	}
	if !out.OK {
		return ErrUnhealthy
	}
	return nil
}

// EnsureCollection creates the subject's collection unless it already exists
func (c *Client) EnsureCollection(ctx context.Context, subject models.Subject) (bool, error) {
	name := subject.Collection()

	_, err := c.do(ctx, c.admin, http.MethodGet, "/collections/{collection}", func(r *resty.Request) {
		r.SetPathParam("collection", name)
	})
	if err == nil {
		return false, nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		return false, fmt.Errorf("retrieve collection %s: %w", name, err)
	}

	schema := collectionSchema{
		Name: name,
		// id is implicit
		Fields: []field{
			{Name: "question", Type: "string"},
			{Name: "answer", Type: "string"},
			{Name: "subject", Type: "string"},
		},
	}
	_, err = c.do(ctx, c.admin, http.MethodPost, "/collections", func(r *resty.Request) {
		r.SetBody(schema)
	})
	if err != nil {
		return false, fmt.Errorf("create collection %s: %w", name, err)
	}
	return true, nil
}

// Search queries the question field of the subject's collection
func (c *Client) Search(ctx context.Context, subject models.Subject, query string, limit int) ([]models.Question, error) {
	var out searchResponse
	_, err := c.do(ctx, c.search, http.MethodGet, "/collections/{collection}/documents/search", func(r *resty.Request) {
		r.SetPathParam("collection", subject.Collection()).
			SetQueryParams(map[string]string{
				"q":        query,
				"query_by": "question",
				"per_page": strconv.Itoa(limit),
			}).
			SetResult(&out)
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", subject.Collection(), err)
	}

	results := make([]models.Question, 0, len(out.Hits))
	for _, hit := range out.Hits {
		results = append(results, hit.Document)
	}
	return results, nil
}

func (c *Client) Create(ctx context.Context, q models.Question) error {
	_, err := c.do(ctx, c.admin, http.MethodPost, "/collections/{collection}/documents", func(r *resty.Request) {
		r.SetPathParam("collection", q.Subject.Collection()).
			SetBody(q)
	})
	if err != nil {
		return fmt.Errorf("create document in %s: %w", q.Subject.Collection(), err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, subject models.Subject, id string) error {
	_, err := c.do(ctx, c.admin, http.MethodDelete, "/collections/{collection}/documents/{id}", func(r *resty.Request) {
		r.SetPathParams(map[string]string{
			"collection": subject.Collection(),
			"id":         id,
		})
	})
	if err != nil {
		return fmt.Errorf("delete document %s from %s: %w", id, subject.Collection(), err)
	}
	return nil
}

// do sends one request, retrying transport errors and 5xx answers
func (c *Client) do(ctx context.Context, client *resty.Client, method, path string, build func(*resty.Request)) (*resty.Response, error) {
	var resp *resty.Response

	err := retry.Do(func() error {
		req := client.R().SetContext(ctx)
		build(req)

		r, err := req.Execute(method, path)
		if err != nil {
			return err
		}
		if r.IsError() {
			return newAPIError(r)
		}
		resp = r
		return nil
	},
		retry.Context(ctx),
		retry.Attempts(uint(max(c.numRetries, 0)+1)),
		retry.Delay(c.retryInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return retryable(ctx, err) }),
		retry.OnRetry(func(attempt uint, err error) {
			slog.Warn("typesense request failed, retrying",
				"method", method,
				"path", path,
				"attempt", attempt+1,
				"error", err,
			)
		}),
	)
	return resp, err
}

// retryable stops only when the caller's context is done. A per-request
// client timeout is a transport error and is retried.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}

func newAPIError(r *resty.Response) *APIError {
	var body struct {
		Message string `json:"message"`
	}
	msg := r.String()
	if err := json.Unmarshal(r.Body(), &body); err == nil && body.Message != "" {
		msg = body.Message
	}
	return &APIError{StatusCode: r.StatusCode(), Message: msg}
}
