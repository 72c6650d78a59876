package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/supakorn-kn/peponi-admin/env"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/metrics"
)

type tokenContextKey struct{}

// WithToken attaches the admin bearer token forwarded on every backend call made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

func tokenFrom(ctx context.Context) string {

	token, _ := ctx.Value(tokenContextKey{}).(string)
	return token
}

// Client talks to the Peponi REST API.
type Client struct {
	http    *resty.Client
	metrics *metrics.Metrics
}

func NewClient(config env.BackendConfig, m *metrics.Metrics) *Client {

	client := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(config.RetryCount).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(retryCondition)

	return &Client{http: client, metrics: m}
}

// NewClientFromResty wraps an already configured resty client, mostly for tests.
func NewClientFromResty(client *resty.Client, m *metrics.Metrics) *Client {
	return &Client{http: client, metrics: m}
}

func retryCondition(r *resty.Response, err error) bool {

	if err != nil {
		return true
	}

	if r == nil {
		return false
	}

	code := r.StatusCode()
	return code == http.StatusBadGateway || code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout
}

func (c *Client) request(ctx context.Context) *resty.Request {

	req := c.http.R().SetContext(ctx)
	if token := tokenFrom(ctx); token != "" {
		req.SetAuthToken(token)
	}

	return req
}

// do executes req and converts transport failures and non-2xx statuses into coded errors.
func (c *Client) do(req *resty.Request, method, path string) (*resty.Response, error) {

	start := time.Now()
	resp, err := req.Execute(method, path)

	status := 0
	if resp != nil {
		status = resp.StatusCode()
	}

	c.metrics.ObserveBackend(method, status, time.Since(start))

	if err != nil {
		slog.Warn("backend request failed", "method", method, "path", path, "error", err)
		return nil, errors.BackendRequestFailedError.New(method, path, err.Error())
	}

	if status == http.StatusNotFound {
		return resp, errors.ObjectIDNotFoundError.New(path)
	}

	if resp.IsError() {

		message := extractMessage(resp.Body())
		if message == "" {
			message = resp.Status()
		}

		slog.Warn("backend responded with error", "method", method, "path", path, "status", status, "message", message)
		return resp, errors.BackendRequestFailedError.New(method, path, fmt.Sprintf("%d %s", status, message))
	}

	return resp, nil
}
