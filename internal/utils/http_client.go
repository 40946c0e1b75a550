package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultRetryCount   = 2
	defaultRetryWait    = 200 * time.Millisecond
	defaultRetryMaxWait = 2 * time.Second
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:8080", 5*time.Second)
//	resp, err := client.R().Get("/api/version/")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client for the API at baseURL.
//
// Requests and responses default to JSON. A non-positive timeout leaves the
// request timeout unset. Requests answered with 503 Service Unavailable,
// which the server uses for transient store failures, are retried with
// backoff.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(defaultRetryCount).
		SetRetryWaitTime(defaultRetryWait).
		SetRetryMaxWaitTime(defaultRetryMaxWait).
		AddRetryCondition(retryUnavailable)

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}

func retryUnavailable(resp *resty.Response, err error) bool {
	return err == nil && resp != nil && resp.StatusCode() == http.StatusServiceUnavailable
}
