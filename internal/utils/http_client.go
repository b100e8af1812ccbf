package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// resty keeps a cookie jar per client, so the session cookie issued by the
// API is replayed on subsequent requests made with the same HTTPClient.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:8080")
//	resp, err := client.R().SetBody(creds).Post("/api/v1/user/signin")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a JSON client bound to baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(10 * time.Second)

	return &HTTPClient{Client: client}
}
