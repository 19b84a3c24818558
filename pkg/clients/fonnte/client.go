package fonnte

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ladenbot/laden/internal/config"
)

// Client exposes the Fonnte gateway operations used by the application.
type Client interface {
	Send(ctx context.Context, to, message string) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a Fonnte API client using the provided configuration values.
func NewClient(cfg config.FonnteConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Authorization", cfg.Token).
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// sendResponse mirrors the Fonnte send endpoint response.
type sendResponse struct {
	Status bool   `json:"status"`
	Reason string `json:"reason"`
}

// Send delivers one text message. Best effort: the gateway does not queue
// retries, so callers log failures and move on.
func (c *APIClient) Send(ctx context.Context, to, message string) error {
	result := new(sendResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"target":  to,
			"message": message,
		}).
		SetResult(result).
		Post("/send")
	if err != nil {
		return fmt.Errorf("send fonnte message: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("fonnte api error: code=%d", resp.StatusCode())
	}
	if !result.Status && result.Reason != "" {
		return fmt.Errorf("fonnte rejected message: %s", result.Reason)
	}

	return nil
}
