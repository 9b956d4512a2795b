// Package notify sends owner notifications through an outbound webhook.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/aferrandiz/ventipro/internal/config"
)

// Notificacion is one message pushed to the owner.
type Notificacion struct {
	Titulo    string `json:"titulo"`
	Contenido string `json:"contenido"`
}

// Notifier delivers notifications. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notificar(ctx context.Context, n Notificacion) error
}

// WebhookClient posts notifications to a configured webhook URL.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewNotifier builds a Notifier from configuration. An empty webhook URL
// yields a no-op notifier so callers never branch on presence.
func NewNotifier(cfg config.NotifyConfig) Notifier {
	if cfg.WebhookURL == "" {
		return NopNotifier{}
	}
	return &WebhookClient{
		httpClient: resty.New().SetTimeout(10 * time.Second),
		url:        cfg.WebhookURL,
	}
}

// Notificar delivers one notification, failing on any non-2xx response.
func (c *WebhookClient) Notificar(ctx context.Context, n Notificacion) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(n).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("failed to post notification: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("notification webhook returned %d", resp.StatusCode())
	}
	return nil
}

// NopNotifier discards every notification. Used when no webhook is configured.
type NopNotifier struct{}

// Notificar implements Notifier.
func (NopNotifier) Notificar(context.Context, Notificacion) error { return nil }
