// Package notify posts urgent feedback to a webhook.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/umputun/feedboard/pkg/domain"
)

// Webhook sends analyzed feedback as JSON to a configured URL
type Webhook struct {
	client *resty.Client
	url    string
}

// payload is the webhook request body
type payload struct {
	ID        string           `json:"id"`
	Source    string           `json:"source"`
	Title     string           `json:"title,omitempty"`
	Urgency   domain.Urgency   `json:"urgency"`
	Sentiment domain.Sentiment `json:"sentiment"`
	Summary   string           `json:"summary"`
	Themes    []string         `json:"themes"`
}

// NewWebhook makes a notifier posting to url
func NewWebhook(url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Webhook{client: resty.New().SetTimeout(timeout), url: url}
}

// Notify posts the item, any non-2xx response is an error
func (w *Webhook) Notify(ctx context.Context, item domain.FeedbackItem) error {
	body := payload{
		ID:        item.ID,
		Source:    item.Source,
		Title:     item.Title,
		Urgency:   item.Urgency,
		Sentiment: item.Sentiment,
		Summary:   item.Summary,
		Themes:    item.Themes,
	}
	if body.Themes == nil {
		body.Themes = []string{}
	}

	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	return nil
}
