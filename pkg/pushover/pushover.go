package pushover

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultEndpoint = "https://api.pushover.net/1/messages.json"

type Config struct {
	Token    string        `split_words:"true"`
	User     string        `split_words:"true"`
	Endpoint string        `split_words:"true" default:"https://api.pushover.net/1/messages.json"`
	Timeout  time.Duration `split_words:"true" default:"10s"`
}

// ClientOption customizes Client.
type ClientOption func(*Client)

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client delivers push notifications to the persona's owner. It is a
// fire-and-forget side channel: Notify never returns an error, and without
// both secrets configured it only logs locally.
type Client struct {
	endpoint   string
	token      string
	user       string
	httpClient *http.Client
}

func NewClient(cfg Config, opts ...ClientOption) *Client {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		endpoint: endpoint,
		token:    strings.TrimSpace(cfg.Token),
		user:     strings.TrimSpace(cfg.User),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if !client.Configured() {
		log.Warn().Msg("pushover credentials not set, notifications will only be logged")
	}

	return client
}

// Configured reports whether both secrets are present.
func (c *Client) Configured() bool {
	return c.token != "" && c.user != ""
}

// Notify sends text as a best-effort push notification. Delivery failures
// are logged and swallowed; callers must not depend on delivery.
func (c *Client) Notify(ctx context.Context, text string) {
	if !c.Configured() {
		log.Info().Str("message", text).Msg("pushover notification (not configured)")
		return
	}

	form := url.Values{
		"token":   {c.token},
		"user":    {c.user},
		"message": {text},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		log.Warn().Err(err).Str("message", text).Msg("build pushover request failed")
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("message", text).Msg("pushover delivery failed")
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Warn().Int("status", resp.StatusCode).Str("message", text).Msg("pushover delivery rejected")
		return
	}

	log.Debug().Msg("pushover notification sent")
}
