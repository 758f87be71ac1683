// Package relay forwards validated leads to the external survey collector.
package relay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"lead-voucher-backend/internal/common/config"
	"lead-voucher-backend/internal/features/lead/models"
	"lead-voucher-backend/internal/platform/httpclient"
)

// Relay sends a submission to the survey collector. The error return is reserved for
// transport failures.
type Relay interface {
	Send(ctx context.Context, sub models.LeadSubmission) (*httpclient.Response, error)
}

// Client posts form-encoded entries to a Google-Forms-style collector.
type Client struct {
	httpClient *http.Client
	cfg        config.Relay
	logger     zerolog.Logger
}

func NewClient(cfg config.Relay, httpClient *http.Client, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
		logger:     logger.With().Str("component", "relay").Logger(),
	}
}

// New decides once whether the relay stage is live. With incomplete configuration the
// returned Relay skips the call and reports success.
func New(cfg config.Relay, httpClient *http.Client, logger zerolog.Logger) Relay {
	if !cfg.Complete() {
		logger.Warn().Msg("Relay form identifiers missing, relay stage disabled")
		return Noop{}
	}
	return NewClient(cfg, httpClient, logger)
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/forms/d/e/%s/formResponse",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(c.cfg.FormID))
}

// Encode builds the form body. Email and occupation are only sent when present.
func (c *Client) Encode(sub models.LeadSubmission) url.Values {
	params := url.Values{}
	params.Add("entry."+c.cfg.FieldName, sub.Name)
	params.Add("entry."+c.cfg.FieldMobile, sub.Mobile)
	if sub.Email != "" {
		params.Add("entry."+c.cfg.FieldEmail, sub.Email)
	}
	if sub.Occupation != "" {
		params.Add("entry."+c.cfg.FieldOccupation, sub.Occupation)
	}
	return params
}

func (c *Client) Send(ctx context.Context, sub models.LeadSubmission) (*httpclient.Response, error) {
	req, err := http.NewRequest(http.MethodPost, c.endpoint(), strings.NewReader(c.Encode(sub).Encode()))
	if err != nil {
		return nil, fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")

	resp, err := httpclient.Do(ctx, c.httpClient, req, httpclient.Is2xxOr3xx)
	if err != nil {
		return nil, fmt.Errorf("relay submission: %w", err)
	}

	c.logger.Debug().Int("status", resp.Status).Bool("ok", resp.OK).Msg("Relay responded")
	return resp, nil
}

// Noop stands in for an unconfigured relay.
type Noop struct{}

func (Noop) Send(context.Context, models.LeadSubmission) (*httpclient.Response, error) {
	return &httpclient.Response{OK: true}, nil
}
