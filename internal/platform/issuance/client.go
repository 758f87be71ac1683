// Package issuance requests coupon codes from the external rewards service.
package issuance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"lead-voucher-backend/internal/platform/httpclient"
)

// Request is the JSON body expected by the rewards service.
type Request struct {
	ChannelID      string `json:"channelID"`
	RequestID      string `json:"requestID"`
	CampaignID     string `json:"campaignID"`
	IssuerMobileNo string `json:"issuerMobileNo"`
	ProgramID      string `json:"programID"`
}

// ResponseBody is the reply of the rewards service. The coupon code is nested under data.
type ResponseBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    *struct {
		CouponCode string `json:"couponCode"`
	} `json:"data"`
}

// CouponCode returns the issued code, or "" when the body carries none.
func (b ResponseBody) CouponCode() string {
	if b.Data == nil {
		return ""
	}
	return strings.TrimSpace(b.Data.CouponCode)
}

// ParseResponse decodes body leniently; a body that is not JSON yields a zero value.
func ParseResponse(body []byte) ResponseBody {
	var out ResponseBody
	_ = json.Unmarshal(body, &out)
	return out
}

type Client struct {
	httpClient *http.Client
	url        string
	token      string
	logger     zerolog.Logger
}

func NewClient(url, token string, httpClient *http.Client, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		url:        url,
		token:      token,
		logger:     logger.With().Str("component", "issuance").Logger(),
	}
}

// Send posts one issuance request. The error return is reserved for transport failures.
func (c *Client) Send(ctx context.Context, in Request) (*httpclient.Response, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode issuance request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build issuance request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := httpclient.Do(ctx, c.httpClient, req, httpclient.Is2xx)
	if err != nil {
		return nil, fmt.Errorf("issue coupon: %w", err)
	}

	c.logger.Debug().
		Str("campaign_id", in.CampaignID).
		Int("status", resp.Status).
		Msg("Issuance responded")
	return resp, nil
}
