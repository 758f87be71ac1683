package service

import (
	"context"

	"lead-voucher-backend/internal/features/lead/models"
	"lead-voucher-backend/internal/platform/httpclient"
	"lead-voucher-backend/internal/platform/issuance"
)

// LeadService runs the submission pipeline
type LeadService interface {
	// Submit relays the lead and then requests a coupon. It never returns nil.
	Submit(ctx context.Context, sub models.LeadSubmission) *models.SubmissionResult
}

// CouponIssuer requests a coupon code for a campaign.
type CouponIssuer interface {
	Send(ctx context.Context, req issuance.Request) (*httpclient.Response, error)
}

// IssuanceSettings are the fixed identifiers sent with every issuance request.
type IssuanceSettings struct {
	ChannelID string
	RequestID string
	ProgramID string
}
