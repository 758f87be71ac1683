package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"lead-voucher-backend/internal/common/validation"
	"lead-voucher-backend/internal/features/lead/campaign"
	"lead-voucher-backend/internal/features/lead/models"
	"lead-voucher-backend/internal/observability/metrics"
	"lead-voucher-backend/internal/platform/httpclient"
	"lead-voucher-backend/internal/platform/issuance"
	"lead-voucher-backend/internal/platform/relay"
)

// User-facing messages
const (
	MsgNetwork          = "Network error occurred. Please try again."
	MsgValidation       = "Please correct the highlighted fields"
	MsgRelayRejected    = "We could not record your details. Please try again."
	MsgIssuanceRejected = "We could not issue your voucher right now. Please try again."
)

type leadService struct {
	relay    relay.Relay
	issuer   CouponIssuer
	settings IssuanceSettings
	rules    validation.Rules
	metrics  *metrics.SubmissionMetrics
	logger   zerolog.Logger
}

func NewLeadService(
	relay relay.Relay,
	issuer CouponIssuer,
	settings IssuanceSettings,
	rules validation.Rules,
	metrics *metrics.SubmissionMetrics,
	logger zerolog.Logger,
) LeadService {
	return &leadService{
		relay:    relay,
		issuer:   issuer,
		settings: settings,
		rules:    rules,
		metrics:  metrics,
		logger:   logger.With().Str("component", "lead_service").Logger(),
	}
}

func (s *leadService) Submit(ctx context.Context, sub models.LeadSubmission) *models.SubmissionResult {
	result := s.submit(ctx, sub)

	interest := string(sub.Interest)
	if !campaign.Known(sub.Interest) {
		interest = "other"
	}

	if result.OK() {
		s.metrics.ObserveSubmission("success", interest)
		s.logger.Info().
			Str("mobile", maskMobile(sub.Mobile)).
			Str("interest", string(sub.Interest)).
			Msg("Voucher issued")
		return result
	}

	f := result.Failure
	s.metrics.ObserveSubmission(string(f.Stage), interest)
	event := s.logger.Warn()
	if f.Stage == models.StageValidation {
		event = s.logger.Debug()
	}
	event.
		Err(f.Cause).
		Str("stage", string(f.Stage)).
		Str("step", string(f.Step)).
		Str("mobile", maskMobile(sub.Mobile)).
		Str("reason", f.Message).
		Msg("Submission failed")
	return result
}

func (s *leadService) submit(ctx context.Context, sub models.LeadSubmission) *models.SubmissionResult {
	// callers validate too; the pipeline does not trust them
	if !s.rules.IsSubmittable(sub) {
		r := models.Failed(models.StageValidation, MsgValidation, nil)
		r.Failure.Fields = s.rules.Validate(sub).Messages()
		return r
	}

	// Stage A: record the lead
	start := time.Now()
	resp, err := s.relay.Send(ctx, sub)
	if err != nil {
		s.metrics.ObserveStage(string(models.StageRelay), false, time.Since(start).Seconds())
		return models.NetworkFailed(models.StageRelay, MsgNetwork, fmt.Errorf("relay: %w", err))
	}
	s.metrics.ObserveStage(string(models.StageRelay), resp.OK, time.Since(start).Seconds())
	if !resp.OK {
		msg := httpclient.ServerMessage(resp.Body)
		if msg == "" {
			msg = MsgRelayRejected
		}
		return models.Failed(models.StageRelay, msg, fmt.Errorf("relay status %d", resp.Status))
	}

	// Stage B: issue the coupon
	req := issuance.Request{
		ChannelID:      s.settings.ChannelID,
		RequestID:      s.settings.RequestID,
		CampaignID:     campaign.ResolveCampaign(sub.Interest),
		IssuerMobileNo: sub.Mobile,
		ProgramID:      s.settings.ProgramID,
	}

	start = time.Now()
	resp, err = s.issuer.Send(ctx, req)
	if err != nil {
		s.metrics.ObserveStage(string(models.StageIssuance), false, time.Since(start).Seconds())
		return models.NetworkFailed(models.StageIssuance, MsgNetwork, fmt.Errorf("issuance: %w", err))
	}

	body := issuance.ParseResponse(resp.Body)
	code := body.CouponCode()
	ok := resp.OK && code != ""
	s.metrics.ObserveStage(string(models.StageIssuance), ok, time.Since(start).Seconds())
	if !ok {
		msg := body.Message
		if msg == "" {
			msg = httpclient.ServerMessage(resp.Body)
		}
		if msg == "" {
			msg = MsgIssuanceRejected
		}
		return models.Failed(models.StageIssuance, msg,
			fmt.Errorf("issuance status %d, coupon code present: %t", resp.Status, code != ""))
	}

	return models.Succeeded(code, sub.Interest, campaign.ResolveAsset(sub.Interest))
}

func maskMobile(m string) string {
	if len(m) <= 4 {
		return m
	}
	return fmt.Sprintf("******%s", m[len(m)-4:])
}
