package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"lead-voucher-backend/internal/common/errors"
	"lead-voucher-backend/internal/common/middleware"
	"lead-voucher-backend/internal/common/validation"
	"lead-voucher-backend/internal/features/lead/campaign"
	"lead-voucher-backend/internal/features/lead/models"
	"lead-voucher-backend/internal/features/lead/repository"
	"lead-voucher-backend/internal/features/lead/service"
)

type LeadHandler struct {
	service service.LeadService
	entries repository.EntryReader
	rules   validation.Rules
	logger  zerolog.Logger
}

// RouteMiddleware is extra middleware attached to individual routes.
type RouteMiddleware struct {
	Submit    []gin.HandlerFunc
	Interests []gin.HandlerFunc
}

func NewLeadHandler(service service.LeadService, logger zerolog.Logger) *LeadHandler {
	return &LeadHandler{
		service: service,
		logger:  logger.With().Str("component", "lead_handler").Logger(),
	}
}

// WithRules sets the form rules applied to submissions and inline validation.
func (h *LeadHandler) WithRules(rules validation.Rules) *LeadHandler {
	h.rules = rules
	return h
}

// WithEntries exposes the submission log at GET /leads/log. Only wired in debug mode.
func (h *LeadHandler) WithEntries(reader repository.EntryReader) *LeadHandler {
	h.entries = reader
	return h
}

func (h *LeadHandler) RegisterRoutes(router *gin.RouterGroup, mw RouteMiddleware) {
	leads := router.Group("/leads")
	{
		leads.POST("", append(mw.Submit, h.submit)...)
		leads.POST("/validate", h.validateField)
		if h.entries != nil {
			leads.GET("/log", h.listEntries)
		}
	}
	router.GET("/interests", append(mw.Interests, h.listInterests)...)
}

// @Summary Submit a lead and receive a voucher
// @Description Validates the form, records the lead with the relay, then requests a coupon from the issuance service
// @Tags leads
// @Accept json
// @Produce json
// @Param input body models.LeadSubmission true "Form snapshot"
// @Success 200 {object} models.SubmitResponse
// @Failure 400 {object} middleware.ErrorResponse "Validation failed"
// @Failure 429 {object} middleware.ErrorResponse "Too many submissions"
// @Failure 502 {object} middleware.ErrorResponse "Relay or issuance rejected the request"
// @Failure 504 {object} middleware.ErrorResponse "Upstream unreachable or timed out"
// @Router /leads [post]
func (h *LeadHandler) submit(c *gin.Context) {
	var sub models.LeadSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		middleware.SendError(c, errors.NewBadRequestError("Invalid request body"), h.logger)
		return
	}
	sub = sub.Normalized()

	if fieldErrs := h.rules.Validate(sub); len(fieldErrs) > 0 {
		middleware.SendError(c, errors.NewValidationError(fieldErrs.Messages()), h.logger)
		return
	}

	result := h.service.Submit(c.Request.Context(), sub)
	if !result.OK() {
		middleware.SendError(c, failureError(result.Failure), h.logger)
		return
	}

	c.JSON(http.StatusOK, models.SubmitResponse{
		Success:    true,
		CouponCode: result.Success.CouponCode,
		Interest:   result.Success.Interest,
		Asset:      result.Success.Asset,
	})
}

func failureError(f *models.Failure) *errors.AppError {
	switch f.Stage {
	case models.StageValidation:
		return errors.NewValidationError(f.Fields)
	case models.StageRelay:
		e := errors.NewRelayRejectedError(f.Message)
		e.Cause = f.Cause
		return e
	case models.StageIssuance:
		e := errors.NewIssuanceRejectedError(f.Message)
		e.Cause = f.Cause
		return e
	case models.StageNetwork:
		return errors.NewNetworkError(string(f.Step), f.Cause)
	default:
		return errors.NewInternalError(f.Cause)
	}
}

// @Summary Validate a single form field
// @Description Returns the inline message the form shows for the given value
// @Tags leads
// @Accept json
// @Produce json
// @Param input body models.FieldValidationRequest true "Field and value"
// @Success 200 {object} models.FieldValidationResponse
// @Failure 400 {object} middleware.ErrorResponse "Unknown field"
// @Router /leads/validate [post]
func (h *LeadHandler) validateField(c *gin.Context) {
	var req models.FieldValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.SendError(c, errors.NewBadRequestError("Invalid request body"), h.logger)
		return
	}
	if !validation.Known(req.Field) {
		middleware.SendError(c, errors.NewBadRequestError("Unknown field").WithDetail("field", req.Field), h.logger)
		return
	}

	resp := models.FieldValidationResponse{Field: req.Field, Valid: true}
	if err := h.rules.ValidateField(req.Field, req.Value); err != nil {
		resp.Valid = false
		if fe, ok := err.(*validation.FieldError); ok {
			resp.Error = fe.Message()
		} else {
			resp.Error = err.Error()
		}
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List interest categories
// @Description Categories selectable on the form with their campaign and voucher artwork
// @Tags leads
// @Produce json
// @Success 200 {object} models.InterestsResponse
// @Router /interests [get]
func (h *LeadHandler) listInterests(c *gin.Context) {
	c.JSON(http.StatusOK, models.InterestsResponse{
		Interests:       campaign.Interests(),
		DefaultCampaign: campaign.DefaultCampaignID,
		DefaultAsset:    campaign.DefaultAsset,
	})
}

func (h *LeadHandler) listEntries(c *gin.Context) {
	entries, err := h.entries.Entries(c.Request.Context())
	if err != nil {
		middleware.SendError(c, errors.Wrap(err, errors.ErrCodeInternal, "Failed to read submission log"), h.logger)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}
