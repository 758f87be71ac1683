package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-voucher-backend/internal/common/middleware"
	"lead-voucher-backend/internal/common/validation"
	"lead-voucher-backend/internal/features/lead/models"
)

type stubEntries struct {
	entries []models.LogEntry
	err     error
}

func (s stubEntries) Entries(context.Context) ([]models.LogEntry, error) {
	return s.entries, s.err
}

type stubService struct {
	calls  int
	got    models.LeadSubmission
	result *models.SubmissionResult
}

func (s *stubService) Submit(_ context.Context, sub models.LeadSubmission) *models.SubmissionResult {
	s.calls++
	s.got = sub
	return s.result
}

func newRouter(svc *stubService) *gin.Engine {
	return newRouterWithRules(svc, validation.Rules{})
}

func newRouterWithRules(svc *stubService, rules validation.Rules) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	NewLeadHandler(svc, zerolog.Nop()).WithRules(rules).RegisterRoutes(r.Group("/api/v1"), RouteMiddleware{})
	return r
}

func post(r *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSubmitSuccess(t *testing.T) {
	svc := &stubService{result: models.Succeeded("HP-7KQ2MX", models.InterestPrinters, "/vouchers/printers.png")}
	r := newRouter(svc)

	w := post(r, "/api/v1/leads", `{"name":"  Asha ","mobile":"9123456789","interest":"Printers"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.SubmitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.SubmitResponse{
		Success:    true,
		CouponCode: "HP-7KQ2MX",
		Interest:   models.InterestPrinters,
		Asset:      "/vouchers/printers.png",
	}, resp)
	assert.Equal(t, "Asha", svc.got.Name, "input is trimmed before the pipeline")
}

func TestSubmitValidationError(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc)

	w := post(r, "/api/v1/leads", `{"name":"","mobile":"12345","interest":"Printers","email":"bad"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "Name is required", body.Error.Details["name"])
	assert.Equal(t, "Enter valid 10-digit mobile number starting with 6-9", body.Error.Details["mobile"])
	assert.Equal(t, "Enter a valid email address", body.Error.Details["email"])
	assert.Zero(t, svc.calls)
}

func TestSubmitInterestOptionalByDefault(t *testing.T) {
	svc := &stubService{result: models.Succeeded("GV-1", "", "/giftvoucher.png")}
	r := newRouter(svc)

	w := post(r, "/api/v1/leads", `{"name":"Asha","mobile":"9123456789"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.calls)

	w = post(r, "/api/v1/leads/validate", `{"field":"interest","value":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":true`)
}

func TestSubmitInterestRequiredWhenConfigured(t *testing.T) {
	svc := &stubService{}
	r := newRouterWithRules(svc, validation.Rules{RequireInterest: true})

	w := post(r, "/api/v1/leads", `{"name":"Asha","mobile":"9123456789"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "Please select an interest", body.Error.Details["interest"])
	assert.Zero(t, svc.calls)

	w = post(r, "/api/v1/leads/validate", `{"field":"interest","value":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please select an interest")
}

func TestSubmitMalformedJSON(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc)

	w := post(r, "/api/v1/leads", `{"name":`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", decodeError(t, w).Error.Code)
	assert.Zero(t, svc.calls)
}

func TestSubmitFailureMapping(t *testing.T) {
	cases := []struct {
		name    string
		failure *models.SubmissionResult
		status  int
		code    string
		message string
		stage   interface{}
	}{
		{
			name:    "relay rejected",
			failure: models.Failed(models.StageRelay, "Form is closed", nil),
			status:  http.StatusBadGateway,
			code:    "RELAY_REJECTED",
			message: "Form is closed",
		},
		{
			name:    "issuance rejected",
			failure: models.Failed(models.StageIssuance, "Coupon already issued for this mobile", nil),
			status:  http.StatusBadGateway,
			code:    "ISSUANCE_REJECTED",
			message: "Coupon already issued for this mobile",
		},
		{
			name:    "relay unreachable",
			failure: models.NetworkFailed(models.StageRelay, "Network error occurred. Please try again.", errors.New("timeout")),
			status:  http.StatusGatewayTimeout,
			code:    "NETWORK_ERROR",
			message: "Network error occurred. Please try again.",
			stage:   "relay",
		},
		{
			name:    "issuance unreachable",
			failure: models.NetworkFailed(models.StageIssuance, "Network error occurred. Please try again.", errors.New("timeout")),
			status:  http.StatusGatewayTimeout,
			code:    "NETWORK_ERROR",
			message: "Network error occurred. Please try again.",
			stage:   "issuance",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(&stubService{result: tc.failure})

			w := post(r, "/api/v1/leads", `{"name":"Asha","mobile":"9123456789","interest":"Printers"}`)

			require.Equal(t, tc.status, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tc.code, body.Error.Code)
			assert.Equal(t, tc.message, body.Error.Message)
			assert.Equal(t, tc.stage, body.Error.Details["stage"])
			assert.NotContains(t, w.Body.String(), "timeout")
		})
	}
}

func TestValidateField(t *testing.T) {
	r := newRouter(&stubService{})

	w := post(r, "/api/v1/leads/validate", `{"field":"mobile","value":"5123456789"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.FieldValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, "Enter valid 10-digit mobile number starting with 6-9", resp.Error)

	w = post(r, "/api/v1/leads/validate", `{"field":"email","value":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp = models.FieldValidationResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Error)
}

func TestValidateUnknownField(t *testing.T) {
	r := newRouter(&stubService{})

	w := post(r, "/api/v1/leads/validate", `{"field":"favouriteColour","value":"red"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, "/api/v1/leads/validate", `{"value":"red"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListInterests(t *testing.T) {
	r := newRouter(&stubService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/interests", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.InterestsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Interests, 6)
	assert.Equal(t, "CMP-GEN-01", resp.DefaultCampaign)
	assert.Equal(t, "/giftvoucher.png", resp.DefaultAsset)
}

func TestRouteMiddlewareApplied(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubService{}
	r := gin.New()
	block := func(c *gin.Context) { c.AbortWithStatus(http.StatusTooManyRequests) }
	NewLeadHandler(svc, zerolog.Nop()).RegisterRoutes(r.Group("/api/v1"), RouteMiddleware{Submit: []gin.HandlerFunc{block}})

	w := post(r, "/api/v1/leads", `{"name":"Asha","mobile":"9123456789","interest":"Printers"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Zero(t, svc.calls)
}

func TestListEntriesOnlyWhenWired(t *testing.T) {
	r := newRouter(&stubService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/leads/log", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	gin.SetMode(gin.TestMode)
	r = gin.New()
	h := NewLeadHandler(&stubService{}, zerolog.Nop()).
		WithEntries(stubEntries{entries: []models.LogEntry{{ID: "a", Name: "Asha"}}})
	h.RegisterRoutes(r.Group("/api/v1"), RouteMiddleware{})

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/leads/log", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
	assert.Contains(t, w.Body.String(), "Asha")
}

func TestListEntriesReadError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewLeadHandler(&stubService{}, zerolog.Nop()).
		WithEntries(stubEntries{err: errors.New("redis down")}).
		RegisterRoutes(r.Group("/api/v1"), RouteMiddleware{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/leads/log", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "redis down")
}
