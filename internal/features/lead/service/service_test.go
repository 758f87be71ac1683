package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-voucher-backend/internal/common/config"
	"lead-voucher-backend/internal/common/validation"
	"lead-voucher-backend/internal/features/lead/models"
	"lead-voucher-backend/internal/observability/metrics"
	"lead-voucher-backend/internal/platform/httpclient"
	"lead-voucher-backend/internal/platform/issuance"
	"lead-voucher-backend/internal/platform/relay"
)

var settings = IssuanceSettings{ChannelID: "WEB", RequestID: "LEADFORM", ProgramID: "HPWORLD"}

func validSubmission() models.LeadSubmission {
	return models.LeadSubmission{Name: "Asha", Mobile: "9123456789", Interest: "Printers"}
}

type fakeRelay struct {
	calls int
	resp  *httpclient.Response
	err   error
}

func (f *fakeRelay) Send(context.Context, models.LeadSubmission) (*httpclient.Response, error) {
	f.calls++
	return f.resp, f.err
}

type fakeIssuer struct {
	calls int
	last  issuance.Request
	resp  *httpclient.Response
	err   error
}

func (f *fakeIssuer) Send(_ context.Context, req issuance.Request) (*httpclient.Response, error) {
	f.calls++
	f.last = req
	return f.resp, f.err
}

func okRelay() *fakeRelay {
	return &fakeRelay{resp: &httpclient.Response{OK: true, Status: http.StatusOK}}
}

func issued(code string) *fakeIssuer {
	return &fakeIssuer{resp: &httpclient.Response{
		OK:     true,
		Status: http.StatusOK,
		Body:   []byte(`{"status":"SUCCESS","data":{"couponCode":"` + code + `"}}`),
	}}
}

func newService(r relay.Relay, i CouponIssuer) LeadService {
	return newServiceWithRules(r, i, validation.Rules{})
}

func newServiceWithRules(r relay.Relay, i CouponIssuer, rules validation.Rules) LeadService {
	return NewLeadService(r, i, settings, rules, metrics.NewSubmissionMetrics(prometheus.NewRegistry()), zerolog.Nop())
}

func TestSubmitSuccess(t *testing.T) {
	r, i := okRelay(), issued("HP-7KQ2MX")

	res := newService(r, i).Submit(context.Background(), validSubmission())

	require.True(t, res.OK())
	assert.Equal(t, "HP-7KQ2MX", res.Success.CouponCode)
	assert.Equal(t, models.InterestPrinters, res.Success.Interest)
	assert.Equal(t, "/vouchers/printers.png", res.Success.Asset)
	assert.Equal(t, 1, r.calls)
	assert.Equal(t, 1, i.calls)
	assert.Equal(t, issuance.Request{
		ChannelID:      "WEB",
		RequestID:      "LEADFORM",
		CampaignID:     "CMP-PRN-01",
		IssuerMobileNo: "9123456789",
		ProgramID:      "HPWORLD",
	}, i.last)
}

func TestSubmitUnknownInterestUsesFallbacks(t *testing.T) {
	r, i := okRelay(), issued("X1")
	sub := validSubmission()
	sub.Interest = "Cameras"

	res := newService(r, i).Submit(context.Background(), sub)

	require.True(t, res.OK())
	assert.Equal(t, "CMP-GEN-01", i.last.CampaignID)
	assert.Equal(t, "/giftvoucher.png", res.Success.Asset)
}

func TestSubmitWithoutInterestUsesFallbacks(t *testing.T) {
	r, i := okRelay(), issued("X1")
	sub := models.LeadSubmission{Name: "Asha", Mobile: "9123456789"}

	res := newService(r, i).Submit(context.Background(), sub)

	require.True(t, res.OK())
	assert.Equal(t, 1, r.calls)
	assert.Equal(t, "CMP-GEN-01", i.last.CampaignID)
	assert.Equal(t, "/giftvoucher.png", res.Success.Asset)
}

func TestSubmitRequiredInterestRejectsMissing(t *testing.T) {
	r, i := okRelay(), issued("X1")
	sub := models.LeadSubmission{Name: "Asha", Mobile: "9123456789"}

	res := newServiceWithRules(r, i, validation.Rules{RequireInterest: true}).Submit(context.Background(), sub)

	require.False(t, res.OK())
	assert.Equal(t, models.StageValidation, res.Failure.Stage)
	assert.Equal(t, "Please select an interest", res.Failure.Fields["interest"])
	assert.Zero(t, r.calls)
	assert.Zero(t, i.calls)
}

func TestSubmitInvalidMakesNoCalls(t *testing.T) {
	r, i := okRelay(), issued("X1")
	sub := validSubmission()
	sub.Mobile = "1234567890"

	res := newService(r, i).Submit(context.Background(), sub)

	require.False(t, res.OK())
	assert.Equal(t, models.StageValidation, res.Failure.Stage)
	assert.Contains(t, res.Failure.Fields, "mobile")
	assert.Zero(t, r.calls)
	assert.Zero(t, i.calls)
}

func TestSubmitRelayTransportError(t *testing.T) {
	r := &fakeRelay{err: context.DeadlineExceeded}
	i := issued("X1")

	res := newService(r, i).Submit(context.Background(), validSubmission())

	require.False(t, res.OK())
	assert.Equal(t, models.StageNetwork, res.Failure.Stage)
	assert.Equal(t, models.StageRelay, res.Failure.Step)
	assert.Equal(t, MsgNetwork, res.Failure.Message)
	assert.Zero(t, i.calls)
}

func TestSubmitRelayRejected(t *testing.T) {
	r := &fakeRelay{resp: &httpclient.Response{OK: false, Status: 400, Body: []byte(`{"error":"Invalid mobile number format"}`)}}
	i := issued("X1")

	res := newService(r, i).Submit(context.Background(), validSubmission())

	require.False(t, res.OK())
	assert.Equal(t, models.StageRelay, res.Failure.Stage)
	assert.Equal(t, "Invalid mobile number format", res.Failure.Message)
	assert.Zero(t, i.calls)
}

func TestSubmitRelayRejectedWithoutMessage(t *testing.T) {
	r := &fakeRelay{resp: &httpclient.Response{OK: false, Status: 500, Body: []byte(`<html/>`)}}

	res := newService(r, issued("X1")).Submit(context.Background(), validSubmission())

	require.False(t, res.OK())
	assert.Equal(t, MsgRelayRejected, res.Failure.Message)
}

func TestSubmitIssuanceTransportError(t *testing.T) {
	i := &fakeIssuer{err: errors.New("connection refused")}

	res := newService(okRelay(), i).Submit(context.Background(), validSubmission())

	require.False(t, res.OK())
	assert.Equal(t, models.StageNetwork, res.Failure.Stage)
	assert.Equal(t, models.StageIssuance, res.Failure.Step)
}

func TestSubmitIssuanceWithoutCode(t *testing.T) {
	i := &fakeIssuer{resp: &httpclient.Response{OK: true, Status: 200, Body: []byte(`{"status":"SUCCESS","data":{}}`)}}

	res := newService(okRelay(), i).Submit(context.Background(), validSubmission())

	require.False(t, res.OK())
	assert.Equal(t, models.StageIssuance, res.Failure.Stage)
	assert.Equal(t, MsgIssuanceRejected, res.Failure.Message)
}

func TestSubmitIssuanceRejectedWithMessage(t *testing.T) {
	i := &fakeIssuer{resp: &httpclient.Response{OK: false, Status: 409, Body: []byte(`{"status":"FAILED","message":"Coupon already issued for this mobile"}`)}}

	res := newService(okRelay(), i).Submit(context.Background(), validSubmission())

	require.False(t, res.OK())
	assert.Equal(t, models.StageIssuance, res.Failure.Stage)
	assert.Equal(t, "Coupon already issued for this mobile", res.Failure.Message)
}

func TestSubmitIssuanceCodeWithErrorStatus(t *testing.T) {
	i := &fakeIssuer{resp: &httpclient.Response{OK: false, Status: 500, Body: []byte(`{"data":{"couponCode":"X1"}}`)}}

	res := newService(okRelay(), i).Submit(context.Background(), validSubmission())

	require.False(t, res.OK())
	assert.Equal(t, models.StageIssuance, res.Failure.Stage)
}

// End to end over HTTP with the real clients.

func relayCfg(url string) config.Relay {
	return config.Relay{BaseURL: url, FormID: "F", FieldName: "1", FieldMobile: "2", FieldEmail: "3", FieldOccupation: "4"}
}

func TestSubmitOverHTTPSuccess(t *testing.T) {
	relaySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer relaySrv.Close()

	issuanceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"couponCode":"SERVER-CODE"}}`))
	}))
	defer issuanceSrv.Close()

	hc := httpclient.New(time.Second)
	svc := newService(
		relay.New(relayCfg(relaySrv.URL), hc, zerolog.Nop()),
		issuance.NewClient(issuanceSrv.URL, "", hc, zerolog.Nop()),
	)

	res := svc.Submit(context.Background(), validSubmission())

	require.True(t, res.OK())
	assert.Equal(t, "SERVER-CODE", res.Success.CouponCode)
	assert.Equal(t, models.InterestPrinters, res.Success.Interest)
}

func TestSubmitOverHTTPRelayTimeout(t *testing.T) {
	relaySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer relaySrv.Close()

	var issuanceCalls int32
	issuanceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&issuanceCalls, 1)
		_, _ = w.Write([]byte(`{"data":{"couponCode":"SERVER-CODE"}}`))
	}))
	defer issuanceSrv.Close()

	hc := httpclient.New(50 * time.Millisecond)
	svc := newService(
		relay.New(relayCfg(relaySrv.URL), hc, zerolog.Nop()),
		issuance.NewClient(issuanceSrv.URL, "", hc, zerolog.Nop()),
	)

	res := svc.Submit(context.Background(), validSubmission())

	require.False(t, res.OK())
	assert.Equal(t, models.StageNetwork, res.Failure.Stage)
	assert.Zero(t, atomic.LoadInt32(&issuanceCalls))
}

func TestSubmitOverHTTPIssuanceWithoutCode(t *testing.T) {
	relaySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer relaySrv.Close()

	issuanceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"PENDING"}`))
	}))
	defer issuanceSrv.Close()

	hc := httpclient.New(time.Second)
	svc := newService(
		relay.New(relayCfg(relaySrv.URL), hc, zerolog.Nop()),
		issuance.NewClient(issuanceSrv.URL, "", hc, zerolog.Nop()),
	)

	res := svc.Submit(context.Background(), validSubmission())

	require.False(t, res.OK())
	assert.Equal(t, models.StageIssuance, res.Failure.Stage)
}

func TestSubmitWithSkippedRelay(t *testing.T) {
	i := issued("X1")
	svc := newService(relay.New(config.Relay{}, httpclient.New(time.Second), zerolog.Nop()), i)

	res := svc.Submit(context.Background(), validSubmission())

	require.True(t, res.OK())
	assert.Equal(t, 1, i.calls)
}

func TestMaskMobile(t *testing.T) {
	assert.Equal(t, "******6789", maskMobile("9123456789"))
	assert.Equal(t, "12", maskMobile("12"))
}
