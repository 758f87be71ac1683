package models

// Stage names the pipeline step a failure belongs to.
type Stage string

const (
	StageValidation Stage = "validation"
	StageRelay      Stage = "relay"
	StageIssuance   Stage = "issuance"
	StageNetwork    Stage = "network"
)

// SubmissionResult is the outcome of one submission attempt. Exactly one of
// Success and Failure is set.
type SubmissionResult struct {
	Success *Success
	Failure *Failure
}

type Success struct {
	CouponCode string
	Interest   Interest
	Asset      string
}

type Failure struct {
	Stage Stage
	// Step is the upstream call that was in flight for StageNetwork failures
	Step    Stage
	Message string
	// Fields is set for validation failures only
	Fields map[string]string
	Cause  error
}

func (r *SubmissionResult) OK() bool {
	return r != nil && r.Success != nil
}

func Succeeded(code string, interest Interest, asset string) *SubmissionResult {
	return &SubmissionResult{Success: &Success{CouponCode: code, Interest: interest, Asset: asset}}
}

func Failed(stage Stage, message string, cause error) *SubmissionResult {
	return &SubmissionResult{Failure: &Failure{Stage: stage, Message: message, Cause: cause}}
}

// NetworkFailed reports a transport failure while calling step.
func NetworkFailed(step Stage, message string, cause error) *SubmissionResult {
	r := Failed(StageNetwork, message, cause)
	r.Failure.Step = step
	return r
}

// SubmitResponse is the success body of POST /leads.
type SubmitResponse struct {
	Success    bool     `json:"success" example:"true"`
	CouponCode string   `json:"coupon_code" example:"HP-7KQ2MX"`
	Interest   Interest `json:"interest" example:"Printers"`
	Asset      string   `json:"asset" example:"/vouchers/printers.png"`
}

// FieldValidationRequest is the body of POST /leads/validate.
type FieldValidationRequest struct {
	Field string `json:"field" binding:"required" example:"mobile"`
	Value string `json:"value" example:"9123456789"`
}

type FieldValidationResponse struct {
	Field string `json:"field" example:"mobile"`
	Valid bool   `json:"valid" example:"false"`
	Error string `json:"error,omitempty" example:"Enter valid 10-digit mobile number starting with 6-9"`
}

// InterestOption describes one selectable category.
type InterestOption struct {
	Interest   Interest `json:"interest" example:"Printers"`
	CampaignID string   `json:"campaign_id" example:"CMP-PRN-01"`
	Asset      string   `json:"asset" example:"/vouchers/printers.png"`
}

type InterestsResponse struct {
	Interests       []InterestOption `json:"interests"`
	DefaultCampaign string           `json:"default_campaign" example:"CMP-GEN-01"`
	DefaultAsset    string           `json:"default_asset" example:"/giftvoucher.png"`
}
