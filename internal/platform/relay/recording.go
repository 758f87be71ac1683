package relay

import (
	"context"

	"lead-voucher-backend/internal/features/lead/models"
	"lead-voucher-backend/internal/platform/httpclient"
)

// Recorder keeps a best-effort copy of relayed submissions. Implementations must not
// block and must not fail the caller.
type Recorder interface {
	Record(ctx context.Context, sub models.LeadSubmission)
}

// Recording hands every successfully relayed submission to a Recorder.
type Recording struct {
	next     Relay
	recorder Recorder
}

func WithRecorder(next Relay, recorder Recorder) *Recording {
	return &Recording{next: next, recorder: recorder}
}

func (r *Recording) Send(ctx context.Context, sub models.LeadSubmission) (*httpclient.Response, error) {
	resp, err := r.next.Send(ctx, sub)
	if err != nil || resp == nil || !resp.OK {
		return resp, err
	}
	if r.recorder != nil {
		r.recorder.Record(ctx, sub)
	}
	return resp, nil
}
