// Package httpclient holds the pieces shared by the outbound service clients.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Max bytes of a response body kept in Response.Body
const maxBody = 64 << 10

// Response is the transport-level result of one outbound call. Business meaning is
// left to the caller.
type Response struct {
	OK     bool
	Status int
	Body   []byte
}

// New returns a client bounded by timeout. Redirects are returned to the caller
// instead of being followed.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Do sends req and reads at most maxBody bytes of the reply. ok decides whether a
// status counts as success. A non-nil error always means a transport failure.
func Do(ctx context.Context, c *http.Client, req *http.Request, ok func(status int) bool) (*Response, error) {
	resp, err := c.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{
		OK:     ok(resp.StatusCode),
		Status: resp.StatusCode,
		Body:   body,
	}, nil
}

func Is2xx(status int) bool {
	return status >= 200 && status < 300
}

// Is2xxOr3xx accepts redirects, which form collectors send after a successful post.
func Is2xxOr3xx(status int) bool {
	return status >= 200 && status < 400
}

// ServerMessage extracts a human readable message from a JSON error body. It returns
// "" when none is found.
func ServerMessage(body []byte) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error", "description", "detail"} {
		switch v := payload[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case map[string]interface{}:
			if s, ok := v["message"].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
