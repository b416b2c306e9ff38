package llm

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"mitrahire-backend/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

type retryingClient struct {
	base      Client
	requestID string
}

// WithRetry wraps a client with a single retry on transient failures.
func WithRetry(base Client, requestID string) Client {
	if base == nil {
		return nil
	}
	return retryingClient{base: base, requestID: requestID}
}

func (r retryingClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := r.base.GenerateText(ctx, prompt)
	if err == nil || !shouldRetry(err) {
		return resp, err
	}

	telemetry.Info("llm.retry", map[string]any{"attempt": 1, "request_id": r.requestID, "error": err.Error()})
	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return r.base.GenerateText(ctx, prompt)
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "llm") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
