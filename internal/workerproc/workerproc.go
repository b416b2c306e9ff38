package workerproc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mitrahire-backend/internal/projects"
	"mitrahire-backend/internal/queue"
	"mitrahire-backend/internal/shared/telemetry"
)

var (
	ErrEmptyBody       = errors.New("empty message body")
	ErrDecode          = errors.New("message body is not valid JSON")
	ErrMissingIntentID = errors.New("message has no intent id")
)

// ProcessError wraps failures from the delete-intent resume so callers
// can tell a bad message from a processing failure.
type ProcessError struct {
	IntentID string
	Err      error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("resume intent %s: %v", e.IntentID, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// IntentResumer re-runs a pending project delete intent.
// Implemented by the projects service.
type IntentResumer interface {
	ResumeIntent(ctx context.Context, intentID string) error
	PendingIntents(ctx context.Context, limit int) ([]projects.DeleteIntent, error)
}

// ParseMessage validates a raw queue payload.
func ParseMessage(body []byte) (queue.Message, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return queue.Message{}, ErrEmptyBody
	}
	msg, err := queue.DecodeMessage(body)
	if err != nil {
		return queue.Message{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if strings.TrimSpace(msg.IntentID) == "" {
		return queue.Message{}, ErrMissingIntentID
	}
	return msg, nil
}

// HandleMessage resumes the delete intent named by the message.
func HandleMessage(ctx context.Context, resumer IntentResumer, msg queue.Message) error {
	if strings.TrimSpace(msg.IntentID) == "" {
		return ErrMissingIntentID
	}
	if err := resumer.ResumeIntent(ctx, msg.IntentID); err != nil {
		return &ProcessError{IntentID: msg.IntentID, Err: err}
	}
	return nil
}

// Worker drains the queue and sweeps the intent table for anything the
// queue missed, so a lost message still gets retried.
type Worker struct {
	Receiver queue.Receiver
	Resumer  IntentResumer

	// SweepInterval bounds how often pending intents are re-scanned.
	SweepInterval time.Duration
	BatchSize     int
}

func NewWorker(receiver queue.Receiver, resumer IntentResumer) *Worker {
	return &Worker{
		Receiver:      receiver,
		Resumer:       resumer,
		SweepInterval: time.Minute,
		BatchSize:     10,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		default:
		}

		if w.Receiver == nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				w.sweep(ctx)
			}
			continue
		}
		w.drainOnce(ctx)
	}
}

func (w *Worker) drainOnce(ctx context.Context) {
	msgs, err := w.Receiver.Receive(ctx, w.BatchSize)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		telemetry.Error("worker.receive_failed", map[string]any{"error": err.Error()})
		return
	}
	for _, msg := range msgs {
		if err := HandleMessage(ctx, w.Resumer, msg); err != nil {
			telemetry.Error("worker.resume_failed", map[string]any{
				"intent_id": msg.IntentID,
				"error":     err.Error(),
			})
			// Leave unacked so the queue redelivers it.
			continue
		}
		if err := w.Receiver.Ack(ctx, msg); err != nil {
			telemetry.Error("worker.ack_failed", map[string]any{"intent_id": msg.IntentID, "error": err.Error()})
		}
	}
}

func (w *Worker) sweep(ctx context.Context) {
	intents, err := w.Resumer.PendingIntents(ctx, w.BatchSize)
	if err != nil {
		telemetry.Error("worker.sweep_failed", map[string]any{"error": err.Error()})
		return
	}
	for _, intent := range intents {
		if err := w.Resumer.ResumeIntent(ctx, intent.ID); err != nil {
			telemetry.Error("worker.resume_failed", map[string]any{
				"intent_id": intent.ID,
				"error":     err.Error(),
			})
		}
	}
}
