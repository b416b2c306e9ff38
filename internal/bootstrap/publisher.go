package bootstrap

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mitrahire-backend/internal/projects"
	"mitrahire-backend/internal/queue"
)

// queuePublisher adapts the queue client to the projects intent
// publisher so stalled cascade deletes get retried by the worker.
type queuePublisher struct {
	client queue.Client
}

func intentPublisher(client queue.Client) projects.IntentPublisher {
	if client == nil {
		return nil
	}
	return &queuePublisher{client: client}
}

func (p *queuePublisher) PublishDeleteIntent(ctx context.Context, intentID string) error {
	return p.client.Send(ctx, queue.Message{
		IntentID:   intentID,
		RequestID:  uuid.NewString(),
		EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
		Version:    1,
	})
}
