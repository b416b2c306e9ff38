package queue

import "context"

// Client sends messages to a queue backend.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// Receiver pulls messages for the background worker and acknowledges
// the ones it has handled.
type Receiver interface {
	Receive(ctx context.Context, max int) ([]Message, error)
	Ack(ctx context.Context, msg Message) error
}
