package queue

import "encoding/json"

// Message asks the worker to resume a stalled project delete intent.
type Message struct {
	IntentID   string `json:"intentId"`
	RequestID  string `json:"requestId"`
	EnqueuedAt string `json:"enqueuedAt"`
	Version    int    `json:"version"`

	// receiptHandle acknowledges the message on the backend after a
	// successful resume. Unexported, backend-specific.
	receiptHandle string
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
