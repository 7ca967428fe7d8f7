package notify

import (
	"encoding/json"
	"fmt"

	"github.com/chris/behavior-points/pkg/models"
)

// MessageType defines the type of a notification message.
type MessageType string

const (
	// MessageTypeAwardGranted is sent once per newly awarded medal or badge.
	MessageTypeAwardGranted MessageType = "awardGranted"
)

// Message is the envelope published to the notification queue.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Encode wraps an award notification in a Message envelope.
func Encode(n models.Notification) ([]byte, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification: %w", err)
	}
	body, err := json.Marshal(Message{Type: MessageTypeAwardGranted, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}
	return body, nil
}

// Decode unwraps an award notification from a queue message body.
func Decode(body []byte) (*models.Notification, error) {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	if msg.Type != MessageTypeAwardGranted {
		return nil, fmt.Errorf("unsupported message type %q", msg.Type)
	}

	var n models.Notification
	if err := json.Unmarshal(msg.Payload, &n); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notification: %w", err)
	}
	if n.Id == "" || n.SubjectId == "" {
		return nil, fmt.Errorf("notification is missing id or subject_id")
	}
	return &n, nil
}
