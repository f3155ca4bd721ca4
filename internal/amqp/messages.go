package amqp

import (
	"encoding/json"
	"time"
)

// AlertCheckMessage asks the worker to re-evaluate alert rules for one user.
// It carries only the user ID; the worker reads everything else from the
// database so stale payloads cannot leak outdated amounts.
type AlertCheckMessage struct {
	UserID      int64     `json:"user_id"`
	RequestedAt time.Time `json:"requested_at"`
}

func NewAlertCheckMessage(userID int64) *AlertCheckMessage {
	return &AlertCheckMessage{
		UserID:      userID,
		RequestedAt: time.Now(),
	}
}

func (m *AlertCheckMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func AlertCheckMessageFromJSON(data []byte) (*AlertCheckMessage, error) {
	var msg AlertCheckMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
