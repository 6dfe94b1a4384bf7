package amqp

import (
	"encoding/json"
	"time"
)

// Reasons an export message is published.
const (
	ReasonRecordChanged = "record_changed"
	ReasonManual        = "manual"
	ReasonPeriodic      = "periodic"
)

// Actions carried by record change messages.
const (
	ActionCreated       = "created"
	ActionStatusChanged = "status_changed"
	ActionDeleted       = "deleted"
)

// ExportMessage asks the worker to rebuild and push the overview report.
// It only carries provenance; the worker always re-reads the full record
// snapshot from the store.
type ExportMessage struct {
	Reason      string    `json:"reason"`
	RecordID    int64     `json:"record_id,omitempty"`
	Action      string    `json:"action,omitempty"`
	RequestedBy string    `json:"requested_by,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewRecordChangedMessage builds the message published after a write.
func NewRecordChangedMessage(id int64, action string) *ExportMessage {
	return &ExportMessage{
		Reason:    ReasonRecordChanged,
		RecordID:  id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

// NewManualExportMessage builds the message for a user-requested export.
func NewManualExportMessage(requestedBy string) *ExportMessage {
	return &ExportMessage{
		Reason:      ReasonManual,
		RequestedBy: requestedBy,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExportMessageFromJSON creates a message from JSON bytes
func ExportMessageFromJSON(data []byte) (*ExportMessage, error) {
	var msg ExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
