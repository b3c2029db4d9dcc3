package amqp

import (
	"encoding/json"
	"time"
)

// Row operations recorded on the audit stream.
const (
	OpAppend = "append"
	OpUpdate = "update"
)

// RowEvent describes one successful mutation of the tabular store. Events
// are an audit trail only; they are published after the sheet write and a
// publish failure never fails the originating request.
type RowEvent struct {
	Sheet     string    `json:"sheet"`
	Op        string    `json:"op"`
	RowRef    string    `json:"rowRef"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Cells     []string  `json:"cells,omitempty"`
}

// NewRowEvent stamps an event with the current time.
func NewRowEvent(sheet, op, rowRef, actor string, cells []string) *RowEvent {
	return &RowEvent{
		Sheet:     sheet,
		Op:        op,
		RowRef:    rowRef,
		Actor:     actor,
		Timestamp: time.Now(),
		Cells:     cells,
	}
}

// ToJSON converts the event to JSON bytes.
func (e *RowEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RowEventFromJSON creates an event from JSON bytes.
func RowEventFromJSON(data []byte) (*RowEvent, error) {
	var e RowEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
