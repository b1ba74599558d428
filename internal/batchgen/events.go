package batchgen

import (
	"errors"

	"flowz-server/internal/domain"
)

// Event type discriminators carried in the stream payloads.
const (
	EventConnected       = "connected"
	EventHeartbeat       = "heartbeat"
	EventProductStart    = "product_start"
	EventFieldStart      = "field_start"
	EventFieldComplete   = "field_complete"
	EventProductComplete = "product_complete"
	EventProductError    = "product_error"
	EventBatchComplete   = "batch_complete"
	EventError           = "error"
)

// ErrStreamClosed is returned by an Emitter once the consumer has gone away.
var ErrStreamClosed = errors.New("batchgen: stream closed")

// Emitter is the event sink the orchestrator writes progress to. Emit is
// best-effort: implementations must not block on a slow consumer, and after
// the stream closes every Emit returns ErrStreamClosed.
type Emitter interface {
	Emit(event any) error
	Closed() bool
}

type ConnectedEvent struct {
	Type  string `json:"type"`
	JobID string `json:"job_id"`
	Total int    `json:"total"`
}

type HeartbeatEvent struct {
	Type string `json:"type"`
}

type ProductStartEvent struct {
	Type      string `json:"type"`
	ProductID string `json:"product_id"`
	Current   int    `json:"current"`
	Total     int    `json:"total"`
}

type FieldStartEvent struct {
	Type      string           `json:"type"`
	ProductID string           `json:"product_id"`
	Field     domain.FieldType `json:"field"`
}

type FieldCompleteEvent struct {
	Type      string           `json:"type"`
	ProductID string           `json:"product_id"`
	Field     domain.FieldType `json:"field"`
	Preview   string           `json:"preview,omitempty"`
	AltCount  *int             `json:"alt_count,omitempty"`
}

type ProductCompleteEvent struct {
	Type      string `json:"type"`
	ProductID string `json:"product_id"`
}

type ProductErrorEvent struct {
	Type      string `json:"type"`
	ProductID string `json:"product_id"`
	Error     string `json:"error"`
}

type BatchCompleteEvent struct {
	Type       string `json:"type"`
	JobID      string `json:"job_id"`
	Total      int    `json:"total"`
	Successful int    `json:"successful"`
	Failed     int    `json:"failed"`
	Status     string `json:"status"`
}

type ErrorEvent struct {
	Type  string `json:"type"`
	JobID string `json:"job_id,omitempty"`
	Error string `json:"error"`
}

func Heartbeat() HeartbeatEvent {
	return HeartbeatEvent{Type: EventHeartbeat}
}
