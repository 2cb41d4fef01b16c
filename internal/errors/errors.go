package appErrors

import "fmt"

// ErrBatchNotFound is returned when a batch id is unknown or its session TTL expired
type ErrBatchNotFound struct {
	BatchID string
}

func (e *ErrBatchNotFound) Error() string {
	return fmt.Sprintf("campaign card batch %s not found", e.BatchID)
}

// Helper constructor
func NewBatchNotFound(id string) error {
	return &ErrBatchNotFound{BatchID: id}
}

// ErrInvalidRequest rejects malformed input before orchestration begins
type ErrInvalidRequest struct {
	Field  string
	Reason string
}

func (e *ErrInvalidRequest) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

func NewInvalidRequest(field, reason string) error {
	return &ErrInvalidRequest{Field: field, Reason: reason}
}
