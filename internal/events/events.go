package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types published by the service
const (
	EventAttendanceSaved   = "attendance.saved"
	EventAttendanceDeleted = "attendance.deleted"
	EventPaymentRecorded   = "payment.recorded"
)

// Event is the envelope every published message shares
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent stamps the envelope for a payload
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    "school-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher publishes domain events to the message broker
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// AttendanceSavedEvent is the payload for a committed bulk register save
type AttendanceSavedEvent struct {
	MarkedBy   string `json:"marked_by"`
	Date       string `json:"date"`
	SavedCount int    `json:"saved_count"`
}

// AttendanceDeletedEvent is the payload for a cleared register
type AttendanceDeletedEvent struct {
	MarkedBy     string `json:"marked_by"`
	Date         string `json:"date"`
	DeletedCount int64  `json:"deleted_count"`
}

// PaymentRecordedEvent is the payload for a recorded payment
type PaymentRecordedEvent struct {
	PaymentID   uint    `json:"payment_id"`
	StudentID   uint    `json:"student_id"`
	ServiceType string  `json:"service_type"`
	Amount      float64 `json:"amount"`
}
