package entity

import "github.com/google/uuid"

// EventType tags the mutation an EmployeeEvent describes.
type EventType string

const (
	EventCreated EventType = "CREATED"
	EventUpdated EventType = "UPDATED"
	EventDeleted EventType = "DELETED"
)

// EmployeeEvent is the message published once per successful mutation.
// It carries the employee fields plus a fresh event id.
type EmployeeEvent struct {
	UUID      uuid.UUID `json:"uuid"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Birthday  string    `json:"birthday"`
	Hobbies   []string  `json:"hobbies"`
	EventID   uuid.UUID `json:"eventId"`
	EventType EventType `json:"eventType"`
}

// NewEmployeeEvent snapshots e into an event of the given type.
func NewEmployeeEvent(e *Employee, t EventType) EmployeeEvent {
	return EmployeeEvent{
		UUID:      e.ID,
		Email:     e.Email,
		FullName:  e.FullName,
		Birthday:  e.BirthdayFormatted(),
		Hobbies:   e.Hobbies,
		EventID:   uuid.New(),
		EventType: t,
	}
}
