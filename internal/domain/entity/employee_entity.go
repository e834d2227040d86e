package entity

import (
	"time"

	"github.com/google/uuid"
)

// BirthdayLayout is the only accepted wire format for birthdays (yyyy-MM-dd).
const BirthdayLayout = "2006-01-02"

// Employee is the persisted employee record.
// ID, CreatedAt and UpdatedAt are server-controlled and never copied from input.
type Employee struct {
	ID        uuid.UUID
	Email     string
	FullName  string
	Birthday  time.Time
	Hobbies   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BirthdayFormatted returns the birthday in its wire form.
func (e *Employee) BirthdayFormatted() string {
	if e.Birthday.IsZero() {
		return ""
	}
	return e.Birthday.Format(BirthdayLayout)
}
