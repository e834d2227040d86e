package application

import "github.com/google/uuid"

// EmployeeDTO is the wire form of an employee, used for input and output.
// UUID is ignored on input.
type EmployeeDTO struct {
	UUID     uuid.UUID `json:"uuid"`
	Email    string    `json:"email" validate:"required,emailaddr,max=255"`
	FullName string    `json:"fullName" validate:"required,max=255,fullname"`
	Birthday string    `json:"birthday" validate:"required,isodate,pastdate"`
	// max counts list elements, not characters per hobby
	Hobbies []string `json:"hobbies" validate:"max=255"`
}
