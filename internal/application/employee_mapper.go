package application

import (
	"fmt"
	"time"

	"github.com/oksasatya/go-employee-service/internal/domain/entity"
)

func mapToDTO(e *entity.Employee) EmployeeDTO {
	return EmployeeDTO{
		UUID:     e.ID,
		Email:    e.Email,
		FullName: e.FullName,
		Birthday: e.BirthdayFormatted(),
		Hobbies:  e.Hobbies,
	}
}

func mapToDTOs(list []entity.Employee) []EmployeeDTO {
	out := make([]EmployeeDTO, len(list))
	for i := range list {
		out[i] = mapToDTO(&list[i])
	}
	return out
}

// mapToEntity copies the mutable fields of dto into e. Id and audit
// timestamps are left untouched.
func mapToEntity(dto EmployeeDTO, e *entity.Employee) error {
	birthday, err := time.Parse(entity.BirthdayLayout, dto.Birthday)
	if err != nil {
		return fmt.Errorf("%w: birthday must be in format yyyy-MM-dd", ErrInvalidArgument)
	}
	e.Email = dto.Email
	e.FullName = dto.FullName
	e.Birthday = birthday
	e.Hobbies = dto.Hobbies
	return nil
}
