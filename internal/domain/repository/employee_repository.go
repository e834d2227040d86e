package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/oksasatya/go-employee-service/internal/domain/entity"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("duplicate email")
)

//go:generate mockgen -source=employee_repository.go -destination=mock/employee_repository_mock.go -package=mock

// EmployeeRepository defines the interface for employee persistence.
type EmployeeRepository interface {
	// FindAll returns every employee ordered by id ascending.
	FindAll(ctx context.Context) ([]entity.Employee, error)
	// FindByID returns ErrNotFound when no row has the id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	// Save inserts when e.ID is uuid.Nil, updates otherwise. It fills the
	// generated id and audit timestamps back into e.
	Save(ctx context.Context, e *entity.Employee) error
	// DeleteByID returns ErrNotFound when nothing was deleted.
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ExistsByEmailIgnoreCase(ctx context.Context, email string) (bool, error)
	Ping(ctx context.Context) error
}
