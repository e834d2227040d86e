package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-employee-service/internal/domain/repository"
)

var employeeRowColumns = []string{"id", "email", "full_name", "birthday", "hobbies", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (*EmployeeRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return NewEmployeeRepository(mock), mock
}

func TestEmployeeRepositoryMock_FindByID(t *testing.T) {
	id := uuid.New()
	now := time.Now()
	birthday := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(employeeRowColumns).
					AddRow(id, "john@doe", "John Doe", birthday, []string{"chess"}, now, now)
				mock.ExpectQuery(`SELECT .* FROM employees WHERE id = \$1`).
					WithArgs(id).
					WillReturnRows(rows)
			},
		},
		{
			name: "missing row",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .* FROM employees WHERE id = \$1`).
					WithArgs(id).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: repository.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.setup(mock)

			got, err := repo.FindByID(context.Background(), id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "john@doe", got.Email)
			assert.Equal(t, "1990-01-01", got.BirthdayFormatted())
		})
	}
}

func TestEmployeeRepositoryMock_InsertDuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO employees`).
		WithArgs(pgxmock.AnyArg(), "JOHN@doe", "John Doe", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: emailUniqueIndexName})

	e := newEmployee("JOHN@doe")
	err := repo.Save(context.Background(), e)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.Equal(t, uuid.Nil, e.ID)
}

func TestEmployeeRepositoryMock_OtherUniqueViolationPassesThrough(t *testing.T) {
	repo, mock := newMockRepo(t)

	pgErr := &pgconn.PgError{Code: uniqueViolation, ConstraintName: "employees_pkey"}
	mock.ExpectQuery(`INSERT INTO employees`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgErr)

	err := repo.Save(context.Background(), newEmployee("john@doe"))
	assert.NotErrorIs(t, err, repository.ErrDuplicateEmail)
	var got *pgconn.PgError
	assert.True(t, errors.As(err, &got))
}

func TestEmployeeRepositoryMock_UpdateMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	e := newEmployee("john@doe")
	e.ID = uuid.New()
	mock.ExpectQuery(`UPDATE employees`).
		WithArgs(e.Email, e.FullName, e.Birthday, e.Hobbies, e.ID).
		WillReturnError(pgx.ErrNoRows)

	assert.ErrorIs(t, repo.Save(context.Background(), e), repository.ErrNotFound)
}

func TestEmployeeRepositoryMock_DeleteByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM employees WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM employees WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.DeleteByID(context.Background(), id))
	assert.ErrorIs(t, repo.DeleteByID(context.Background(), id), repository.ErrNotFound)
}

func TestEmployeeRepositoryMock_ExistsByEmailIgnoreCase(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT EXISTS .* lower\(email\) = lower\(\$1\)`).
		WithArgs("John@Doe").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.ExistsByEmailIgnoreCase(context.Background(), "John@Doe")
	require.NoError(t, err)
	assert.True(t, ok)
}
