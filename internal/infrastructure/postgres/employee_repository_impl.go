package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-employee-service/internal/domain/entity"
	"github.com/oksasatya/go-employee-service/internal/domain/repository"
)

const (
	uniqueViolation      = "23505"
	emailUniqueIndexName = "uq_employees_email_lower"
)

const employeeColumns = `id, email, full_name, birthday, hobbies, created_at, updated_at`

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

type EmployeeRepository struct {
	pool DB
}

func NewEmployeeRepository(pool DB) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

func (r *EmployeeRepository) FindAll(ctx context.Context) ([]entity.Employee, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Employee, 0)
	for rows.Next() {
		var e entity.Employee
		if err := scanEmployee(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	e := &entity.Employee{}
	row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	if err := scanEmployee(row, e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *EmployeeRepository) Save(ctx context.Context, e *entity.Employee) error {
	if e.ID == uuid.Nil {
		return r.insert(ctx, e)
	}
	return r.update(ctx, e)
}

func (r *EmployeeRepository) insert(ctx context.Context, e *entity.Employee) error {
	id := uuid.New()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO employees (id, email, full_name, birthday, hobbies)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, id, e.Email, e.FullName, e.Birthday, e.Hobbies)

	if err := row.Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		return mapWriteError(err)
	}
	e.ID = id
	return nil
}

func (r *EmployeeRepository) update(ctx context.Context, e *entity.Employee) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE employees
		SET email = $1, full_name = $2, birthday = $3, hobbies = $4, updated_at = now()
		WHERE id = $5
		RETURNING created_at, updated_at
	`, e.Email, e.FullName, e.Birthday, e.Hobbies, e.ID)

	if err := row.Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return mapWriteError(err)
	}
	return nil
}

func (r *EmployeeRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) ExistsByEmailIgnoreCase(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM employees WHERE lower(email) = lower($1))`, email,
	).Scan(&exists)
	return exists, err
}

func (r *EmployeeRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanEmployee(row pgx.Row, e *entity.Employee) error {
	return row.Scan(&e.ID, &e.Email, &e.FullName, &e.Birthday, &e.Hobbies, &e.CreatedAt, &e.UpdatedAt)
}

// mapWriteError turns the email unique index violation into
// repository.ErrDuplicateEmail.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == emailUniqueIndexName {
		return fmt.Errorf("%w: %s", repository.ErrDuplicateEmail, pgErr.Detail)
	}
	return err
}

var _ repository.EmployeeRepository = (*EmployeeRepository)(nil)
