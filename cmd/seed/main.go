package main

import (
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-employee-service/config"
	"github.com/oksasatya/go-employee-service/internal/domain/entity"
	"github.com/oksasatya/go-employee-service/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		logger.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "john@doe"
	name := "John Doe"
	birthday, _ := time.Parse(entity.BirthdayLayout, "1990-01-01")

	// hobbies are passed as a text[] literal through database/sql
	var id string
	err = db.QueryRow(`
		INSERT INTO employees (id, email, full_name, birthday, hobbies)
		VALUES (gen_random_uuid(), $1, $2, $3, $4::text[])
		ON CONFLICT (lower(email)) DO UPDATE SET full_name = EXCLUDED.full_name, updated_at = now()
		RETURNING id
	`, email, name, birthday, "{swimming,hiking}").Scan(&id)
	if err != nil {
		logger.Fatalf("failed to seed employee: %v", err)
	}
	logger.WithField("employee_id", id).WithField("email", email).Info("seeded employee")
}
