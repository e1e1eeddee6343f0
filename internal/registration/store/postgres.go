package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"shulchan/internal/registration/models"
)

// PostgresStore persists registrations in the registrations table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, reg models.Registration) (models.Registration, error) {
	reg.ID = uuid.NewString()

	query := `
		INSERT INTO registrations
			(id, first_name, last_name, birth_date, address, email, phone, origin, gender, status, credential_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		reg.ID,
		reg.FirstName,
		reg.LastName,
		nullable(reg.BirthDate),
		nullable(reg.Address),
		nullable(reg.Email),
		nullable(reg.Phone),
		reg.Origin,
		reg.Gender,
		reg.Status,
		nullable(reg.CredentialID),
	).Scan(&reg.CreatedAt)
	if err != nil {
		return models.Registration{}, fmt.Errorf("insert registration: %w", err)
	}
	return reg, nil
}

// nullable maps empty optional fields to SQL NULL instead of empty strings.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
