package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"shulchan/pkg/sentinel"
)

// PostgresProvider persists credentials in the credentials table.
type PostgresProvider struct {
	db *sql.DB
}

func NewPostgresProvider(db *sql.DB) *PostgresProvider {
	return &PostgresProvider{db: db}
}

func (p *PostgresProvider) CreateUser(ctx context.Context, email, password string) (Credential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Credential{}, err
	}

	cred := Credential{
		ID:    uuid.NewString(),
		Email: strings.ToLower(email),
	}

	query := `
		INSERT INTO credentials (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err = p.db.QueryRowContext(ctx, query, cred.ID, cred.Email, string(hash)).Scan(&cred.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return Credential{}, ErrEmailTaken
		}
		return Credential{}, fmt.Errorf("create credential: %w", err)
	}
	return cred, nil
}

func (p *PostgresProvider) DeleteUser(ctx context.Context, id string) error {
	result, err := p.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete credential rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (p *PostgresProvider) Authenticate(ctx context.Context, email, password string) (Credential, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM credentials
		WHERE email = $1
	`
	var cred Credential
	var hash string
	var createdAt time.Time
	err := p.db.QueryRowContext(ctx, query, strings.ToLower(email)).
		Scan(&cred.ID, &cred.Email, &hash, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Credential{}, sentinel.ErrNotFound
		}
		return Credential{}, fmt.Errorf("find credential: %w", err)
	}
	cred.CreatedAt = createdAt

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return Credential{}, sentinel.ErrNotFound
	}
	return cred, nil
}
