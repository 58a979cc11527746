// Package user persists credential records in PostgreSQL.
package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"session-server/internal/auth/models"
	"session-server/pkg/sentinel"
)

// pq error class for unique_violation.
const uniqueViolation = "23505"

// PostgresStore implements the credential-store contract on database/sql.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = "id, username, email, phone, password, created_at, role"

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.Password, &u.CreatedAt, &u.Role)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// FindByAny returns every user matching the given username, email, or phone.
// An empty result is not an error; callers use it for uniqueness pre-checks.
func (s *PostgresStore) FindByAny(ctx context.Context, username, email, phone string) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE username = $1 OR email = $2 OR phone = $3`

	rows, err := s.db.QueryContext(ctx, query, username, email, phone)
	if err != nil {
		return nil, fmt.Errorf("find users by predicate: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find users by predicate: %w", err)
	}
	return users, nil
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// Create inserts the user and re-reads the stored row inside one transaction,
// so the returned record reflects store-assigned fields (id, created_at) and
// cannot race a concurrent delete. A unique-constraint rejection surfaces as
// sentinel.ErrConflict.
func (s *PostgresStore) Create(ctx context.Context, u models.User) (*models.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (username, email, phone, password)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		u.Username, u.Email, u.Phone, u.Password,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("insert user: %w", sentinel.ErrConflict)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created, err := scanUser(tx.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("read inserted user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return created, nil
}
