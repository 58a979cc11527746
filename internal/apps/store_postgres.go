package apps

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"session-server/pkg/sentinel"
)

// PostgresStore persists app records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) List(ctx context.Context) ([]App, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, path FROM apps ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list apps: %w", err)
	}
	defer rows.Close()

	apps := []App{}
	for rows.Next() {
		var a App
		if err := rows.Scan(&a.ID, &a.Name, &a.Path); err != nil {
			return nil, fmt.Errorf("scan app: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list apps: %w", err)
	}
	return apps, nil
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*App, error) {
	var a App
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, path FROM apps WHERE name = $1`, name,
	).Scan(&a.ID, &a.Name, &a.Path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find app by name: %w", err)
	}
	return &a, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*App, error) {
	var a App
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, path FROM apps WHERE id = $1`, id,
	).Scan(&a.ID, &a.Name, &a.Path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find app by id: %w", err)
	}
	return &a, nil
}

// Create inserts the app and re-reads it inside one transaction, mirroring
// the credential store's insert-then-read boundary.
func (s *PostgresStore) Create(ctx context.Context, app App) (*App, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO apps (name, path) VALUES ($1, $2) RETURNING id`,
		app.Name, app.Path,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert app: %w", err)
	}

	var created App
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, path FROM apps WHERE id = $1`, id,
	).Scan(&created.ID, &created.Name, &created.Path)
	if err != nil {
		return nil, fmt.Errorf("read inserted app: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &created, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM apps WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete app: %w", err)
	}
	return nil
}
