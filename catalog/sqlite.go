// SQLite catalog backend.
//
// Information Hiding:
// - Connection management and schema encapsulated
// - Thread-safe via sql.DB's built-in connection pooling

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBackend implements Backend over a SQLite database file.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens or creates a catalog database at the given path.
// Creates parent directories if they don't exist.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	backend := &SQLiteBackend{db: db}
	if err := backend.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}

	return backend, nil
}

// NewSQLiteInMemory creates an in-memory catalog database (useful for testing).
func NewSQLiteInMemory() (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory catalog: %w", err)
	}

	backend := &SQLiteBackend{db: db}
	if err := backend.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}

	return backend, nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func (b *SQLiteBackend) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS services (
			position INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL,
			price REAL NOT NULL,
			duration TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_services_category
		ON services(category);
	`

	if _, err := b.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Seed replaces the catalog contents with the given services.
// Position follows the slice order so Lookup stays stable.
func (b *SQLiteBackend) Seed(ctx context.Context, services []Service) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM services"); err != nil {
		return fmt.Errorf("failed to clear services: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO services (position, name, category, price, duration) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for i, svc := range services {
		if _, err := stmt.ExecContext(ctx, i, svc.Name, svc.Category, svc.Price, svc.Duration); err != nil {
			return fmt.Errorf("failed to insert service %q: %w", svc.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Lookup returns the services matching the filter in seeded order.
func (b *SQLiteBackend) Lookup(ctx context.Context, filter Filter) ([]Service, error) {
	query := "SELECT name, category, price, duration FROM services"
	var clauses []string
	var args []interface{}

	if filter.Category != "" {
		clauses = append(clauses, "LOWER(category) = LOWER(?)")
		args = append(args, filter.Category)
	}
	if filter.MinPrice != nil {
		clauses = append(clauses, "price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		clauses = append(clauses, "price <= ?")
		args = append(args, *filter.MaxPrice)
	}

	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY position ASC"

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	services := []Service{}
	for rows.Next() {
		var svc Service
		if err := rows.Scan(&svc.Name, &svc.Category, &svc.Price, &svc.Duration); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", err)
	}

	return services, nil
}

// Verify SQLiteBackend implements Backend
var _ Backend = (*SQLiteBackend)(nil)
