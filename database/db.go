package database

import (
	"context"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Database struct {
	pool *pgxpool.Pool // database connection
}

// Connects to database with provided data
// and returns database object
func ConnectDB(uri, database string) (*Database, error) {
	config, err := pgxpool.ParseConfig(os.ExpandEnv(uri))
	if err != nil {
		return nil, err
	}

	config.ConnConfig.Database = database

	pool, err := pgxpool.ConnectConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	db := Database{pool: pool}

	if err = db.ensureSchema(); err != nil {
		pool.Close()
		return nil, err
	}

	return &db, nil
}

// Close database connection
// ( pool.Close alias )
func (db *Database) Close() {
	db.pool.Close()
}

func (db *Database) Ping() bool {
	return db.pool.Ping(context.Background()) == nil
}

// Creates the users and files tables on first run.
// Re-running the statements on an existing database is a no-op.
func (db *Database) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS files (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			is_public BOOL NOT NULL DEFAULT false,
			parent_id UUID NOT NULL DEFAULT '00000000-0000-0000-0000-000000000000',
			local_path TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.pool.Exec(context.Background(), stmt); err != nil {
			return err
		}
	}
	return nil
}

func (db *Database) CountUsers() (int64, error) {
	var count int64
	err := db.pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM users;").Scan(&count)
	return count, err
}

func (db *Database) CountFiles() (int64, error) {
	var count int64
	err := db.pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM files;").Scan(&count)
	return count, err
}
