package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/kodpocztowy/internal/config"
)

// Connection holds the database connection pool.
type Connection struct {
	DB *sql.DB
}

// NewConnection opens a Postgres connection using PG* environment
// variables and verifies it with a ping.
func NewConnection() (*Connection, error) {
	host := config.GetEnv("PGHOST", "localhost")
	port := config.GetEnv("PGPORT", "5432")
	user := config.GetEnv("PGUSER", "postgres")
	password := config.GetEnv("PGPASSWORD", "postgres")
	dbname := config.GetEnv("PGDATABASE", "postal_codes")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(config.GetEnvInt("PGMAXCONNS", 20))
	db.SetMaxIdleConns(config.GetEnvInt("PGMAXCONNS", 20) / 2)

	return &Connection{DB: db}, nil
}

// Close closes the database connection.
func (c *Connection) Close() error {
	return c.DB.Close()
}
