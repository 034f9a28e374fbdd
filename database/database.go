package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"taskboard/config"
	"taskboard/utilities"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens the pool and checks the connection.
func ConnectPostgres(ctx context.Context, cfg config.Database) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		utilities.LogError(err, "failed to open database connection")
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		utilities.LogError(err, "failed to connect to database")
		return nil, fmt.Errorf("ping %s:%s/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}

	utilities.LogInfo("connected to PostgreSQL at %s:%s/%s", cfg.Host, cfg.Port, cfg.Name)
	return db, nil
}
