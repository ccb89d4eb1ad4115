package persistence

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Priyansh6570/Sanchalan/infrastructure/configuration"
	"github.com/Priyansh6570/Sanchalan/infrastructure/logger"

	_ "github.com/lib/pq"
)

// NewPostgreSQLDB opens the primary store using the resolved configuration.
func NewPostgreSQLDB() (*sql.DB, error) {
	cfg := configuration.C.Database.Psql
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		logger.GetLogger().WithField("error", err).Error("PostgreSQL ping failed")
		return db, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
