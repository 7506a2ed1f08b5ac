package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/booth-data/internal/config"
	"github.com/iliyamo/booth-data/internal/repository"
)

// Open connects to MySQL and verifies the connection.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	auth := cfg.User
	if cfg.Pass != "" {
		auth = fmt.Sprintf("%s:%s", cfg.User, cfg.Pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, cfg.Host, cfg.Port, cfg.Name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// The tools are one-shot batch jobs; a couple of connections is plenty.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenLedger opens the upload ledger when a database is configured.  It
// returns a nil repo, and logs why, when there is none or it cannot be
// reached; the caller closes the returned db.
func OpenLedger(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, *repository.UploadRepo) {
	if !cfg.Enabled() {
		return nil, nil
	}
	db, err := Open(cfg)
	if err != nil {
		log.Printf("mysql: ledger disabled: %v", err)
		return nil, nil
	}
	repo := repository.NewUploadRepo(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Printf("mysql: ledger disabled: %v", err)
		_ = db.Close()
		return nil, nil
	}
	return db, repo
}
