package database

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"github.com/jobdeck/jobdeck/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database and runs migrations. With a DATABASE_URL it
// connects to Postgres; without one it falls back to a local SQLite file so
// the app still runs in development.
func Connect(databaseURL string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the error middleware maps to 400.
	cfg := &gorm.Config{TranslateError: true}

	if databaseURL != "" {
		db, err = gorm.Open(postgres.Open(databaseURL), cfg)
	} else {
		log.Println("DATABASE_URL not set, using local sqlite database jobdeck.db")
		db, err = gorm.Open(sqlite.Open("jobdeck.db"), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	log.Println("Database connection established")
	return db, nil
}

// Migrate creates or updates the tables for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.JobApplication{},
	)
}
