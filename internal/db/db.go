package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AxelBuee/TestLibBackendShadow/internal/config"
	"github.com/AxelBuee/TestLibBackendShadow/internal/model"
)

const (
	defaultMaxAttempts     = 10
	defaultDelayBetweenTry = 2 * time.Second
)

func ConnectWithRetry(cfg *config.Config) *gorm.DB {
	var db *gorm.DB
	var err error

	for attempt := 1; attempt <= defaultMaxAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			TranslateError: true,
		})
		if err == nil {
			sqlDB, err2 := db.DB()
			if err2 == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					return db
				}
				err = pingErr
			} else {
				err = err2
			}
		}

		log.Printf("db not ready (attempt %d/%d): %v", attempt, defaultMaxAttempts, err)
		time.Sleep(defaultDelayBetweenTry)
	}

	log.Fatalf("could not connect to db after %d attempts: %v", defaultMaxAttempts, err)
	return nil
}

// Migrate creates or updates the five entity tables plus the
// author_book_links link table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Author{},
		&model.Book{},
		&model.Copy{},
		&model.Member{},
		&model.Checkout{},
	)
}

// Reset drops every table and recreates the schema from scratch.
func Reset(db *gorm.DB) error {
	err := db.Migrator().DropTable(
		&model.Checkout{},
		&model.Copy{},
		"author_book_links",
		&model.Book{},
		&model.Author{},
		&model.Member{},
	)
	if err != nil {
		return err
	}
	return Migrate(db)
}
