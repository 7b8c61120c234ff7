// Package testutil provides an isolated in-memory database and seed helpers
// for handler and repository tests.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AxelBuee/TestLibBackendShadow/internal/model"
)

func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:testdb_" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.Author{},
		&model.Book{},
		&model.Copy{},
		&model.Member{},
		&model.Checkout{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func SeedAuthor(t *testing.T, db *gorm.DB, first, last string) model.Author {
	t.Helper()

	author := model.Author{
		FirstName:   first,
		LastName:    last,
		DateOfBirth: Date(1903, time.June, 25),
		Nationality: "English",
	}
	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author: %v", err)
	}
	return author
}

func SeedBook(t *testing.T, db *gorm.DB, title, isbn string, authors ...model.Author) model.Book {
	t.Helper()

	book := model.Book{
		Title:           title,
		ISBN:            isbn,
		Edition:         "First edition",
		PublicationDate: Date(2018, time.January, 1),
		Language:        "English",
		Authors:         authors,
	}
	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}
	return book
}

func SeedCopy(t *testing.T, db *gorm.DB, bookID int64, barcode string, available bool) model.Copy {
	t.Helper()

	copyItem := model.Copy{
		Barcode:     barcode,
		Location:    "Shelf 1",
		IsAvailable: available,
		BookID:      bookID,
	}
	if err := db.Create(&copyItem).Error; err != nil {
		t.Fatalf("failed to seed copy: %v", err)
	}
	return copyItem
}

func SeedMember(t *testing.T, db *gorm.DB, first string, expiration time.Time) model.Member {
	t.Helper()

	member := model.Member{
		Auth0ID:              "auth0|" + uuid.NewString(),
		FirstName:            first,
		LastName:             "Doe",
		Age:                  34,
		Birthdate:            Date(1990, time.January, 1),
		City:                 "New York",
		MembershipExpiration: expiration,
	}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}
	return member
}

func SeedCheckout(t *testing.T, db *gorm.DB, memberID, copyID int64, returned *time.Time) model.Checkout {
	t.Helper()

	checkout := model.Checkout{
		CheckoutDate:       Date(2024, time.March, 10),
		ExpectedReturnDate: Date(2024, time.March, 15),
		ReturnedDate:       returned,
		MemberID:           memberID,
		CopyID:             copyID,
	}
	if err := db.Create(&checkout).Error; err != nil {
		t.Fatalf("failed to seed checkout: %v", err)
	}
	return checkout
}
