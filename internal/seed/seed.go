// Package seed inserts a small fixed data set: two authors, three books,
// two members, three copies and two checkouts (one returned, one open).
package seed

import (
	"time"

	"gorm.io/gorm"

	"github.com/AxelBuee/TestLibBackendShadow/internal/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func Run(db *gorm.DB) error {
	orwell := model.Author{
		FirstName:   "George",
		LastName:    "Orwell",
		Nationality: "English",
		DateOfBirth: date(1903, time.June, 25),
	}
	huxley := model.Author{
		FirstName:   "Aldous",
		LastName:    "Huxley",
		Nationality: "English",
		DateOfBirth: date(1894, time.July, 26),
	}

	deadpond := model.Book{
		Title:           "Deadpond",
		ISBN:            "000-0000000000",
		Edition:         "First edition",
		PublicationDate: date(2018, time.January, 1),
		Language:        "English",
		Authors:         []model.Author{orwell, huxley},
	}
	rustyMan := model.Book{
		Title:           "Hero Rusty",
		ISBN:            "000-0000000001",
		Edition:         "Gallimard",
		PublicationDate: date(2018, time.January, 1),
		Language:        "English",
		Authors:         []model.Author{huxley},
	}
	lonelyBook := model.Book{
		Title:           "Lonly book",
		ISBN:            "000-0000000002",
		Edition:         "Gallimard",
		PublicationDate: date(2018, time.January, 1),
		Language:        "English",
		Authors:         []model.Author{orwell},
	}

	john := model.Member{
		Auth0ID:              "a012f_ab23f_1234f",
		FirstName:            "John",
		LastName:             "Doe",
		Age:                  34,
		Birthdate:            date(1990, time.January, 1),
		City:                 "New York",
		MembershipExpiration: date(2022, time.January, 1),
	}
	jane := model.Member{
		Auth0ID:              "da33b_1234f_c0e3e",
		FirstName:            "Jane",
		LastName:             "Doe",
		Age:                  10,
		Birthdate:            date(2014, time.January, 1),
		City:                 "New York",
		MembershipExpiration: date(2025, time.January, 1),
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, b := range []*model.Book{&deadpond, &rustyMan, &lonelyBook} {
			if err := tx.Create(b).Error; err != nil {
				return err
			}
		}
		for _, m := range []*model.Member{&john, &jane} {
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}

		copies := []*model.Copy{
			{Barcode: "0100101010", Location: "Shelf 1", IsAvailable: true, BookID: deadpond.ID},
			{Barcode: "1100101011", Location: "Shelf 40", IsAvailable: false, BookID: rustyMan.ID},
			{Barcode: "1100100000", Location: "Shelf 40", IsAvailable: false, BookID: rustyMan.ID},
		}
		for _, cp := range copies {
			if err := tx.Create(cp).Error; err != nil {
				return err
			}
		}

		returned := date(2021, time.January, 10)
		checkouts := []*model.Checkout{
			{
				CheckoutDate:       date(2021, time.January, 1),
				ExpectedReturnDate: date(2021, time.January, 15),
				ReturnedDate:       &returned,
				MemberID:           john.ID,
				CopyID:             copies[0].ID,
			},
			{
				CheckoutDate:       date(2024, time.March, 10),
				ExpectedReturnDate: date(2024, time.March, 15),
				MemberID:           jane.ID,
				CopyID:             copies[1].ID,
			},
		}
		for _, co := range checkouts {
			if err := tx.Create(co).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
