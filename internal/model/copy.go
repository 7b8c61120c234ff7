package model

import "time"

// Copy is a physical, independently lendable instance of a Book.
// IsAvailable is true iff no checkout against it is still open.
type Copy struct {
	ID          int64  `gorm:"primaryKey"`
	Barcode     string `gorm:"uniqueIndex;not null"`
	Location    string
	IsAvailable bool   `gorm:"not null"`
	BookID      int64  `gorm:"not null"`
	Book        Book
	Checkouts   []Checkout
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
