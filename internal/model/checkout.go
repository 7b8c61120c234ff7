package model

import "time"

// Checkout ties one Member to one Copy for a bounded period.
// ReturnedDate stays nil while the copy is out.
type Checkout struct {
	ID                 int64      `gorm:"primaryKey"`
	CheckoutDate       time.Time  `gorm:"type:date;not null"`
	ExpectedReturnDate time.Time  `gorm:"type:date;not null"`
	ReturnedDate       *time.Time `gorm:"type:date"`
	MemberID           int64      `gorm:"not null"`
	CopyID             int64      `gorm:"not null"`
	Member             Member
	Copy               Copy
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
