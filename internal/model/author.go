package model

import "time"

type Author struct {
	ID          int64      `gorm:"primaryKey"`
	FirstName   string     `gorm:"not null"`
	LastName    string     `gorm:"not null"`
	DateOfBirth time.Time  `gorm:"type:date;not null"`
	DateOfDeath *time.Time `gorm:"type:date"`
	Nationality string     `gorm:"not null"`
	Books       []Book     `gorm:"many2many:author_book_links"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
