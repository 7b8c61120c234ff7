package model

import "time"

// Book has at least one Author; the link table is the composite-key
// author_book_links (author_id, book_id).
type Book struct {
	ID              int64     `gorm:"primaryKey"`
	Title           string    `gorm:"not null"`
	ISBN            string    `gorm:"column:isbn;uniqueIndex;not null"`
	Edition         string
	PublicationDate time.Time `gorm:"type:date;not null"`
	Language        string    `gorm:"not null"`
	Authors         []Author  `gorm:"many2many:author_book_links"`
	Copies          []Copy
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
