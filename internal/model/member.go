package model

import "time"

type Member struct {
	ID                   int64     `gorm:"primaryKey"`
	Auth0ID              string    `gorm:"column:auth0_id;not null"`
	FirstName            string    `gorm:"not null"`
	LastName             string    `gorm:"not null"`
	Age                  int       `gorm:"not null"`
	Birthdate            time.Time `gorm:"type:date;not null"`
	City                 string
	MembershipExpiration time.Time `gorm:"type:date;not null"`
	Checkouts            []Checkout
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
