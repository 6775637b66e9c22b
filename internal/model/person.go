package model

import "time"

// Person is a library member — the borrower side of a loan.
type Person struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"index;not null"`
	Phone     string    `gorm:"not null"`
	BirthDate time.Time `gorm:"type:date;not null"`
	Email     *string   `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
