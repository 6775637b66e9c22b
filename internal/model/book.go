package model

import "time"

// Book is a catalog entry. Available is a stored flag kept in sync with the
// loans table: it is false exactly while one active loan references the book.
// Only the loan service toggles it — there is no general "update book" path.
type Book struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"index;not null"`
	Author    string `gorm:"not null"`
	Available bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
