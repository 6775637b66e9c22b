package model

import (
	"fmt"
	"time"
)

// Loan links a book to the person borrowing it and the user who processed it.
// ReturnedAt == nil means the loan is active; once set it is never cleared
// (a returned loan cannot be re-opened — a new borrow creates a new row).
type Loan struct {
	ID         uint      `gorm:"primaryKey"`
	BookID     uint      `gorm:"not null;index"`
	PersonID   uint      `gorm:"not null;index"`
	UserID     uint      `gorm:"not null"`
	LoanedAt   time.Time `gorm:"not null"`
	ReturnedAt *time.Time

	Book   *Book   `gorm:"foreignKey:BookID"`
	Person *Person `gorm:"foreignKey:PersonID"`
	User   *User   `gorm:"foreignKey:UserID"`
}

// Active reports whether the loan has not been finalized yet.
func (l *Loan) Active() bool { return l.ReturnedAt == nil }

// LoanStatus is the tri-state filter for loan listings. The repository
// switches on the typed value so no string comparison reaches query building.
type LoanStatus uint8

const (
	LoanStatusActive LoanStatus = iota
	LoanStatusReturned
	LoanStatusAll
)

// ParseLoanStatus maps the query-string form ("active", "returned", "all")
// to the typed filter. Empty input defaults to active.
func ParseLoanStatus(s string) (LoanStatus, error) {
	switch s {
	case "", "active":
		return LoanStatusActive, nil
	case "returned":
		return LoanStatusReturned, nil
	case "all":
		return LoanStatusAll, nil
	default:
		return LoanStatusActive, fmt.Errorf("unknown loan status %q", s)
	}
}

func (s LoanStatus) String() string {
	switch s {
	case LoanStatusReturned:
		return "returned"
	case LoanStatusAll:
		return "all"
	default:
		return "active"
	}
}
