package service

import (
	"context"
	"time"

	"github.com/mathews-augusto-alves/library-api/internal/model"
	"github.com/mathews-augusto-alves/library-api/internal/repository"

	"gorm.io/gorm"
)

// LoanService owns the two writes that must stay consistent: the book
// availability flag and the loan row. Each mutating method is exactly one
// transaction; on any error both writes roll back together, so there is never
// a loan row referencing a book whose flag wasn't flipped, or vice versa.
type LoanService interface {
	// Borrow marks the book unavailable and creates an active loan, atomically.
	Borrow(ctx context.Context, bookID, personID, userID uint) (*model.Loan, error)
	// Return finalizes the loan and marks the book available again. When no
	// active loan with that id exists it returns (nil, nil) without mutating —
	// a read-only outcome, still committed.
	Return(ctx context.Context, loanID, bookID uint) (*model.Loan, error)
	ActiveLoanForBook(ctx context.Context, bookID uint) (*model.Loan, error)
	List(ctx context.Context, page, size int, status model.LoanStatus) ([]model.Loan, int64, error)
}

type loanService struct {
	loans repository.LoanRepository
	books repository.BookRepository
	loc   *time.Location
}

func NewLoanService(loans repository.LoanRepository, books repository.BookRepository, loc *time.Location) LoanService {
	if loc == nil {
		loc = time.UTC
	}
	return &loanService{loans: loans, books: books, loc: loc}
}

func (s *loanService) Borrow(ctx context.Context, bookID, personID, userID uint) (*model.Loan, error) {
	var loan *model.Loan
	err := runTx(ctx, s.loans.DB(), func(tx *gorm.DB) error {
		// Lock the book row so concurrent borrows of the same book serialize
		// here; the use case's pre-checks alone leave a race window between
		// check and insert.
		book, err := s.books.FindByIDForUpdateTx(tx, bookID)
		if err != nil {
			return err
		}
		if book == nil {
			return &BookNotFoundError{BookID: bookID}
		}
		if !book.Available {
			return &BookUnavailableError{BookID: bookID}
		}
		if active, err := s.loans.FindActiveByBookTx(tx, bookID); err != nil {
			return err
		} else if active != nil {
			return &BookUnavailableError{BookID: bookID}
		}

		if err := s.books.SetAvailabilityTx(tx, bookID, false); err != nil {
			return err
		}
		l := &model.Loan{
			BookID:   bookID,
			PersonID: personID,
			UserID:   userID,
			LoanedAt: time.Now().In(s.loc),
		}
		if err := s.loans.CreateTx(tx, l); err != nil {
			return err
		}
		loan = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

func (s *loanService) Return(ctx context.Context, loanID, bookID uint) (*model.Loan, error) {
	var loan *model.Loan
	err := runTx(ctx, s.loans.DB(), func(tx *gorm.DB) error {
		finalized, err := s.loans.FinalizeTx(tx, loanID, time.Now().In(s.loc))
		if err != nil {
			return err
		}
		if finalized == nil {
			// Already returned (or never existed) — nothing to undo.
			return nil
		}
		if err := s.books.SetAvailabilityTx(tx, bookID, true); err != nil {
			return err
		}
		loan = finalized
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

func (s *loanService) ActiveLoanForBook(ctx context.Context, bookID uint) (*model.Loan, error) {
	return s.loans.FindActiveByBook(ctx, bookID)
}

func (s *loanService) List(ctx context.Context, page, size int, status model.LoanStatus) ([]model.Loan, int64, error) {
	return s.loans.List(ctx, page, size, status)
}
