package usecase

import (
	"context"
	"strings"

	"github.com/mathews-augusto-alves/library-api/internal/model"
	"github.com/mathews-augusto-alves/library-api/internal/service"
)

// LoanUseCase enforces the borrowing/return business rules across the book,
// person, and loan services. It is the only component that knows the full
// cross-entity invariant: a book is available iff it has no active loan.
//
// Validation ordering is deliberate — existence before availability before the
// active-loan re-check — so the most specific failure is reported first and no
// mutation starts before all preconditions hold.
type LoanUseCase interface {
	RegisterBook(ctx context.Context, title, author string) (*model.Book, error)
	GetBook(ctx context.Context, bookID uint) (*model.Book, error)
	ListBooks(ctx context.Context, page, size int) ([]model.Book, int64, error)

	Borrow(ctx context.Context, bookID, personID, userID uint) (*model.Loan, error)
	Return(ctx context.Context, bookID uint) (*model.Loan, error)
	ActiveLoan(ctx context.Context, bookID uint) (*model.Loan, error)
	ListLoans(ctx context.Context, page, size int, status model.LoanStatus) ([]model.Loan, int64, error)
}

type loanUseCase struct {
	books  service.BookService
	people service.PersonService
	loans  service.LoanService
}

func NewLoanUseCase(books service.BookService, people service.PersonService, loans service.LoanService) LoanUseCase {
	return &loanUseCase{books: books, people: people, loans: loans}
}

func (uc *loanUseCase) RegisterBook(ctx context.Context, title, author string) (*model.Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if len(title) < 2 {
		return nil, &service.InvalidDataError{Field: "title", Value: title}
	}
	if len(author) < 2 {
		return nil, &service.InvalidDataError{Field: "author", Value: author}
	}

	book := &model.Book{Title: title, Author: author, Available: true}
	if err := uc.books.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (uc *loanUseCase) GetBook(ctx context.Context, bookID uint) (*model.Book, error) {
	return uc.existingBook(ctx, bookID)
}

func (uc *loanUseCase) ListBooks(ctx context.Context, page, size int) ([]model.Book, int64, error) {
	return uc.books.List(ctx, page, size)
}

func (uc *loanUseCase) Borrow(ctx context.Context, bookID, personID, userID uint) (*model.Loan, error) {
	book, err := uc.availableBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err := uc.requirePerson(ctx, personID); err != nil {
		return nil, err
	}
	// Belt and suspenders: the flag could be stale, the loans table is the
	// source of truth. The loan service re-checks under a row lock anyway.
	if err := uc.requireNoActiveLoan(ctx, book.ID); err != nil {
		return nil, err
	}

	return uc.loans.Borrow(ctx, book.ID, personID, userID)
}

func (uc *loanUseCase) Return(ctx context.Context, bookID uint) (*model.Loan, error) {
	book, err := uc.existingBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	active, err := uc.loans.ActiveLoanForBook(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, &service.NoActiveLoanError{BookID: book.ID}
	}

	loan, err := uc.loans.Return(ctx, active.ID, book.ID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		// Finalized concurrently between the check and the transaction.
		return nil, &service.NoActiveLoanError{BookID: book.ID}
	}
	return loan, nil
}

func (uc *loanUseCase) ActiveLoan(ctx context.Context, bookID uint) (*model.Loan, error) {
	return uc.loans.ActiveLoanForBook(ctx, bookID)
}

func (uc *loanUseCase) ListLoans(ctx context.Context, page, size int, status model.LoanStatus) ([]model.Loan, int64, error) {
	return uc.loans.List(ctx, page, size, status)
}

func (uc *loanUseCase) existingBook(ctx context.Context, bookID uint) (*model.Book, error) {
	book, err := uc.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, &service.BookNotFoundError{BookID: bookID}
	}
	return book, nil
}

func (uc *loanUseCase) availableBook(ctx context.Context, bookID uint) (*model.Book, error) {
	book, err := uc.existingBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !book.Available {
		return nil, &service.BookUnavailableError{BookID: bookID}
	}
	return book, nil
}

func (uc *loanUseCase) requirePerson(ctx context.Context, personID uint) error {
	person, err := uc.people.FindByID(ctx, personID)
	if err != nil {
		return err
	}
	if person == nil {
		return &service.PersonNotFoundError{PersonID: personID}
	}
	return nil
}

func (uc *loanUseCase) requireNoActiveLoan(ctx context.Context, bookID uint) error {
	active, err := uc.loans.ActiveLoanForBook(ctx, bookID)
	if err != nil {
		return err
	}
	if active != nil {
		return &service.BookUnavailableError{BookID: bookID}
	}
	return nil
}
