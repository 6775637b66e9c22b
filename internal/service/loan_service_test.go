package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mathews-augusto-alves/library-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubBookRepo records availability writes; a nil DB() makes runTx invoke the
// transaction body directly, so the service logic runs without a database.
type stubBookRepo struct {
	book         *model.Book
	findErr      error
	setErr       error
	availability []bool
	lockReads    int
}

func (s *stubBookRepo) Create(ctx context.Context, tx *gorm.DB, b *model.Book) error { return nil }
func (s *stubBookRepo) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	return s.book, s.findErr
}
func (s *stubBookRepo) List(ctx context.Context, page, size int) ([]model.Book, int64, error) {
	return nil, 0, nil
}
func (s *stubBookRepo) FindByIDForUpdateTx(tx *gorm.DB, id uint) (*model.Book, error) {
	s.lockReads++
	return s.book, s.findErr
}
func (s *stubBookRepo) SetAvailabilityTx(tx *gorm.DB, id uint, available bool) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.availability = append(s.availability, available)
	if s.book != nil {
		s.book.Available = available
	}
	return nil
}
func (s *stubBookRepo) DB() *gorm.DB { return nil }

type stubLoanRepo struct {
	active      *model.Loan
	finalized   *model.Loan
	created     []*model.Loan
	createErr   error
	finalizeErr error
}

func (s *stubLoanRepo) CreateTx(tx *gorm.DB, l *model.Loan) error {
	if s.createErr != nil {
		return s.createErr
	}
	l.ID = uint(len(s.created) + 1)
	s.created = append(s.created, l)
	return nil
}
func (s *stubLoanRepo) FindActiveByBook(ctx context.Context, bookID uint) (*model.Loan, error) {
	return s.active, nil
}
func (s *stubLoanRepo) FindActiveByBookTx(tx *gorm.DB, bookID uint) (*model.Loan, error) {
	return s.active, nil
}
func (s *stubLoanRepo) FinalizeTx(tx *gorm.DB, id uint, at time.Time) (*model.Loan, error) {
	if s.finalizeErr != nil {
		return nil, s.finalizeErr
	}
	if s.finalized != nil {
		s.finalized.ReturnedAt = &at
	}
	return s.finalized, nil
}
func (s *stubLoanRepo) List(ctx context.Context, page, size int, status model.LoanStatus) ([]model.Loan, int64, error) {
	return nil, 0, nil
}
func (s *stubLoanRepo) DB() *gorm.DB { return nil }

func availableBook(id uint) *model.Book {
	return &model.Book{ID: id, Title: "Dom Casmurro", Author: "Machado de Assis", Available: true}
}

func TestBorrowCreatesLoanAndFlipsAvailability(t *testing.T) {
	books := &stubBookRepo{book: availableBook(1)}
	loans := &stubLoanRepo{}
	svc := NewLoanService(loans, books, time.UTC)

	loan, err := svc.Borrow(context.Background(), 1, 7, 3)

	require.NoError(t, err)
	require.NotNil(t, loan)
	assert.Equal(t, uint(1), loan.BookID)
	assert.Equal(t, uint(7), loan.PersonID)
	assert.Equal(t, uint(3), loan.UserID)
	assert.Nil(t, loan.ReturnedAt)
	assert.True(t, loan.Active())

	assert.Equal(t, 1, books.lockReads, "availability must be checked under a row lock")
	assert.Equal(t, []bool{false}, books.availability)
	require.Len(t, loans.created, 1)
}

func TestBorrowStampsConfiguredTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	books := &stubBookRepo{book: availableBook(1)}
	svc := NewLoanService(&stubLoanRepo{}, books, loc)

	loan, err := svc.Borrow(context.Background(), 1, 7, 3)

	require.NoError(t, err)
	assert.Equal(t, loc.String(), loan.LoanedAt.Location().String())
	assert.WithinDuration(t, time.Now(), loan.LoanedAt, 5*time.Second)
}

func TestBorrowMissingBook(t *testing.T) {
	svc := NewLoanService(&stubLoanRepo{}, &stubBookRepo{book: nil}, nil)

	_, err := svc.Borrow(context.Background(), 42, 7, 3)

	var notFound *BookNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint(42), notFound.BookID)
}

func TestBorrowUnavailableBook(t *testing.T) {
	book := availableBook(1)
	book.Available = false
	books := &stubBookRepo{book: book}
	loans := &stubLoanRepo{}
	svc := NewLoanService(loans, books, nil)

	_, err := svc.Borrow(context.Background(), 1, 7, 3)

	var unavailable *BookUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Empty(t, books.availability, "no write may happen when the check fails")
	assert.Empty(t, loans.created)
}

func TestBorrowRejectsWhenActiveLoanExists(t *testing.T) {
	// Availability flag says yes but the loans table disagrees; the table wins.
	books := &stubBookRepo{book: availableBook(1)}
	loans := &stubLoanRepo{active: &model.Loan{ID: 9, BookID: 1}}
	svc := NewLoanService(loans, books, nil)

	_, err := svc.Borrow(context.Background(), 1, 7, 3)

	var unavailable *BookUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Empty(t, books.availability)
	assert.Empty(t, loans.created)
}

func TestBorrowPropagatesCreateFailure(t *testing.T) {
	books := &stubBookRepo{book: availableBook(1)}
	boom := errors.New("insert failed")
	loans := &stubLoanRepo{createErr: boom}
	svc := NewLoanService(loans, books, nil)

	_, err := svc.Borrow(context.Background(), 1, 7, 3)

	require.ErrorIs(t, err, boom)
}

func TestReturnFinalizesAndRestoresAvailability(t *testing.T) {
	books := &stubBookRepo{book: &model.Book{ID: 1, Available: false}}
	loans := &stubLoanRepo{finalized: &model.Loan{ID: 5, BookID: 1}}
	svc := NewLoanService(loans, books, time.UTC)

	loan, err := svc.Return(context.Background(), 5, 1)

	require.NoError(t, err)
	require.NotNil(t, loan)
	require.NotNil(t, loan.ReturnedAt)
	assert.False(t, loan.Active())
	assert.Equal(t, []bool{true}, books.availability)
}

func TestReturnOfAlreadyFinalizedLoanIsNoop(t *testing.T) {
	books := &stubBookRepo{book: &model.Book{ID: 1, Available: true}}
	loans := &stubLoanRepo{finalized: nil}
	svc := NewLoanService(loans, books, time.UTC)

	loan, err := svc.Return(context.Background(), 5, 1)

	require.NoError(t, err)
	assert.Nil(t, loan)
	assert.Empty(t, books.availability, "a no-op return must not touch the book")
}

func TestReturnPropagatesAvailabilityFailure(t *testing.T) {
	boom := errors.New("update failed")
	books := &stubBookRepo{book: &model.Book{ID: 1}, setErr: boom}
	loans := &stubLoanRepo{finalized: &model.Loan{ID: 5, BookID: 1}}
	svc := NewLoanService(loans, books, time.UTC)

	_, err := svc.Return(context.Background(), 5, 1)

	require.ErrorIs(t, err, boom)
}
