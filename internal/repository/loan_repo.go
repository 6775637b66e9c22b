package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mathews-augusto-alves/library-api/internal/model"

	"gorm.io/gorm"
)

// LoanRepository defines the data access contract for loans. Finalization is
// write-once: FinalizeTx only touches rows whose returned_at is still null, so
// a returned loan can never be re-opened or re-stamped.
type LoanRepository interface {
	CreateTx(tx *gorm.DB, l *model.Loan) error
	FindActiveByBook(ctx context.Context, bookID uint) (*model.Loan, error)

	// Used inside transactions — callers must pass the tx instance.
	FindActiveByBookTx(tx *gorm.DB, bookID uint) (*model.Loan, error)
	// FinalizeTx stamps returned_at and returns the finalized loan, or nil when
	// no active loan with that id exists (already returned or never created).
	FinalizeTx(tx *gorm.DB, id uint, at time.Time) (*model.Loan, error)

	List(ctx context.Context, page, size int, status model.LoanStatus) ([]model.Loan, int64, error)
	DB() *gorm.DB
}

type loanRepo struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) LoanRepository { return &loanRepo{db: db} }

func (r *loanRepo) CreateTx(tx *gorm.DB, l *model.Loan) error {
	return tx.Create(l).Error
}

func (r *loanRepo) FindActiveByBook(ctx context.Context, bookID uint) (*model.Loan, error) {
	return findActiveByBook(r.db.WithContext(ctx), bookID)
}

func (r *loanRepo) FindActiveByBookTx(tx *gorm.DB, bookID uint) (*model.Loan, error) {
	return findActiveByBook(tx, bookID)
}

func findActiveByBook(db *gorm.DB, bookID uint) (*model.Loan, error) {
	var l model.Loan
	err := db.Where("book_id = ? AND returned_at IS NULL", bookID).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *loanRepo) FinalizeTx(tx *gorm.DB, id uint, at time.Time) (*model.Loan, error) {
	res := tx.Model(&model.Loan{}).
		Where("id = ? AND returned_at IS NULL", id).
		Update("returned_at", at)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var l model.Loan
	if err := tx.First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *loanRepo) List(ctx context.Context, page, size int, status model.LoanStatus) ([]model.Loan, int64, error) {
	var loans []model.Loan
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Loan{})
	switch status {
	case model.LoanStatusActive:
		q = q.Where("returned_at IS NULL")
	case model.LoanStatusReturned:
		q = q.Where("returned_at IS NOT NULL")
	case model.LoanStatusAll:
		// no filter
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size
	err := q.Preload("Book").Preload("Person").
		Order("loaned_at DESC, id DESC").
		Limit(size).Offset(offset).
		Find(&loans).Error
	return loans, total, err
}

func (r *loanRepo) DB() *gorm.DB { return r.db }
