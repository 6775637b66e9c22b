package repository

import (
	"context"
	"errors"

	"github.com/mathews-augusto-alves/library-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookRepository defines the data access contract for books.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type BookRepository interface {
	Create(ctx context.Context, tx *gorm.DB, b *model.Book) error
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	List(ctx context.Context, page, size int) ([]model.Book, int64, error)

	// Used inside transactions — callers must pass the tx instance.
	// FindByIDForUpdateTx takes a row lock (SELECT … FOR UPDATE) so concurrent
	// borrows of the same book serialize on the availability check.
	FindByIDForUpdateTx(tx *gorm.DB, id uint) (*model.Book, error)
	SetAvailabilityTx(tx *gorm.DB, id uint, available bool) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type bookRepo struct{ db *gorm.DB }

func NewBookRepository(db *gorm.DB) BookRepository { return &bookRepo{db: db} }

func (r *bookRepo) Create(ctx context.Context, tx *gorm.DB, b *model.Book) error {
	return tx.WithContext(ctx).Create(b).Error
}

func (r *bookRepo) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var b model.Book
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &b, err
}

func (r *bookRepo) List(ctx context.Context, page, size int) ([]model.Book, int64, error) {
	var books []model.Book
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Book{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size
	err := q.Order("title ASC").Limit(size).Offset(offset).Find(&books).Error
	return books, total, err
}

func (r *bookRepo) FindByIDForUpdateTx(tx *gorm.DB, id uint) (*model.Book, error) {
	var b model.Book
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &b, err
}

func (r *bookRepo) SetAvailabilityTx(tx *gorm.DB, id uint, available bool) error {
	return tx.Model(&model.Book{}).Where("id = ?", id).
		Update("available", available).Error
}

func (r *bookRepo) DB() *gorm.DB { return r.db }
