package service

import (
	"context"

	"github.com/mathews-augusto-alves/library-api/internal/model"
	"github.com/mathews-augusto-alves/library-api/internal/repository"

	"gorm.io/gorm"
)

// BookService executes one unit-of-work-wrapped operation per call.
// Availability toggles are reserved for LoanService — there is deliberately
// no general book update here.
type BookService interface {
	Create(ctx context.Context, b *model.Book) error
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	List(ctx context.Context, page, size int) ([]model.Book, int64, error)
}

type bookService struct {
	repo repository.BookRepository
}

func NewBookService(repo repository.BookRepository) BookService {
	return &bookService{repo: repo}
}

func (s *bookService) Create(ctx context.Context, b *model.Book) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, b)
	})
}

func (s *bookService) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *bookService) List(ctx context.Context, page, size int) ([]model.Book, int64, error) {
	return s.repo.List(ctx, page, size)
}
