package service

import (
	"context"

	"github.com/mathews-augusto-alves/library-api/internal/model"
	"github.com/mathews-augusto-alves/library-api/internal/repository"

	"gorm.io/gorm"
)

type PersonService interface {
	Create(ctx context.Context, p *model.Person) error
	FindByID(ctx context.Context, id uint) (*model.Person, error)
	FindByEmail(ctx context.Context, email string) (*model.Person, error)
	List(ctx context.Context, page, size int) ([]model.Person, int64, error)
	Update(ctx context.Context, p *model.Person) error
	Delete(ctx context.Context, id uint) error
}

type personService struct {
	repo repository.PersonRepository
}

func NewPersonService(repo repository.PersonRepository) PersonService {
	return &personService{repo: repo}
}

func (s *personService) Create(ctx context.Context, p *model.Person) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, p)
	})
}

func (s *personService) FindByID(ctx context.Context, id uint) (*model.Person, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *personService) FindByEmail(ctx context.Context, email string) (*model.Person, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *personService) List(ctx context.Context, page, size int) ([]model.Person, int64, error) {
	return s.repo.List(ctx, page, size)
}

func (s *personService) Update(ctx context.Context, p *model.Person) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateTx(tx, p)
	})
}

func (s *personService) Delete(ctx context.Context, id uint) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.DeleteTx(tx, id)
	})
}
