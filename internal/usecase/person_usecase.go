package usecase

import (
	"context"

	"github.com/mathews-augusto-alves/library-api/internal/model"
	"github.com/mathews-augusto-alves/library-api/internal/service"
)

// PersonUseCase layers email uniqueness and existence checks over the thin
// transactional person service. Format validation happens at the DTO binding.
type PersonUseCase interface {
	Create(ctx context.Context, p *model.Person) (*model.Person, error)
	Get(ctx context.Context, id uint) (*model.Person, error)
	FindByEmail(ctx context.Context, email string) (*model.Person, error)
	List(ctx context.Context, page, size int) ([]model.Person, int64, error)
	Update(ctx context.Context, id uint, p *model.Person) (*model.Person, error)
	Delete(ctx context.Context, id uint) error
}

type personUseCase struct {
	people service.PersonService
}

func NewPersonUseCase(people service.PersonService) PersonUseCase {
	return &personUseCase{people: people}
}

func (uc *personUseCase) Create(ctx context.Context, p *model.Person) (*model.Person, error) {
	if p.Email != nil {
		if err := uc.requireEmailFree(ctx, *p.Email, 0); err != nil {
			return nil, err
		}
	}
	if err := uc.people.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *personUseCase) Get(ctx context.Context, id uint) (*model.Person, error) {
	person, err := uc.people.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, &service.PersonNotFoundError{PersonID: id}
	}
	return person, nil
}

func (uc *personUseCase) FindByEmail(ctx context.Context, email string) (*model.Person, error) {
	return uc.people.FindByEmail(ctx, email)
}

func (uc *personUseCase) List(ctx context.Context, page, size int) ([]model.Person, int64, error) {
	return uc.people.List(ctx, page, size)
}

func (uc *personUseCase) Update(ctx context.Context, id uint, p *model.Person) (*model.Person, error) {
	existing, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Email != nil {
		if err := uc.requireEmailFree(ctx, *p.Email, id); err != nil {
			return nil, err
		}
	}

	existing.Name = p.Name
	existing.Phone = p.Phone
	existing.BirthDate = p.BirthDate
	existing.Email = p.Email
	if err := uc.people.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *personUseCase) Delete(ctx context.Context, id uint) error {
	if _, err := uc.Get(ctx, id); err != nil {
		return err
	}
	return uc.people.Delete(ctx, id)
}

func (uc *personUseCase) requireEmailFree(ctx context.Context, email string, selfID uint) error {
	other, err := uc.people.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return &service.EmailTakenError{Email: email}
	}
	return nil
}
