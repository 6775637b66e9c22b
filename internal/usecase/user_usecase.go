package usecase

import (
	"context"

	"github.com/mathews-augusto-alves/library-api/internal/model"
	"github.com/mathews-augusto-alves/library-api/internal/service"
)

// UserUseCase handles staff account management; token issuance lives in the
// auth service.
type UserUseCase interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context, page, size int) ([]model.User, int64, error)
	Update(ctx context.Context, id uint, name, email, password string) (*model.User, error)
	Delete(ctx context.Context, id uint) error
}

type userUseCase struct {
	users service.UserService
	auth  service.AuthService
}

func NewUserUseCase(users service.UserService, auth service.AuthService) UserUseCase {
	return &userUseCase{users: users, auth: auth}
}

func (uc *userUseCase) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if err := uc.requireEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}
	hash, err := uc.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{Name: name, Email: email, PasswordHash: hash}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *userUseCase) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &service.UserNotFoundError{UserID: id}
	}
	return user, nil
}

func (uc *userUseCase) List(ctx context.Context, page, size int) ([]model.User, int64, error) {
	return uc.users.List(ctx, page, size)
}

func (uc *userUseCase) Update(ctx context.Context, id uint, name, email, password string) (*model.User, error) {
	user, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.requireEmailFree(ctx, email, id); err != nil {
		return nil, err
	}
	hash, err := uc.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Email = email
	user.PasswordHash = hash
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *userUseCase) Delete(ctx context.Context, id uint) error {
	if _, err := uc.Get(ctx, id); err != nil {
		return err
	}
	return uc.users.Delete(ctx, id)
}

func (uc *userUseCase) requireEmailFree(ctx context.Context, email string, selfID uint) error {
	other, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return &service.EmailTakenError{Email: email}
	}
	return nil
}
