package repository

import (
	"context"
	"errors"

	"github.com/mathews-augusto-alves/library-api/internal/model"

	"gorm.io/gorm"
)

// UserRepository defines the data access contract for staff users.
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, u *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, page, size int) ([]model.User, int64, error)
	UpdateTx(tx *gorm.DB, u *model.User) error
	DeleteTx(tx *gorm.DB, id uint) error
	DB() *gorm.DB
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, u *model.User) error {
	return tx.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *userRepo) List(ctx context.Context, page, size int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	q := r.db.WithContext(ctx).Model(&model.User{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size
	err := q.Order("name ASC").Limit(size).Offset(offset).Find(&users).Error
	return users, total, err
}

func (r *userRepo) UpdateTx(tx *gorm.DB, u *model.User) error {
	return tx.Save(u).Error
}

func (r *userRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.User{}, id).Error
}

func (r *userRepo) DB() *gorm.DB { return r.db }
