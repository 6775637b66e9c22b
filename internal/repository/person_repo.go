package repository

import (
	"context"
	"errors"

	"github.com/mathews-augusto-alves/library-api/internal/model"

	"gorm.io/gorm"
)

// PersonRepository defines the data access contract for library members.
type PersonRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Person) error
	FindByID(ctx context.Context, id uint) (*model.Person, error)
	FindByEmail(ctx context.Context, email string) (*model.Person, error)
	List(ctx context.Context, page, size int) ([]model.Person, int64, error)
	UpdateTx(tx *gorm.DB, p *model.Person) error
	DeleteTx(tx *gorm.DB, id uint) error
	DB() *gorm.DB
}

type personRepo struct{ db *gorm.DB }

func NewPersonRepository(db *gorm.DB) PersonRepository { return &personRepo{db: db} }

func (r *personRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Person) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *personRepo) FindByID(ctx context.Context, id uint) (*model.Person, error) {
	var p model.Person
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *personRepo) FindByEmail(ctx context.Context, email string) (*model.Person, error) {
	var p model.Person
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *personRepo) List(ctx context.Context, page, size int) ([]model.Person, int64, error) {
	var people []model.Person
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Person{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size
	err := q.Order("name ASC").Limit(size).Offset(offset).Find(&people).Error
	return people, total, err
}

func (r *personRepo) UpdateTx(tx *gorm.DB, p *model.Person) error {
	return tx.Save(p).Error
}

func (r *personRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Person{}, id).Error
}

func (r *personRepo) DB() *gorm.DB { return r.db }
