package concern

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=concern_repo.go -destination=mock/concern_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, c *Concern) error
	GetByID(ctx context.Context, id uuid.UUID) (*Concern, error)
	GetByNameKey(ctx context.Context, nameKey string) (*Concern, error)
	FindAll(ctx context.Context) ([]Concern, error)
	Update(ctx context.Context, c *Concern) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, c *Concern) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Concern, error) {
	var c Concern
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) GetByNameKey(ctx context.Context, nameKey string) (*Concern, error) {
	var c Concern
	err := r.db.WithContext(ctx).Where("name_key = ?", nameKey).First(&c).Error
	return &c, err
}

func (r *repository) FindAll(ctx context.Context) ([]Concern, error) {
	var concerns []Concern
	err := r.db.WithContext(ctx).Order("name ASC").Find(&concerns).Error
	return concerns, err
}

func (r *repository) Update(ctx context.Context, c *Concern) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Concern{}, "id = ?", id).Error
}
