package process

import (
	"context"

	"go-texerp/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=process_repo.go -destination=mock/process_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, p *Process) error
	FindAll(ctx context.Context, tenantID string) ([]Process, error)
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*Process, error)
	// NameKeyExists reports whether another live process of the tenant
	// already holds the normalized name.
	NameKeyExists(ctx context.Context, tenantID, nameKey string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, p *Process) error
	SoftDelete(ctx context.Context, tenantID string, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Process) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context, tenantID string) ([]Process, error) {
	var processes []Process
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("name ASC").
		Find(&processes).Error
	return processes, err
}

func (r *repository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*Process, error) {
	var p Process
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) NameKeyExists(ctx context.Context, tenantID, nameKey string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Process{}).
		Scopes(tenant.Scope(tenantID)).
		Where("name_key = ?", nameKey).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, p *Process) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) SoftDelete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Process{}, "id = ?", id).Error
}
