package tenant

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=tenant_repo.go -destination=mock/tenant_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
	// FindFirstActiveByConcern returns the oldest live tenant of a live
	// concern, for login auto-selection.
	FindFirstActiveByConcern(ctx context.Context, concernID string) (*Tenant, error)
	FindByConcernAndYear(ctx context.Context, concernID, financialYear string) (*Tenant, error)
	// FindCandidates lists live tenants of live concerns; an empty
	// concern id set means no filter.
	FindCandidates(ctx context.Context, concernIDs []string) ([]Tenant, error)
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

func (r *repository) Create(ctx context.Context, t *Tenant) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).
		Preload("Concern").
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindFirstActiveByConcern(ctx context.Context, concernID string) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).
		Joins("JOIN concerns ON concerns.id = tenants.concern_id AND concerns.deleted_at IS NULL").
		Where("tenants.concern_id = ?", concernID).
		Order("tenants.created_at ASC").
		Preload("Concern").
		First(&t).Error
	return &t, err
}

func (r *repository) FindByConcernAndYear(ctx context.Context, concernID, financialYear string) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).
		Where("concern_id = ?", concernID).
		Where("financial_year = ?", financialYear).
		Preload("Concern").
		First(&t).Error
	return &t, err
}

func (r *repository) FindCandidates(ctx context.Context, concernIDs []string) ([]Tenant, error) {
	db := r.db.WithContext(ctx).
		Joins("JOIN concerns ON concerns.id = tenants.concern_id AND concerns.deleted_at IS NULL").
		Order("concerns.name ASC, tenants.financial_year DESC").
		Preload("Concern")

	if len(concernIDs) > 0 {
		db = db.Where("tenants.concern_id IN ?", concernIDs)
	}

	var tenants []Tenant
	err := db.Find(&tenants).Error
	return tenants, err
}
