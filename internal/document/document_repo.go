package document

import (
	"context"

	"go-texerp/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateHeader(ctx context.Context, h *Header) error
	CreateLines(ctx context.Context, lines []Line) error
	CreateProcessLines(ctx context.Context, lines []ProcessLine) error

	FindAll(ctx context.Context, tenantID, series, search string, page, limit int) ([]Header, int64, error)
	// FindByID returns the live header with its live lines only.
	FindByID(ctx context.Context, tenantID, series string, id uuid.UUID) (*Header, error)
	// FindByIDWithHistory also loads soft-deleted lines of prior
	// revisions, ordered oldest revision first.
	FindByIDWithHistory(ctx context.Context, tenantID, series string, id uuid.UUID) (*Header, error)

	UpdateHeader(ctx context.Context, h *Header) error
	SoftDeleteLines(ctx context.Context, headerID uuid.UUID) error
	SoftDeleteProcessLines(ctx context.Context, headerID uuid.UUID) error
	SoftDeleteHeader(ctx context.Context, tenantID, series string, id uuid.UUID, deletedBy string) error

	// DesignKeyExists checks the normalized design number against other
	// live headers of the same tenant and series.
	DesignKeyExists(ctx context.Context, tenantID, series, designKey string, excludeID uuid.UUID) (bool, error)
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

func (r *repository) CreateHeader(ctx context.Context, h *Header) error {
	return r.db.WithContext(ctx).Omit("Lines", "Processes").Create(h).Error
}

func (r *repository) CreateLines(ctx context.Context, lines []Line) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *repository) CreateProcessLines(ctx context.Context, lines []ProcessLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *repository) FindAll(ctx context.Context, tenantID, series, search string, page, limit int) ([]Header, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&Header{}).
		Scopes(tenant.Scope(tenantID)).
		Where("series = ?", series)

	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where(
			"doc_number ILIKE ? OR party_name ILIKE ? OR design_no ILIKE ? OR design_name ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var headers []Header
	err := db.
		Order("sort_order DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&headers).Error

	return headers, total, err
}

func (r *repository) FindByID(ctx context.Context, tenantID, series string, id uuid.UUID) (*Header, error) {
	var h Header
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("series = ?", series).
		Preload("Lines").
		Preload("Processes").
		First(&h, "id = ?", id).Error
	return &h, err
}

func (r *repository) FindByIDWithHistory(ctx context.Context, tenantID, series string, id uuid.UUID) (*Header, error) {
	var h Header
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("series = ?", series).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped().Order("revision ASC, created_at ASC")
		}).
		Preload("Processes", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped().Order("revision ASC, created_at ASC")
		}).
		First(&h, "id = ?", id).Error
	return &h, err
}

func (r *repository) UpdateHeader(ctx context.Context, h *Header) error {
	return r.db.WithContext(ctx).Omit("Lines", "Processes").Save(h).Error
}

func (r *repository) SoftDeleteLines(ctx context.Context, headerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("header_id = ?", headerID).
		Delete(&Line{}).Error
}

func (r *repository) SoftDeleteProcessLines(ctx context.Context, headerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("header_id = ?", headerID).
		Delete(&ProcessLine{}).Error
}

func (r *repository) SoftDeleteHeader(ctx context.Context, tenantID, series string, id uuid.UUID, deletedBy string) error {
	res := r.db.WithContext(ctx).
		Model(&Header{}).
		Scopes(tenant.Scope(tenantID)).
		Where("series = ?", series).
		Where("id = ?", id).
		Update("deleted_by", deletedBy)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("series = ?", series).
		Delete(&Header{}, "id = ?", id).Error
}

func (r *repository) DesignKeyExists(ctx context.Context, tenantID, series, designKey string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Header{}).
		Scopes(tenant.Scope(tenantID)).
		Where("series = ?", series).
		Where("design_key = ?", designKey).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count > 0, err
}
