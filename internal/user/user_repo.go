package user

import (
	"context"

	"go-texerp/internal/auth"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindAll(ctx context.Context, page, limit int, search string) ([]auth.User, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*auth.User, error)
	// UsernameKeyExists reports whether another live user already holds
	// the normalized username.
	UsernameKeyExists(ctx context.Context, usernameKey string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, u *auth.User) error
	ReplaceConcerns(ctx context.Context, userID uuid.UUID, concerns []auth.UserConcern) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
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

func (r *repository) FindAll(ctx context.Context, page, limit int, search string) ([]auth.User, int64, error) {
	db := r.db.WithContext(ctx).Model(&auth.User{})

	if search != "" {
		db = db.Where("username ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []auth.User
	err := db.
		Preload("Concerns").
		Order("username ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error

	return users, total, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	var u auth.User
	err := r.db.WithContext(ctx).
		Preload("Concerns").
		First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) UsernameKeyExists(ctx context.Context, usernameKey string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&auth.User{}).
		Where("username_key = ?", usernameKey).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, u *auth.User) error {
	return r.db.WithContext(ctx).Omit("Concerns").Save(u).Error
}

func (r *repository) ReplaceConcerns(ctx context.Context, userID uuid.UUID, concerns []auth.UserConcern) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&auth.UserConcern{}).Error; err != nil {
		return err
	}

	if len(concerns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&concerns).Error
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&auth.User{}, "id = ?", id).Error
}
