package user

import (
	"context"
	"errors"
	"strings"

	"go-texerp/internal/auth"
	"go-texerp/internal/shared/contextutil"
	"go-texerp/internal/shared/normalize"
	usererrors "go-texerp/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, page, limit int, search string) ([]UserResponse, int64, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	// Update edits account flags, concern assignments and the username.
	// Changes take effect on the user's next login; issued tokens keep
	// their embedded permissions until they expire.
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	ResetPassword(ctx context.Context, id string, newPassword string) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context, page, limit int, search string) ([]UserResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := s.repo.FindAll(ctx, page, limit, strings.TrimSpace(search))
	if err != nil {
		return nil, 0, err
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = mapToResponse(&users[i])
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return UserResponse{}, mapNotFound(err)
	}
	return mapToResponse(u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return UserResponse{}, mapNotFound(err)
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		key := normalize.Key(username)

		taken, err := s.repo.UsernameKeyExists(ctx, key, uid)
		if err != nil {
			return UserResponse{}, err
		}
		if taken {
			return UserResponse{}, usererrors.ErrUsernameTaken
		}

		u.Username = username
		u.UsernameKey = key
	}

	applyFlag(&u.IsAdmin, req.IsAdmin)
	applyFlag(&u.CanAdd, req.CanAdd)
	applyFlag(&u.CanEdit, req.CanEdit)
	applyFlag(&u.CanDelete, req.CanDelete)
	applyFlag(&u.DCClose, req.DCClose)
	applyFlag(&u.IsActive, req.IsActive)

	var concerns []auth.UserConcern
	if req.ConcernIDs != nil {
		for _, cid := range *req.ConcernIDs {
			concernID, err := uuid.Parse(cid)
			if err != nil {
				return UserResponse{}, usererrors.ErrInvalidConcernID
			}
			concerns = append(concerns, auth.UserConcern{UserID: uid, ConcernID: concernID})
		}
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return UserResponse{}, tx.Error
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)
	if err := txRepo.Update(ctx, u); err != nil {
		l.Error("update user persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}
	if req.ConcernIDs != nil {
		if err := txRepo.ReplaceConcerns(ctx, uid, concerns); err != nil {
			l.Error("replace user concerns failed", zap.String("user_id", id), zap.Error(err))
			return UserResponse{}, err
		}
		u.Concerns = concerns
	}

	if err := tx.Commit().Error; err != nil {
		return UserResponse{}, err
	}

	l.Info("update user success", zap.String("user_id", id))
	return mapToResponse(u), nil
}

func (s *service) ResetPassword(ctx context.Context, id string, newPassword string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return mapNotFound(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.Password = string(hashed)
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("reset password success", zap.String("user_id", id))
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	if _, err := s.repo.FindByID(ctx, uid); err != nil {
		return mapNotFound(err)
	}

	if err := s.repo.SoftDelete(ctx, uid); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("delete user success", zap.String("user_id", id))
	return nil
}

func applyFlag(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}
	return err
}

func mapToResponse(u *auth.User) UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		Username:   u.Username,
		IsAdmin:    u.IsAdmin,
		CanAdd:     u.CanAdd,
		CanEdit:    u.CanEdit,
		CanDelete:  u.CanDelete,
		DCClose:    u.DCClose,
		IsActive:   u.IsActive,
		ConcernIDs: u.ConcernIDs(),
		CreatedAt:  u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
