package user_test

import (
	"context"
	"testing"

	"go-texerp/internal/auth"
	"go-texerp/internal/user"
	usererrors "go-texerp/internal/user/errors"
	userMock "go-texerp/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	service user.Service
	repo    *userMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := userMock.NewMockRepository(ctrl)
	return &serviceDeps{
		sqlMock: sqlMock,
		service: user.NewService(gdb, repo),
		repo:    repo,
	}
}

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func idsPtr(v []string) *[]string { return &v }

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("flags and concerns applied in one transaction", func(t *testing.T) {
		deps := setupServiceTest(t)
		userID := uuid.New()
		concernID := uuid.New()
		stored := &auth.User{ID: userID, Username: "john", UsernameKey: "john", CanAdd: false}

		deps.repo.EXPECT().FindByID(ctx, userID).Return(stored, nil)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *auth.User) error {
				assert.True(t, u.CanAdd)
				assert.True(t, u.CanEdit)
				return nil
			})
		deps.repo.EXPECT().
			ReplaceConcerns(ctx, userID, gomock.Any()).
			DoAndReturn(func(ctx context.Context, id uuid.UUID, concerns []auth.UserConcern) error {
				assert.Len(t, concerns, 1)
				assert.Equal(t, concernID, concerns[0].ConcernID)
				return nil
			})

		resp, err := deps.service.Update(ctx, userID.String(), user.UpdateUserRequest{
			CanAdd:     boolPtr(true),
			CanEdit:    boolPtr(true),
			ConcernIDs: idsPtr([]string{concernID.String()}),
		})

		assert.NoError(t, err)
		assert.True(t, resp.CanAdd)
		assert.Equal(t, []string{concernID.String()}, resp.ConcernIDs)
	})

	t.Run("rename collides with another user's normalized name", func(t *testing.T) {
		deps := setupServiceTest(t)
		userID := uuid.New()
		stored := &auth.User{ID: userID, Username: "jane", UsernameKey: "jane"}

		deps.repo.EXPECT().FindByID(ctx, userID).Return(stored, nil)
		deps.repo.EXPECT().
			UsernameKeyExists(ctx, "johndoe", userID).
			Return(true, nil)

		_, err := deps.service.Update(ctx, userID.String(), user.UpdateUserRequest{
			Username: strPtr(" John_Doe "),
		})

		assert.Equal(t, usererrors.ErrUsernameTaken, err)
	})

	t.Run("rename to own spelling variant is allowed", func(t *testing.T) {
		deps := setupServiceTest(t)
		userID := uuid.New()
		stored := &auth.User{ID: userID, Username: "john_doe", UsernameKey: "johndoe"}

		deps.repo.EXPECT().FindByID(ctx, userID).Return(stored, nil)
		deps.repo.EXPECT().
			UsernameKeyExists(ctx, "johndoe", userID).
			Return(false, nil)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Update(ctx, userID.String(), user.UpdateUserRequest{
			Username: strPtr("John Doe"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "John Doe", resp.Username)
	})

	t.Run("persist failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		userID := uuid.New()
		stored := &auth.User{ID: userID, Username: "john", UsernameKey: "john"}

		deps.repo.EXPECT().FindByID(ctx, userID).Return(stored, nil)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(assert.AnError)

		_, err := deps.service.Update(ctx, userID.String(), user.UpdateUserRequest{
			CanDelete: boolPtr(true),
		})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown user", func(t *testing.T) {
		deps := setupServiceTest(t)
		userID := uuid.New()

		deps.repo.EXPECT().FindByID(ctx, userID).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, userID.String(), user.UpdateUserRequest{})
		assert.Equal(t, usererrors.ErrUserNotFound, err)
	})
}

func TestUserService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps page and limit", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			FindAll(ctx, 1, 20, "").
			Return([]auth.User{{ID: uuid.New(), Username: "john"}}, int64(1), nil)

		users, total, err := deps.service.GetAll(ctx, 0, 5000, "  ")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, users, 1)
	})
}

func TestUserService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a fresh hash", func(t *testing.T) {
		deps := setupServiceTest(t)
		userID := uuid.New()
		stored := &auth.User{ID: userID, Username: "john", Password: "old-hash"}

		deps.repo.EXPECT().FindByID(ctx, userID).Return(stored, nil)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *auth.User) error {
				assert.NotEqual(t, "old-hash", u.Password)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("new-password")))
				return nil
			})

		assert.NoError(t, deps.service.ResetPassword(ctx, userID.String(), "new-password"))
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		userID := uuid.New()

		deps.repo.EXPECT().FindByID(ctx, userID).Return(&auth.User{ID: userID}, nil)
		deps.repo.EXPECT().SoftDelete(ctx, userID).Return(nil)

		assert.NoError(t, deps.service.Delete(ctx, userID.String()))
	})

	t.Run("unknown user", func(t *testing.T) {
		deps := setupServiceTest(t)
		userID := uuid.New()

		deps.repo.EXPECT().FindByID(ctx, userID).Return(nil, gorm.ErrRecordNotFound)

		assert.Equal(t, usererrors.ErrUserNotFound, deps.service.Delete(ctx, userID.String()))
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		assert.Equal(t, usererrors.ErrInvalidUserID, deps.service.Delete(ctx, "not-a-uuid"))
	})
}
