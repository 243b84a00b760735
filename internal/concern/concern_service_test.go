package concern_test

import (
	"context"
	"testing"

	"go-texerp/internal/concern"
	concernerrors "go-texerp/internal/concern/errors"
	concernMock "go-texerp/internal/concern/mock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// cacheSpy counts candidate-cache invalidations.
type cacheSpy struct {
	invalidations int
}

func (s *cacheSpy) InvalidateCandidates(context.Context) {
	s.invalidations++
}

func setupService(t *testing.T) (concern.Service, *concernMock.MockRepository, *cacheSpy) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := concernMock.NewMockRepository(ctrl)
	cache := &cacheSpy{}
	return concern.NewService(repo, cache), repo, cache
}

func TestConcernService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the trimmed name with its normalized key", func(t *testing.T) {
		svc, repo, cache := setupService(t)

		var created *concern.Concern
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, c *concern.Concern) error {
				created = c
				return nil
			})

		resp, err := svc.Create(ctx, concern.CreateConcernRequest{
			Name:       "  Meridian   Mills ",
			VendorCode: "MM-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Meridian   Mills", created.Name)
		assert.Equal(t, "meridian mills", created.NameKey)
		assert.Equal(t, "MM-01", resp.VendorCode)
		assert.Zero(t, cache.invalidations)
	})

	t.Run("generates a vendor code when none is given", func(t *testing.T) {
		svc, repo, _ := setupService(t)

		repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := svc.Create(ctx, concern.CreateConcernRequest{Name: "Meridian Mills"})

		assert.NoError(t, err)
		assert.Contains(t, resp.VendorCode, "VND-")
	})

	t.Run("duplicate normalized name", func(t *testing.T) {
		svc, repo, _ := setupService(t)

		repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505"})

		_, err := svc.Create(ctx, concern.CreateConcernRequest{Name: "MERIDIAN  MILLS"})

		assert.ErrorIs(t, err, concernerrors.ErrDuplicateConcernName)
	})
}

func TestConcernService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("renaming refreshes the normalized key", func(t *testing.T) {
		svc, repo, cache := setupService(t)
		id := uuid.New()

		repo.EXPECT().GetByID(ctx, id).Return(&concern.Concern{
			ID: id, Name: "Meridian Mills", NameKey: "meridian mills",
		}, nil)

		var updated *concern.Concern
		repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, c *concern.Concern) error {
				updated = c
				return nil
			})

		_, err := svc.Update(ctx, id.String(), concern.UpdateConcernRequest{Name: "Meridian Textiles"})

		assert.NoError(t, err)
		assert.Equal(t, "meridian textiles", updated.NameKey)
		assert.Equal(t, 1, cache.invalidations)
	})

	t.Run("unknown concern", func(t *testing.T) {
		svc, repo, cache := setupService(t)
		id := uuid.New()

		repo.EXPECT().GetByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Update(ctx, id.String(), concern.UpdateConcernRequest{Name: "x"})

		assert.ErrorIs(t, err, concernerrors.ErrConcernNotFound)
		assert.Zero(t, cache.invalidations)
	})
}

func TestConcernService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo, cache := setupService(t)
		id := uuid.New()

		repo.EXPECT().GetByID(ctx, id).Return(&concern.Concern{ID: id}, nil)
		repo.EXPECT().Delete(ctx, id).Return(nil)

		assert.NoError(t, svc.Delete(ctx, id.String()))
		assert.Equal(t, 1, cache.invalidations)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc, _, _ := setupService(t)

		err := svc.Delete(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, concernerrors.ErrInvalidConcernID)
	})
}
