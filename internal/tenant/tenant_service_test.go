package tenant_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-texerp/internal/concern"
	"go-texerp/internal/tenant"
	tenanterrors "go-texerp/internal/tenant/errors"

	concernMock "go-texerp/internal/concern/mock"
	tenantMock "go-texerp/internal/tenant/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	svc       tenant.Service
	repo      *tenantMock.MockRepository
	concerns  *concernMock.MockRepository
	redisMock redismock.ClientMock
}

func setupService(t *testing.T) serviceDeps {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := tenantMock.NewMockRepository(ctrl)
	concerns := concernMock.NewMockRepository(ctrl)
	rdb, redisMock := redismock.NewClientMock()

	return serviceDeps{
		svc:       tenant.NewService(repo, concerns, rdb),
		repo:      repo,
		concerns:  concerns,
		redisMock: redisMock,
	}
}

func testConcern(name string) *concern.Concern {
	return &concern.Concern{ID: uuid.New(), Name: name}
}

func testTenant(c *concern.Concern, year string) *tenant.Tenant {
	return &tenant.Tenant{
		ID:            uuid.New(),
		ConcernID:     c.ID,
		FinancialYear: year,
		Concern:       c,
	}
}

func TestTenantService_ResolveLoginTenants(t *testing.T) {
	ctx := context.Background()

	t.Run("single concern auto-selects its tenant", func(t *testing.T) {
		d := setupService(t)
		c := testConcern("Shree Fabrics")
		tn := testTenant(c, "2026-27")

		d.repo.EXPECT().FindFirstActiveByConcern(ctx, c.ID.String()).Return(tn, nil)

		selected, candidates, err := d.svc.ResolveLoginTenants(ctx, []string{c.ID.String()})

		assert.NoError(t, err)
		assert.Nil(t, candidates)
		assert.Equal(t, tn.ID.String(), selected.TenantID)
		assert.Equal(t, "Shree Fabrics", selected.CompanyName)
		assert.Equal(t, "2026-27", selected.FinancialYear)
	})

	t.Run("single concern without a tenant selects nothing", func(t *testing.T) {
		d := setupService(t)
		concernID := uuid.New().String()

		d.repo.EXPECT().FindFirstActiveByConcern(ctx, concernID).Return(nil, gorm.ErrRecordNotFound)

		selected, candidates, err := d.svc.ResolveLoginTenants(ctx, []string{concernID})

		assert.NoError(t, err)
		assert.Nil(t, selected)
		assert.Nil(t, candidates)
	})

	t.Run("several concerns return a candidate list", func(t *testing.T) {
		d := setupService(t)
		c1 := testConcern("Shree Fabrics")
		c2 := testConcern("Meridian Mills")
		ids := []string{c1.ID.String(), c2.ID.String()}

		d.repo.EXPECT().FindCandidates(ctx, ids).Return([]tenant.Tenant{
			*testTenant(c1, "2026-27"),
			*testTenant(c2, "2026-27"),
		}, nil)

		selected, candidates, err := d.svc.ResolveLoginTenants(ctx, ids)

		assert.NoError(t, err)
		assert.Nil(t, selected)
		assert.Len(t, candidates, 2)
		assert.Equal(t, "Meridian Mills", candidates[1].CompanyName)
	})
}

func TestTenantService_GetCandidates(t *testing.T) {
	ctx := context.Background()

	t.Run("admin list is served from cache when warm", func(t *testing.T) {
		d := setupService(t)

		cached := []tenant.TenantOption{
			{TenantID: uuid.New().String(), CompanyName: "Shree Fabrics", FinancialYear: "2026-27"},
		}
		data, _ := json.Marshal(cached)
		d.redisMock.ExpectGet(tenant.CandidatesCacheKey).SetVal(string(data))

		// no repo expectation: a cache hit must not touch the database
		candidates, err := d.svc.GetCandidates(ctx, nil)

		assert.NoError(t, err)
		assert.Equal(t, cached, candidates)
		assert.NoError(t, d.redisMock.ExpectationsWereMet())
	})

	t.Run("admin list populates the cache on a miss", func(t *testing.T) {
		d := setupService(t)
		c := testConcern("Shree Fabrics")
		tn := testTenant(c, "2026-27")

		d.redisMock.ExpectGet(tenant.CandidatesCacheKey).RedisNil()
		d.repo.EXPECT().FindCandidates(ctx, nil).Return([]tenant.Tenant{*tn}, nil)

		expected, _ := json.Marshal([]tenant.TenantOption{{
			TenantID:      tn.ID.String(),
			CompanyName:   "Shree Fabrics",
			FinancialYear: "2026-27",
		}})
		d.redisMock.ExpectSet(tenant.CandidatesCacheKey, expected, time.Hour).SetVal("OK")

		candidates, err := d.svc.GetCandidates(ctx, nil)

		assert.NoError(t, err)
		assert.Len(t, candidates, 1)
		assert.NoError(t, d.redisMock.ExpectationsWereMet())
	})

	t.Run("scoped list bypasses the cache", func(t *testing.T) {
		d := setupService(t)
		c := testConcern("Shree Fabrics")
		ids := []string{c.ID.String()}

		d.repo.EXPECT().FindCandidates(ctx, ids).Return([]tenant.Tenant{*testTenant(c, "2026-27")}, nil)

		candidates, err := d.svc.GetCandidates(ctx, ids)

		assert.NoError(t, err)
		assert.Len(t, candidates, 1)
		assert.NoError(t, d.redisMock.ExpectationsWereMet())
	})
}

func TestTenantService_GetOrCreate(t *testing.T) {
	ctx := context.Background()

	req := tenant.CreateTenantRequest{CompanyName: "  Shree   Fabrics ", FinancialYear: " 2026-27 "}

	t.Run("existing concern and year reuse the tenant", func(t *testing.T) {
		d := setupService(t)
		c := testConcern("Shree Fabrics")
		tn := testTenant(c, "2026-27")

		d.concerns.EXPECT().GetByNameKey(ctx, "shree fabrics").Return(c, nil)
		d.repo.EXPECT().FindByConcernAndYear(ctx, c.ID.String(), "2026-27").Return(tn, nil)

		resp, err := d.svc.GetOrCreate(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, tn.ID.String(), resp.ID)
	})

	t.Run("new concern and tenant are created and the cache invalidated", func(t *testing.T) {
		d := setupService(t)

		d.concerns.EXPECT().GetByNameKey(ctx, "shree fabrics").Return(nil, gorm.ErrRecordNotFound)

		var createdConcern *concern.Concern
		d.concerns.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, c *concern.Concern) error {
				createdConcern = c
				return nil
			})

		d.repo.EXPECT().FindByConcernAndYear(ctx, gomock.Any(), "2026-27").Return(nil, gorm.ErrRecordNotFound)
		d.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.redisMock.ExpectDel(tenant.CandidatesCacheKey).SetVal(1)

		resp, err := d.svc.GetOrCreate(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "Shree   Fabrics", createdConcern.Name)
		assert.Equal(t, "shree fabrics", createdConcern.NameKey)
		assert.Contains(t, createdConcern.VendorCode, "VND-")
		assert.Equal(t, "2026-27", resp.FinancialYear)
		assert.NoError(t, d.redisMock.ExpectationsWereMet())
	})

	t.Run("losing the insert race adopts the winner's row", func(t *testing.T) {
		d := setupService(t)
		c := testConcern("Shree Fabrics")
		winner := testTenant(c, "2026-27")

		d.concerns.EXPECT().GetByNameKey(ctx, "shree fabrics").Return(c, nil)
		d.repo.EXPECT().FindByConcernAndYear(ctx, c.ID.String(), "2026-27").Return(nil, gorm.ErrRecordNotFound)
		d.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505"})
		d.repo.EXPECT().FindByConcernAndYear(ctx, c.ID.String(), "2026-27").Return(winner, nil)

		resp, err := d.svc.GetOrCreate(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, winner.ID.String(), resp.ID)
	})

	t.Run("re-read missing after a lost race surfaces a typed conflict", func(t *testing.T) {
		d := setupService(t)
		c := testConcern("Shree Fabrics")

		d.concerns.EXPECT().GetByNameKey(ctx, "shree fabrics").Return(c, nil)
		d.repo.EXPECT().FindByConcernAndYear(ctx, c.ID.String(), "2026-27").Return(nil, gorm.ErrRecordNotFound)
		d.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_tenant_concern_year"})
		d.repo.EXPECT().FindByConcernAndYear(ctx, c.ID.String(), "2026-27").Return(nil, gorm.ErrRecordNotFound)

		_, err := d.svc.GetOrCreate(ctx, req)

		assert.ErrorIs(t, err, tenanterrors.ErrTenantConflict)
		assert.NotErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("concern re-read missing after a lost race surfaces a typed conflict", func(t *testing.T) {
		d := setupService(t)

		d.concerns.EXPECT().GetByNameKey(ctx, "shree fabrics").Return(nil, gorm.ErrRecordNotFound)
		d.concerns.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_concern_name_key"})
		d.concerns.EXPECT().GetByNameKey(ctx, "shree fabrics").Return(nil, gorm.ErrRecordNotFound)

		_, err := d.svc.GetOrCreate(ctx, req)

		assert.ErrorIs(t, err, tenanterrors.ErrTenantConflict)
	})
}

func TestTenantService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id", func(t *testing.T) {
		d := setupService(t)

		_, err := d.svc.GetByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, tenanterrors.ErrInvalidTenantID)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		d := setupService(t)
		id := uuid.New().String()

		d.repo.EXPECT().GetByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := d.svc.GetByID(ctx, id)

		assert.ErrorIs(t, err, tenanterrors.ErrTenantNotFound)
	})
}
