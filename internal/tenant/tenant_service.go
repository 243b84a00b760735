package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-texerp/internal/concern"
	"go-texerp/internal/shared/normalize"
	tenanterrors "go-texerp/internal/tenant/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// CandidatesCacheKey caches the unfiltered candidate list served to
// administrators; filtered lists are cheap enough to query directly.
const CandidatesCacheKey = "tenants:candidates:all"

//go:generate mockgen -source=tenant_service.go -destination=mock/tenant_service_mock.go -package=mock
type Service interface {
	// ResolveLoginTenants maps a user's concern set to either an
	// auto-selected tenant (exactly one concern) or a candidate list
	// (zero concerns = administrator sees all, several = pick one).
	ResolveLoginTenants(ctx context.Context, concernIDs []string) (*TenantOption, []TenantOption, error)
	// GetOrCreate finds or creates the concern by name, then finds or
	// creates its tenant for the financial year. Idempotent under
	// concurrent identical calls.
	GetOrCreate(ctx context.Context, req CreateTenantRequest) (TenantResponse, error)
	GetByID(ctx context.Context, id string) (TenantResponse, error)
	GetCandidates(ctx context.Context, concernIDs []string) ([]TenantOption, error)
	// InvalidateCandidates drops the cached administrator candidate
	// list. Called after any write that changes what the list shows,
	// including concern renames and deletes.
	InvalidateCandidates(ctx context.Context)
}

type service struct {
	repo     Repository
	concerns concern.Repository
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(repo Repository, concerns concern.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("tenant.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tenant.service")
	}
	return &service{
		repo:     repo,
		concerns: concerns,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) ResolveLoginTenants(ctx context.Context, concernIDs []string) (*TenantOption, []TenantOption, error) {
	if len(concernIDs) == 1 {
		t, err := s.repo.FindFirstActiveByConcern(ctx, concernIDs[0])
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// concern has no tenant yet: nothing to auto-select
				return nil, nil, nil
			}
			return nil, nil, err
		}
		opt := mapToOption(*t)
		return &opt, nil, nil
	}

	candidates, err := s.GetCandidates(ctx, concernIDs)
	if err != nil {
		return nil, nil, err
	}
	return nil, candidates, nil
}

func (s *service) GetCandidates(ctx context.Context, concernIDs []string) ([]TenantOption, error) {
	if len(concernIDs) > 0 {
		tenants, err := s.repo.FindCandidates(ctx, concernIDs)
		if err != nil {
			return nil, err
		}
		return mapToOptions(tenants), nil
	}

	// administrator list: cache behind singleflight
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, CandidatesCacheKey).Result(); err == nil {
			var opts []TenantOption
			if json.Unmarshal([]byte(cached), &opts) == nil {
				return opts, nil
			}
		}
	}

	v, err, _ := s.sf.Do(CandidatesCacheKey, func() (interface{}, error) {
		tenants, err := s.repo.FindCandidates(ctx, nil)
		if err != nil {
			return nil, err
		}

		opts := mapToOptions(tenants)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(opts); err == nil {
				s.rdb.Set(ctx, CandidatesCacheKey, jsonData, time.Hour)
			}
		}

		return opts, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]TenantOption), nil
}

func (s *service) GetOrCreate(ctx context.Context, req CreateTenantRequest) (TenantResponse, error) {
	name := strings.TrimSpace(req.CompanyName)
	year := strings.TrimSpace(req.FinancialYear)

	c, err := s.getOrCreateConcern(ctx, name)
	if err != nil {
		return TenantResponse{}, err
	}

	t, err := s.repo.FindByConcernAndYear(ctx, c.ID.String(), year)
	if err == nil {
		return mapToResponse(*t), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return TenantResponse{}, err
	}

	t = &Tenant{
		ID:            uuid.New(),
		ConcernID:     c.ID,
		FinancialYear: year,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		if !isUniqueViolation(err) {
			s.logger.Error("create tenant persist failed", zap.Error(err))
			return TenantResponse{}, err
		}
		// a concurrent identical call won the insert; use its row
		if t, err = s.repo.FindByConcernAndYear(ctx, c.ID.String(), year); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// winner's row vanished again between insert and re-read
				return TenantResponse{}, tenanterrors.ErrTenantConflict
			}
			return TenantResponse{}, err
		}
		return mapToResponse(*t), nil
	}
	t.Concern = c

	s.InvalidateCandidates(ctx)

	s.logger.Info("create tenant success",
		zap.String("tenant_id", t.ID.String()),
		zap.String("concern_id", c.ID.String()),
		zap.String("financial_year", year),
	)
	return mapToResponse(*t), nil
}

func (s *service) GetByID(ctx context.Context, id string) (TenantResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TenantResponse{}, tenanterrors.ErrInvalidTenantID
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TenantResponse{}, tenanterrors.ErrTenantNotFound
		}
		return TenantResponse{}, err
	}
	return mapToResponse(*t), nil
}

// getOrCreateConcern races on the normalized-name unique index instead
// of trusting the prior read; the loser of a concurrent create adopts
// the winner's row.
func (s *service) getOrCreateConcern(ctx context.Context, name string) (*concern.Concern, error) {
	key := normalize.Value(name)

	c, err := s.concerns.GetByNameKey(ctx, key)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c = &concern.Concern{
		ID:         uuid.New(),
		Name:       name,
		NameKey:    key,
		VendorCode: concern.FallbackVendorCode(),
	}
	if err := s.concerns.Create(ctx, c); err != nil {
		if !isUniqueViolation(err) {
			s.logger.Error("create concern persist failed", zap.Error(err))
			return nil, err
		}
		winner, err := s.concerns.GetByNameKey(ctx, key)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenanterrors.ErrTenantConflict
		}
		return winner, err
	}

	s.logger.Info("create concern via tenant get-or-create",
		zap.String("concern_id", c.ID.String()),
		zap.String("name", name),
	)
	return c, nil
}

func (s *service) InvalidateCandidates(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, CandidatesCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate tenant candidates cache",
			zap.String("key", CandidatesCacheKey),
			zap.Error(err),
		)
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}

func mapToOption(t Tenant) TenantOption {
	opt := TenantOption{
		TenantID:      t.ID.String(),
		FinancialYear: t.FinancialYear,
	}
	if t.Concern != nil {
		opt.CompanyName = t.Concern.Name
	}
	return opt
}

func mapToOptions(tenants []Tenant) []TenantOption {
	opts := make([]TenantOption, len(tenants))
	for i, t := range tenants {
		opts[i] = mapToOption(t)
	}
	return opts
}

func mapToResponse(t Tenant) TenantResponse {
	resp := TenantResponse{
		ID:            t.ID.String(),
		ConcernID:     t.ConcernID.String(),
		FinancialYear: t.FinancialYear,
	}
	if t.Concern != nil {
		resp.CompanyName = t.Concern.Name
	}
	return resp
}
