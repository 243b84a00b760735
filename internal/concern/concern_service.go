package concern

import (
	"context"
	"errors"
	"strings"

	concernerrors "go-texerp/internal/concern/errors"
	"go-texerp/internal/shared/normalize"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=concern_service.go -destination=mock/concern_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateConcernRequest) (ConcernResponse, error)
	GetAll(ctx context.Context) ([]ConcernResponse, error)
	GetByID(ctx context.Context, id string) (ConcernResponse, error)
	Update(ctx context.Context, id string, req UpdateConcernRequest) (ConcernResponse, error)
	Delete(ctx context.Context, id string) error
}

// CacheInvalidator drops cached views that embed concern names. The
// tenant candidate list is one; declaring the dependency here keeps the
// import pointing from tenant to concern only.
type CacheInvalidator interface {
	InvalidateCandidates(ctx context.Context)
}

type service struct {
	repo   Repository
	cache  CacheInvalidator
	logger *zap.Logger
}

func NewService(repo Repository, cache CacheInvalidator, logger ...*zap.Logger) Service {
	l := zap.L().Named("concern.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("concern.service")
	}
	return &service{repo: repo, cache: cache, logger: l}
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateCandidates(ctx)
	}
}

func (s *service) Create(ctx context.Context, req CreateConcernRequest) (ConcernResponse, error) {
	name := strings.TrimSpace(req.Name)
	key := normalize.Value(name)

	c := &Concern{
		ID:         uuid.New(),
		Name:       name,
		NameKey:    key,
		VendorCode: strings.TrimSpace(req.VendorCode),
	}
	if c.VendorCode == "" {
		c.VendorCode = FallbackVendorCode()
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("create concern persist failed", zap.Error(err))
		return ConcernResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create concern success", zap.String("concern_id", c.ID.String()))
	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context) ([]ConcernResponse, error) {
	concerns, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]ConcernResponse, len(concerns))
	for i, c := range concerns {
		resp[i] = mapToResponse(c)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ConcernResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ConcernResponse{}, concernerrors.ErrInvalidConcernID
	}

	c, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return ConcernResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateConcernRequest) (ConcernResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ConcernResponse{}, concernerrors.ErrInvalidConcernID
	}

	c, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return ConcernResponse{}, mapRepositoryError(err)
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		c.Name = name
		c.NameKey = normalize.Value(name)
	}
	if code := strings.TrimSpace(req.VendorCode); code != "" {
		c.VendorCode = code
	}

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("update concern persist failed",
			zap.String("concern_id", id),
			zap.Error(err),
		)
		return ConcernResponse{}, mapRepositoryError(err)
	}

	// a rename changes the company name shown on cached candidate lists
	s.invalidateCache(ctx)

	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return concernerrors.ErrInvalidConcernID
	}

	if _, err := s.repo.GetByID(ctx, uid); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, uid); err != nil {
		return mapRepositoryError(err)
	}

	s.invalidateCache(ctx)

	s.logger.Info("delete concern success", zap.String("concern_id", id))
	return nil
}

// FallbackVendorCode generates a code for concerns registered without
// one, e.g. by tenant get-or-create.
func FallbackVendorCode() string {
	return "VND-" + strings.ToUpper(uuid.NewString()[:8])
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return concernerrors.ErrConcernNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return concernerrors.ErrDuplicateConcernName
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return concernerrors.ErrDuplicateConcernName
	}

	return err
}

func mapToResponse(c Concern) ConcernResponse {
	return ConcernResponse{
		ID:         c.ID.String(),
		Name:       c.Name,
		VendorCode: c.VendorCode,
	}
}
