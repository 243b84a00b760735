package process

import (
	"context"
	"errors"
	"strings"

	processerrors "go-texerp/internal/process/errors"
	"go-texerp/internal/shared/contextutil"
	"go-texerp/internal/shared/normalize"
	tenanterrors "go-texerp/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=process_service.go -destination=mock/process_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tenantID string, req CreateProcessRequest) (ProcessResponse, error)
	GetAll(ctx context.Context, tenantID string) ([]ProcessResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (ProcessResponse, error)
	Update(ctx context.Context, tenantID, id string, req UpdateProcessRequest) (ProcessResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("process.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("process.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, tenantID string, req CreateProcessRequest) (ProcessResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	tenantUID, err := uuid.Parse(tenantID)
	if err != nil {
		return ProcessResponse{}, tenanterrors.ErrInvalidTenantID
	}

	name := strings.TrimSpace(req.Name)
	key := normalize.Value(name)

	taken, err := s.repo.NameKeyExists(ctx, tenantID, key, uuid.Nil)
	if err != nil {
		return ProcessResponse{}, err
	}
	if taken {
		return ProcessResponse{}, processerrors.ErrDuplicateProcessName
	}

	p := &Process{
		ID:       uuid.New(),
		TenantID: tenantUID,
		Name:     name,
		NameKey:  key,
		Rate:     req.Rate,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		l.Error("create process persist failed", zap.Error(err))
		return ProcessResponse{}, err
	}

	l.Info("create process success",
		zap.String("process_id", p.ID.String()),
		zap.String("tenant_id", tenantID),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, tenantID string) ([]ProcessResponse, error) {
	processes, err := s.repo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	resp := make([]ProcessResponse, len(processes))
	for i, p := range processes {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, tenantID, id string) (ProcessResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ProcessResponse{}, processerrors.ErrInvalidProcessID
	}

	p, err := s.repo.FindByID(ctx, tenantID, uid)
	if err != nil {
		return ProcessResponse{}, mapNotFound(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, tenantID, id string, req UpdateProcessRequest) (ProcessResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ProcessResponse{}, processerrors.ErrInvalidProcessID
	}

	p, err := s.repo.FindByID(ctx, tenantID, uid)
	if err != nil {
		return ProcessResponse{}, mapNotFound(err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		key := normalize.Value(name)

		taken, err := s.repo.NameKeyExists(ctx, tenantID, key, uid)
		if err != nil {
			return ProcessResponse{}, err
		}
		if taken {
			return ProcessResponse{}, processerrors.ErrDuplicateProcessName
		}

		p.Name = name
		p.NameKey = key
	}
	if req.Rate != nil {
		p.Rate = *req.Rate
	}

	if err := s.repo.Update(ctx, p); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("update process persist failed",
			zap.String("process_id", id),
			zap.Error(err),
		)
		return ProcessResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, tenantID, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return processerrors.ErrInvalidProcessID
	}

	if _, err := s.repo.FindByID(ctx, tenantID, uid); err != nil {
		return mapNotFound(err)
	}

	if err := s.repo.SoftDelete(ctx, tenantID, uid); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("delete process success",
		zap.String("process_id", id),
		zap.String("tenant_id", tenantID),
	)
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return processerrors.ErrProcessNotFound
	}
	return err
}

func mapToResponse(p Process) ProcessResponse {
	return ProcessResponse{
		ID:   p.ID.String(),
		Name: p.Name,
		Rate: p.Rate,
	}
}
