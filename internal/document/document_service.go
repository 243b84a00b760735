package document

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	documenterrors "go-texerp/internal/document/errors"
	"go-texerp/internal/events"
	"go-texerp/internal/messaging/kafka"
	"go-texerp/internal/shared/contextutil"
	"go-texerp/internal/shared/counter"
	"go-texerp/internal/shared/normalize"
	tenanterrors "go-texerp/internal/tenant/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const docDateLayout = "2006-01-02"

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	// NextNumber previews the number Create would assign, without
	// claiming it.
	NextNumber(ctx context.Context, tenantID, series string) (NextNumberResponse, error)
	Create(ctx context.Context, tenantID string, actor Actor, series string, req SaveDocumentRequest) (DocumentResponse, error)
	// Update replaces the whole aggregate: prior lines are soft-deleted
	// and the new set inserted under the next revision, atomically.
	Update(ctx context.Context, tenantID string, actor Actor, series string, id string, req SaveDocumentRequest) (DocumentResponse, error)
	Delete(ctx context.Context, tenantID string, actor Actor, series string, id string) error
	GetAll(ctx context.Context, tenantID, series, search string, page, limit int) ([]DocumentResponse, int64, error)
	GetByID(ctx context.Context, tenantID, series, id string) (DocumentResponse, error)
	// GetHistory includes replaced line revisions that default reads
	// exclude.
	GetHistory(ctx context.Context, tenantID, series, id string) (DocumentResponse, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	counters counter.Repository
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	counters counter.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{db: db, repo: repo, counters: counters, outbox: outbox, logger: l}
}

func (s *service) NextNumber(ctx context.Context, tenantID, series string) (NextNumberResponse, error) {
	n, err := s.counters.Peek(ctx, tenantID, series)
	if err != nil {
		return NextNumberResponse{}, err
	}
	return NextNumberResponse{NextNumber: counter.Format(n)}, nil
}

func (s *service) Create(ctx context.Context, tenantID string, actor Actor, series string, req SaveDocumentRequest) (DocumentResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	tenantUID, err := uuid.Parse(tenantID)
	if err != nil {
		return DocumentResponse{}, tenanterrors.ErrInvalidTenantID
	}

	docDate, err := time.Parse(docDateLayout, req.DocDate)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrInvalidDocDate
	}

	designNo := strings.TrimSpace(req.DesignNo)
	designKey := normalize.Key(designNo)
	if designKey != "" {
		taken, err := s.repo.DesignKeyExists(ctx, tenantID, series, designKey, uuid.Nil)
		if err != nil {
			return DocumentResponse{}, err
		}
		if taken {
			return DocumentResponse{}, documenterrors.ErrDuplicateDesign
		}
	}

	manual, manualValue, err := manualNumber(actor, req.DocNumber)
	if err != nil {
		return DocumentResponse{}, err
	}

	totalQty, totalRolls, totalAmount := computeTotals(req.Lines, req.Processes)

	build := func(sortOrder int64) *Header {
		return &Header{
			ID:          uuid.New(),
			TenantID:    tenantUID,
			Series:      series,
			DocNumber:   counter.Format(sortOrder),
			SortOrder:   sortOrder,
			DocDate:     docDate,
			PartyName:   strings.TrimSpace(req.PartyName),
			DesignNo:    designNo,
			DesignKey:   designKey,
			DesignName:  strings.TrimSpace(req.DesignName),
			Remarks:     req.Remarks,
			TotalQty:    totalQty,
			TotalRolls:  totalRolls,
			TotalAmount: totalAmount,
			Revision:    1,
			CreatedBy:   actor.Username,
		}
	}

	h, err := s.createOnce(ctx, tenantID, series, manual, manualValue, build, req)
	if err != nil && isUniqueViolation(err) {
		if manual {
			return DocumentResponse{}, documenterrors.ErrDuplicateDocNumber
		}
		// lost the allocation race; one transparent retry
		l.Warn("document number collision, retrying once",
			zap.String("tenant_id", tenantID),
			zap.String("series", series),
		)
		h, err = s.createOnce(ctx, tenantID, series, false, 0, build, req)
		if err != nil && isUniqueViolation(err) {
			return DocumentResponse{}, documenterrors.ErrSequenceConflict
		}
	}
	if err != nil {
		l.Error("create document failed",
			zap.String("tenant_id", tenantID),
			zap.String("series", series),
			zap.Error(err),
		)
		return DocumentResponse{}, err
	}

	l.Info("create document success",
		zap.String("document_id", h.ID.String()),
		zap.String("series", series),
		zap.String("doc_number", h.DocNumber),
	)
	return mapToResponse(h, true, false), nil
}

// createOnce runs one allocate-and-insert attempt in its own
// transaction, including the outbox row.
func (s *service) createOnce(
	ctx context.Context,
	tenantID, series string,
	manual bool,
	manualValue int64,
	build func(sortOrder int64) *Header,
	req SaveDocumentRequest,
) (*Header, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)
	txCounters := s.counters.WithTx(tx)

	var sortOrder int64
	if manual {
		sortOrder = manualValue
	} else {
		n, err := txCounters.Next(ctx, tenantID, series)
		if err != nil {
			return nil, err
		}
		sortOrder = n
	}

	h := build(sortOrder)
	if err := txRepo.CreateHeader(ctx, h); err != nil {
		return nil, err
	}

	lines, processes := buildLines(h, h.Revision, req)
	if err := txRepo.CreateLines(ctx, lines); err != nil {
		return nil, err
	}
	if err := txRepo.CreateProcessLines(ctx, processes); err != nil {
		return nil, err
	}
	h.Lines = lines
	h.Processes = processes

	if manual {
		// keep future automatic numbers above the assigned one
		if err := txCounters.Raise(ctx, tenantID, series, sortOrder); err != nil {
			return nil, err
		}
	}

	if err := s.writeCreatedEvent(ctx, tx, h); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) Update(ctx context.Context, tenantID string, actor Actor, series string, id string, req SaveDocumentRequest) (DocumentResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	uid, err := uuid.Parse(id)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrInvalidDocumentID
	}

	h, err := s.repo.FindByID(ctx, tenantID, series, uid)
	if err != nil {
		return DocumentResponse{}, mapNotFound(err)
	}

	docDate, err := time.Parse(docDateLayout, req.DocDate)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrInvalidDocDate
	}

	designNo := strings.TrimSpace(req.DesignNo)
	designKey := normalize.Key(designNo)
	if designKey != "" && designKey != h.DesignKey {
		taken, err := s.repo.DesignKeyExists(ctx, tenantID, series, designKey, uid)
		if err != nil {
			return DocumentResponse{}, err
		}
		if taken {
			return DocumentResponse{}, documenterrors.ErrDuplicateDesign
		}
	}

	manual := false
	var manualValue int64
	if req.DocNumber != "" && req.DocNumber != h.DocNumber {
		manual, manualValue, err = manualNumber(actor, req.DocNumber)
		if err != nil {
			return DocumentResponse{}, err
		}
	}

	h.DocDate = docDate
	h.PartyName = strings.TrimSpace(req.PartyName)
	h.DesignNo = designNo
	h.DesignKey = designKey
	h.DesignName = strings.TrimSpace(req.DesignName)
	h.Remarks = req.Remarks
	h.TotalQty, h.TotalRolls, h.TotalAmount = computeTotals(req.Lines, req.Processes)
	h.Revision++
	h.ModifiedBy = actor.Username
	if manual {
		h.DocNumber = req.DocNumber
		h.SortOrder = manualValue
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return DocumentResponse{}, tx.Error
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.SoftDeleteLines(ctx, uid); err != nil {
		return DocumentResponse{}, err
	}
	if err := txRepo.SoftDeleteProcessLines(ctx, uid); err != nil {
		return DocumentResponse{}, err
	}

	lines, processes := buildLines(h, h.Revision, req)
	if err := txRepo.CreateLines(ctx, lines); err != nil {
		return DocumentResponse{}, err
	}
	if err := txRepo.CreateProcessLines(ctx, processes); err != nil {
		return DocumentResponse{}, err
	}

	if err := txRepo.UpdateHeader(ctx, h); err != nil {
		if isUniqueViolation(err) {
			return DocumentResponse{}, documenterrors.ErrDuplicateDocNumber
		}
		l.Error("update document persist failed",
			zap.String("document_id", id),
			zap.Error(err),
		)
		return DocumentResponse{}, err
	}

	if manual {
		if err := s.counters.WithTx(tx).Raise(ctx, tenantID, series, manualValue); err != nil {
			return DocumentResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return DocumentResponse{}, err
	}

	h.Lines = lines
	h.Processes = processes

	l.Info("update document success",
		zap.String("document_id", id),
		zap.String("series", series),
		zap.Int("revision", h.Revision),
	)
	return mapToResponse(h, true, false), nil
}

func (s *service) Delete(ctx context.Context, tenantID string, actor Actor, series string, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return documenterrors.ErrInvalidDocumentID
	}

	h, err := s.repo.FindByID(ctx, tenantID, series, uid)
	if err != nil {
		return mapNotFound(err)
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).SoftDeleteHeader(ctx, tenantID, series, uid, actor.Username); err != nil {
		return mapNotFound(err)
	}

	if err := s.writeDeletedEvent(ctx, tx, h, actor.Username); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("delete document success",
		zap.String("document_id", id),
		zap.String("series", series),
	)
	return nil
}

func (s *service) GetAll(ctx context.Context, tenantID, series, search string, page, limit int) ([]DocumentResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	headers, total, err := s.repo.FindAll(ctx, tenantID, series, strings.TrimSpace(search), page, limit)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]DocumentResponse, len(headers))
	for i := range headers {
		resp[i] = mapToResponse(&headers[i], false, false)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, tenantID, series, id string) (DocumentResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrInvalidDocumentID
	}

	h, err := s.repo.FindByID(ctx, tenantID, series, uid)
	if err != nil {
		return DocumentResponse{}, mapNotFound(err)
	}
	return mapToResponse(h, true, false), nil
}

func (s *service) GetHistory(ctx context.Context, tenantID, series, id string) (DocumentResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrInvalidDocumentID
	}

	h, err := s.repo.FindByIDWithHistory(ctx, tenantID, series, uid)
	if err != nil {
		return DocumentResponse{}, mapNotFound(err)
	}
	return mapToResponse(h, true, true), nil
}

func (s *service) writeCreatedEvent(ctx context.Context, tx *gorm.DB, h *Header) error {
	payload, err := json.Marshal(events.DocumentCreatedEvent{
		EventType:  events.DocumentCreatedType,
		DocumentID: h.ID.String(),
		TenantID:   h.TenantID.String(),
		Series:     h.Series,
		DocNumber:  h.DocNumber,
		TotalQty:   h.TotalQty,
		TotalRolls: h.TotalRolls,
		CreatedBy:  h.CreatedBy,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "document",
		AggregateID:   h.ID.String(),
		EventType:     events.DocumentCreatedType,
		Topic:         events.DocumentLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) writeDeletedEvent(ctx context.Context, tx *gorm.DB, h *Header, deletedBy string) error {
	payload, err := json.Marshal(events.DocumentDeletedEvent{
		EventType:  events.DocumentDeletedType,
		DocumentID: h.ID.String(),
		TenantID:   h.TenantID.String(),
		Series:     h.Series,
		DocNumber:  h.DocNumber,
		DeletedBy:  deletedBy,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "document",
		AggregateID:   h.ID.String(),
		EventType:     events.DocumentDeletedType,
		Topic:         events.DocumentLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func manualNumber(actor Actor, docNumber string) (bool, int64, error) {
	if docNumber == "" {
		return false, 0, nil
	}
	if !actor.IsAdmin {
		return false, 0, documenterrors.ErrManualNumberForbidden
	}

	n, err := strconv.ParseInt(docNumber, 10, 64)
	if err != nil || n <= 0 {
		return false, 0, documenterrors.ErrInvalidDocNumber
	}
	return true, n, nil
}

// computeTotals sums the quantity-bearing and count-bearing fields of
// the submitted line set; absent values count as zero.
func computeTotals(lines []LineRequest, processes []ProcessLineRequest) (totalQty float64, totalRolls int, totalAmount float64) {
	for _, line := range lines {
		if line.Weight != nil {
			totalQty += *line.Weight
		}
		if line.Rolls != nil {
			totalRolls += *line.Rolls
		}
	}
	for _, p := range processes {
		if p.Amount != nil {
			totalAmount += *p.Amount
		}
	}
	return totalQty, totalRolls, totalAmount
}

func buildLines(h *Header, revision int, req SaveDocumentRequest) ([]Line, []ProcessLine) {
	lines := make([]Line, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = Line{
			ID:       uuid.New(),
			HeaderID: h.ID,
			TenantID: h.TenantID,
			Revision: revision,
			LotNo:    l.LotNo,
			Color:    l.Color,
			Weight:   l.Weight,
			Rolls:    l.Rolls,
			Remarks:  l.Remarks,
		}
	}

	processes := make([]ProcessLine, len(req.Processes))
	for i, p := range req.Processes {
		processes[i] = ProcessLine{
			ID:          uuid.New(),
			HeaderID:    h.ID,
			TenantID:    h.TenantID,
			Revision:    revision,
			ProcessName: p.ProcessName,
			Rate:        p.Rate,
			Amount:      p.Amount,
		}
	}
	return lines, processes
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return documenterrors.ErrDocumentNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}

func mapToResponse(h *Header, withChildren, includeDeleted bool) DocumentResponse {
	resp := DocumentResponse{
		ID:          h.ID.String(),
		Series:      h.Series,
		DocNumber:   h.DocNumber,
		DocDate:     h.DocDate.Format(docDateLayout),
		PartyName:   h.PartyName,
		DesignNo:    h.DesignNo,
		DesignName:  h.DesignName,
		Remarks:     h.Remarks,
		TotalQty:    h.TotalQty,
		TotalRolls:  h.TotalRolls,
		TotalAmount: h.TotalAmount,
		Revision:    h.Revision,
		CreatedBy:   h.CreatedBy,
		ModifiedBy:  h.ModifiedBy,
		CreatedAt:   h.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if !withChildren {
		return resp
	}

	resp.Lines = make([]LineResponse, 0, len(h.Lines))
	for _, l := range h.Lines {
		if l.DeletedAt.Valid && !includeDeleted {
			continue
		}
		resp.Lines = append(resp.Lines, LineResponse{
			ID:       l.ID.String(),
			Revision: l.Revision,
			LotNo:    l.LotNo,
			Color:    l.Color,
			Weight:   l.Weight,
			Rolls:    l.Rolls,
			Remarks:  l.Remarks,
			Deleted:  l.DeletedAt.Valid,
		})
	}

	resp.Processes = make([]ProcessLineResponse, 0, len(h.Processes))
	for _, p := range h.Processes {
		if p.DeletedAt.Valid && !includeDeleted {
			continue
		}
		resp.Processes = append(resp.Processes, ProcessLineResponse{
			ID:          p.ID.String(),
			Revision:    p.Revision,
			ProcessName: p.ProcessName,
			Rate:        p.Rate,
			Amount:      p.Amount,
			Deleted:     p.DeletedAt.Valid,
		})
	}
	return resp
}
