package document_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-texerp/internal/document"
	documenterrors "go-texerp/internal/document/errors"
	"go-texerp/internal/events"
	"go-texerp/internal/messaging/kafka"
	tenanterrors "go-texerp/internal/tenant/errors"

	documentMock "go-texerp/internal/document/mock"
	kafkaMock "go-texerp/internal/messaging/kafka/mock"
	counterMock "go-texerp/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type serviceDeps struct {
	svc      document.Service
	repo     *documentMock.MockRepository
	counters *counterMock.MockRepository
	outbox   *kafkaMock.MockOutboxRepository
	sqlMock  sqlmock.Sqlmock
}

func setupService(t *testing.T) serviceDeps {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	ctrl := gomock.NewController(t)
	repo := documentMock.NewMockRepository(ctrl)
	counters := counterMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)

	return serviceDeps{
		svc:      document.NewService(gormDB, repo, counters, outbox),
		repo:     repo,
		counters: counters,
		outbox:   outbox,
		sqlMock:  mock,
	}
}

func fptr(v float64) *float64 { return &v }

func iptr(v int) *int { return &v }

var (
	testTenantID = uuid.New().String()
	testActor    = document.Actor{UserID: uuid.New().String(), Username: "jane", IsAdmin: false}
	testAdmin    = document.Actor{UserID: uuid.New().String(), Username: "boss", IsAdmin: true}
)

func validRequest() document.SaveDocumentRequest {
	return document.SaveDocumentRequest{
		DocDate:    "2026-08-20",
		PartyName:  "Shree Textiles",
		DesignNo:   "DSN-104",
		DesignName: "Floral 60s",
		Lines: []document.LineRequest{
			{LotNo: "L-1", Color: "Navy", Weight: fptr(10.5), Rolls: iptr(2)},
			{LotNo: "L-2", Color: "White", Weight: fptr(5), Rolls: iptr(1)},
		},
		Processes: []document.ProcessLineRequest{
			{ProcessName: "Soft Flow Dyeing", Rate: fptr(12), Amount: fptr(186)},
			{ProcessName: "Stenter", Rate: fptr(4), Amount: fptr(62)},
		},
	}
}

func TestDocumentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("allocates the next number and writes the outbox event in one transaction", func(t *testing.T) {
		d := setupService(t)

		d.repo.EXPECT().DesignKeyExists(ctx, testTenantID, document.SeriesGoodsReceipt, "dsn104", uuid.Nil).Return(false, nil)

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.counters.EXPECT().WithTx(gomock.Any()).Return(d.counters)
		d.counters.EXPECT().Next(ctx, testTenantID, document.SeriesGoodsReceipt).Return(int64(1), nil)

		var saved *document.Header
		d.repo.EXPECT().CreateHeader(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, h *document.Header) error {
				saved = h
				return nil
			})
		d.repo.EXPECT().CreateLines(ctx, gomock.Any()).Return(nil)
		d.repo.EXPECT().CreateProcessLines(ctx, gomock.Any()).Return(nil)

		var event kafka.OutboxEvent
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, e kafka.OutboxEvent) error {
				event = e
				return nil
			})
		d.sqlMock.ExpectCommit()

		resp, err := d.svc.Create(ctx, testTenantID, testActor, document.SeriesGoodsReceipt, validRequest())

		assert.NoError(t, err)
		assert.Equal(t, "0000000001", resp.DocNumber)
		assert.Equal(t, 1, resp.Revision)
		assert.Equal(t, 15.5, resp.TotalQty)
		assert.Equal(t, 3, resp.TotalRolls)
		assert.Equal(t, 248.0, resp.TotalAmount)
		assert.Equal(t, "jane", resp.CreatedBy)
		assert.Len(t, resp.Lines, 2)
		assert.Len(t, resp.Processes, 2)

		assert.Equal(t, "dsn104", saved.DesignKey)
		assert.Equal(t, int64(1), saved.SortOrder)

		assert.Equal(t, events.DocumentLifecycleTopic, event.Topic)
		assert.Equal(t, kafka.OutboxStatusPending, event.Status)
		assert.Equal(t, saved.ID.String(), event.AggregateID)

		var payload events.DocumentCreatedEvent
		assert.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, events.DocumentCreatedType, payload.EventType)
		assert.Equal(t, "0000000001", payload.DocNumber)
		assert.Equal(t, 15.5, payload.TotalQty)

		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("retries once after losing the allocation race", func(t *testing.T) {
		d := setupService(t)
		req := validRequest()
		req.DesignNo = ""

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo).Times(2)
		d.counters.EXPECT().WithTx(gomock.Any()).Return(d.counters).Times(2)
		d.counters.EXPECT().Next(ctx, testTenantID, document.SeriesQuotation).Return(int64(41), nil)
		d.repo.EXPECT().CreateHeader(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505"})
		d.sqlMock.ExpectRollback()

		d.sqlMock.ExpectBegin()
		d.counters.EXPECT().Next(ctx, testTenantID, document.SeriesQuotation).Return(int64(42), nil)
		d.repo.EXPECT().CreateHeader(ctx, gomock.Any()).Return(nil)
		d.repo.EXPECT().CreateLines(ctx, gomock.Any()).Return(nil)
		d.repo.EXPECT().CreateProcessLines(ctx, gomock.Any()).Return(nil)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()

		resp, err := d.svc.Create(ctx, testTenantID, testActor, document.SeriesQuotation, req)

		assert.NoError(t, err)
		assert.Equal(t, "0000000042", resp.DocNumber)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("gives up after the retry also collides", func(t *testing.T) {
		d := setupService(t)
		req := validRequest()
		req.DesignNo = ""

		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo).Times(2)
		d.counters.EXPECT().WithTx(gomock.Any()).Return(d.counters).Times(2)
		d.counters.EXPECT().Next(ctx, testTenantID, document.SeriesGoodsReceipt).Return(int64(7), nil).Times(2)
		d.repo.EXPECT().CreateHeader(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505"}).Times(2)
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()

		_, err := d.svc.Create(ctx, testTenantID, testActor, document.SeriesGoodsReceipt, req)

		assert.ErrorIs(t, err, documenterrors.ErrSequenceConflict)
	})

	t.Run("admin assigned number raises the counter past it", func(t *testing.T) {
		d := setupService(t)
		req := validRequest()
		req.DesignNo = ""
		req.DocNumber = "0000000500"

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.counters.EXPECT().WithTx(gomock.Any()).Return(d.counters)

		var saved *document.Header
		d.repo.EXPECT().CreateHeader(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, h *document.Header) error {
				saved = h
				return nil
			})
		d.repo.EXPECT().CreateLines(ctx, gomock.Any()).Return(nil)
		d.repo.EXPECT().CreateProcessLines(ctx, gomock.Any()).Return(nil)
		d.counters.EXPECT().Raise(ctx, testTenantID, document.SeriesGoodsReceipt, int64(500)).Return(nil)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()

		resp, err := d.svc.Create(ctx, testTenantID, testAdmin, document.SeriesGoodsReceipt, req)

		assert.NoError(t, err)
		assert.Equal(t, "0000000500", resp.DocNumber)
		assert.Equal(t, int64(500), saved.SortOrder)
	})

	t.Run("admin assigned number colliding fails without retry", func(t *testing.T) {
		d := setupService(t)
		req := validRequest()
		req.DesignNo = ""
		req.DocNumber = "0000000500"

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.counters.EXPECT().WithTx(gomock.Any()).Return(d.counters)
		d.repo.EXPECT().CreateHeader(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505"})
		d.sqlMock.ExpectRollback()

		_, err := d.svc.Create(ctx, testTenantID, testAdmin, document.SeriesGoodsReceipt, req)

		assert.ErrorIs(t, err, documenterrors.ErrDuplicateDocNumber)
	})

	t.Run("manual number from a regular user is rejected", func(t *testing.T) {
		d := setupService(t)
		req := validRequest()
		req.DesignNo = ""
		req.DocNumber = "0000000500"

		_, err := d.svc.Create(ctx, testTenantID, testActor, document.SeriesGoodsReceipt, req)

		assert.ErrorIs(t, err, documenterrors.ErrManualNumberForbidden)
	})

	t.Run("malformed tenant id is rejected instead of panicking", func(t *testing.T) {
		d := setupService(t)

		_, err := d.svc.Create(ctx, "not-a-uuid", testActor, document.SeriesGoodsReceipt, validRequest())

		assert.ErrorIs(t, err, tenanterrors.ErrInvalidTenantID)
	})

	t.Run("design number already used by a live document", func(t *testing.T) {
		d := setupService(t)

		// spelling variant of DSN-104 normalizes to the same key
		req := validRequest()
		req.DesignNo = " dsn 104 "

		d.repo.EXPECT().DesignKeyExists(ctx, testTenantID, document.SeriesGoodsReceipt, "dsn104", uuid.Nil).Return(true, nil)

		_, err := d.svc.Create(ctx, testTenantID, testActor, document.SeriesGoodsReceipt, req)

		assert.ErrorIs(t, err, documenterrors.ErrDuplicateDesign)
	})

	t.Run("unparseable document date", func(t *testing.T) {
		d := setupService(t)
		req := validRequest()
		req.DocDate = "20-08-2026"

		_, err := d.svc.Create(ctx, testTenantID, testActor, document.SeriesGoodsReceipt, req)

		assert.ErrorIs(t, err, documenterrors.ErrInvalidDocDate)
	})
}

func TestDocumentService_NextNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("formats the peeked value without allocating", func(t *testing.T) {
		d := setupService(t)

		d.counters.EXPECT().Peek(ctx, testTenantID, document.SeriesQuotation).Return(int64(7), nil)

		resp, err := d.svc.NextNumber(ctx, testTenantID, document.SeriesQuotation)

		assert.NoError(t, err)
		assert.Equal(t, "0000000007", resp.NextNumber)
	})
}

func TestDocumentService_Update(t *testing.T) {
	ctx := context.Background()

	existing := func() *document.Header {
		return &document.Header{
			ID:        uuid.New(),
			TenantID:  uuid.MustParse(testTenantID),
			Series:    document.SeriesGoodsReceipt,
			DocNumber: "0000000003",
			SortOrder: 3,
			DocDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			PartyName: "Shree Textiles",
			DesignNo:  "DSN-104",
			DesignKey: "dsn104",
			Revision:  1,
			CreatedBy: "jane",
		}
	}

	t.Run("replaces the line set under the next revision", func(t *testing.T) {
		d := setupService(t)
		h := existing()

		req := validRequest()
		req.Lines = []document.LineRequest{
			{LotNo: "L-3", Color: "Black", Weight: fptr(20), Rolls: iptr(4)},
		}

		d.repo.EXPECT().FindByID(ctx, testTenantID, document.SeriesGoodsReceipt, h.ID).Return(h, nil)

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().SoftDeleteLines(ctx, h.ID).Return(nil)
		d.repo.EXPECT().SoftDeleteProcessLines(ctx, h.ID).Return(nil)

		var newLines []document.Line
		d.repo.EXPECT().CreateLines(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, lines []document.Line) error {
				newLines = lines
				return nil
			})
		d.repo.EXPECT().CreateProcessLines(ctx, gomock.Any()).Return(nil)

		var saved *document.Header
		d.repo.EXPECT().UpdateHeader(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u *document.Header) error {
				saved = u
				return nil
			})
		d.sqlMock.ExpectCommit()

		resp, err := d.svc.Update(ctx, testTenantID, testActor, document.SeriesGoodsReceipt, h.ID.String(), req)

		assert.NoError(t, err)
		assert.Equal(t, 2, resp.Revision)
		assert.Equal(t, 20.0, resp.TotalQty)
		assert.Equal(t, 4, resp.TotalRolls)
		assert.Equal(t, "jane", saved.ModifiedBy)
		assert.Equal(t, "0000000003", saved.DocNumber)

		assert.Len(t, newLines, 1)
		assert.Equal(t, 2, newLines[0].Revision)
		assert.Equal(t, h.ID, newLines[0].HeaderID)

		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("renaming the design onto another document is rejected", func(t *testing.T) {
		d := setupService(t)
		h := existing()

		req := validRequest()
		req.DesignNo = "DSN-200"

		d.repo.EXPECT().FindByID(ctx, testTenantID, document.SeriesGoodsReceipt, h.ID).Return(h, nil)
		d.repo.EXPECT().DesignKeyExists(ctx, testTenantID, document.SeriesGoodsReceipt, "dsn200", h.ID).Return(true, nil)

		_, err := d.svc.Update(ctx, testTenantID, testActor, document.SeriesGoodsReceipt, h.ID.String(), req)

		assert.ErrorIs(t, err, documenterrors.ErrDuplicateDesign)
	})

	t.Run("unknown document", func(t *testing.T) {
		d := setupService(t)
		id := uuid.New()

		d.repo.EXPECT().FindByID(ctx, testTenantID, document.SeriesGoodsReceipt, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := d.svc.Update(ctx, testTenantID, testActor, document.SeriesGoodsReceipt, id.String(), validRequest())

		assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		d := setupService(t)

		_, err := d.svc.Update(ctx, testTenantID, testActor, document.SeriesGoodsReceipt, "not-a-uuid", validRequest())

		assert.ErrorIs(t, err, documenterrors.ErrInvalidDocumentID)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("soft deletes and writes the deletion event in one transaction", func(t *testing.T) {
		d := setupService(t)
		h := &document.Header{
			ID:        uuid.New(),
			TenantID:  uuid.MustParse(testTenantID),
			Series:    document.SeriesQuotation,
			DocNumber: "0000000004",
		}

		d.repo.EXPECT().FindByID(ctx, testTenantID, document.SeriesQuotation, h.ID).Return(h, nil)

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().SoftDeleteHeader(ctx, testTenantID, document.SeriesQuotation, h.ID, "jane").Return(nil)

		var event kafka.OutboxEvent
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, e kafka.OutboxEvent) error {
				event = e
				return nil
			})
		d.sqlMock.ExpectCommit()

		err := d.svc.Delete(ctx, testTenantID, testActor, document.SeriesQuotation, h.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, events.DocumentDeletedType, event.EventType)

		var payload events.DocumentDeletedEvent
		assert.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, "0000000004", payload.DocNumber)
		assert.Equal(t, "jane", payload.DeletedBy)

		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("already deleted", func(t *testing.T) {
		d := setupService(t)
		id := uuid.New()

		d.repo.EXPECT().FindByID(ctx, testTenantID, document.SeriesQuotation, id).Return(nil, gorm.ErrRecordNotFound)

		err := d.svc.Delete(ctx, testTenantID, testActor, document.SeriesQuotation, id.String())

		assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)
	})
}

func TestDocumentService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps page and limit and trims the search term", func(t *testing.T) {
		d := setupService(t)

		d.repo.EXPECT().FindAll(ctx, testTenantID, document.SeriesGoodsReceipt, "shree", 1, 20).
			Return([]document.Header{{ID: uuid.New(), DocNumber: "0000000001"}}, int64(1), nil)

		resp, total, err := d.svc.GetAll(ctx, testTenantID, document.SeriesGoodsReceipt, "  shree ", 0, 5000)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, resp, 1)
		assert.Empty(t, resp[0].Lines)
	})
}

func TestDocumentService_GetHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("returns replaced revisions alongside live lines", func(t *testing.T) {
		d := setupService(t)
		id := uuid.New()

		h := &document.Header{
			ID:        id,
			TenantID:  uuid.MustParse(testTenantID),
			Series:    document.SeriesGoodsReceipt,
			DocNumber: "0000000009",
			Revision:  2,
			Lines: []document.Line{
				{ID: uuid.New(), Revision: 1, LotNo: "L-1", DeletedAt: gorm.DeletedAt{Time: time.Now(), Valid: true}},
				{ID: uuid.New(), Revision: 2, LotNo: "L-1A"},
			},
		}

		d.repo.EXPECT().FindByIDWithHistory(ctx, testTenantID, document.SeriesGoodsReceipt, id).Return(h, nil)

		resp, err := d.svc.GetHistory(ctx, testTenantID, document.SeriesGoodsReceipt, id.String())

		assert.NoError(t, err)
		assert.Len(t, resp.Lines, 2)
		assert.True(t, resp.Lines[0].Deleted)
		assert.Equal(t, 1, resp.Lines[0].Revision)
		assert.False(t, resp.Lines[1].Deleted)
	})

	t.Run("live read hides replaced revisions", func(t *testing.T) {
		d := setupService(t)
		id := uuid.New()

		h := &document.Header{
			ID:       id,
			Revision: 2,
			Lines: []document.Line{
				{ID: uuid.New(), Revision: 2, LotNo: "L-1A"},
			},
		}

		d.repo.EXPECT().FindByID(ctx, testTenantID, document.SeriesGoodsReceipt, id).Return(h, nil)

		resp, err := d.svc.GetByID(ctx, testTenantID, document.SeriesGoodsReceipt, id.String())

		assert.NoError(t, err)
		assert.Len(t, resp.Lines, 1)
		assert.Equal(t, "L-1A", resp.Lines[0].LotNo)
	})
}
