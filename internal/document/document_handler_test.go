package document_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"go-texerp/internal/document"
	documenterrors "go-texerp/internal/document/errors"
	documentMock "go-texerp/internal/document/mock"
	"go-texerp/internal/shared/apperror"
)

// identity stands in for the auth and tenant middleware in tests.
func identity(tenantID string, actor document.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("tenant_id", tenantID)
		c.Set("user_id", actor.UserID)
		c.Set("username", actor.Username)
		c.Set("is_admin", actor.IsAdmin)
	}
}

func setupDocumentRouter(t *testing.T, series string) (*gin.Engine, *documentMock.MockService, string, document.Actor) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	ctrl := gomock.NewController(t)
	mockService := documentMock.NewMockService(ctrl)
	handler := document.NewHandler(mockService, series)

	tenantID := uuid.New().String()
	actor := document.Actor{UserID: uuid.New().String(), Username: "jane", IsAdmin: false}

	router := gin.New()
	g := router.Group("/grns", identity(tenantID, actor))
	g.GET("", handler.GetAll)
	g.GET("/next-number", handler.NextNumber)
	g.GET("/:id", handler.GetByID)
	g.GET("/:id/history", handler.GetHistory)
	g.POST("", handler.Create)
	g.PUT("/:id", handler.Update)
	g.DELETE("/:id", handler.Delete)

	return router, mockService, tenantID, actor
}

func TestDocumentHandler_Create(t *testing.T) {
	router, mockService, tenantID, actor := setupDocumentRouter(t, document.SeriesGoodsReceipt)

	t.Run("success", func(t *testing.T) {
		reqBody := validRequest()
		body, _ := json.Marshal(reqBody)

		mockService.EXPECT().
			Create(gomock.Any(), tenantID, actor, document.SeriesGoodsReceipt, gomock.Any()).
			Return(document.DocumentResponse{DocNumber: "0000000001", Revision: 1}, nil)

		req := httptest.NewRequest(http.MethodPost, "/grns", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var res map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, true, res["ok"])
		assert.Equal(t, "0000000001", res["data"].(map[string]interface{})["doc_number"])
	})

	t.Run("missing lines fails validation", func(t *testing.T) {
		body := []byte(`{"doc_date": "2026-08-20", "party_name": "Shree Textiles", "lines": []}`)

		req := httptest.NewRequest(http.MethodPost, "/grns", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non numeric manual number fails validation", func(t *testing.T) {
		reqBody := validRequest()
		reqBody.DocNumber = "GRN-000001"
		body, _ := json.Marshal(reqBody)

		req := httptest.NewRequest(http.MethodPost, "/grns", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate design surfaces as conflict", func(t *testing.T) {
		body, _ := json.Marshal(validRequest())

		mockService.EXPECT().
			Create(gomock.Any(), tenantID, actor, document.SeriesGoodsReceipt, gomock.Any()).
			Return(document.DocumentResponse{}, documenterrors.ErrDuplicateDesign)

		req := httptest.NewRequest(http.MethodPost, "/grns", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestDocumentHandler_GetAll(t *testing.T) {
	router, mockService, tenantID, _ := setupDocumentRouter(t, document.SeriesGoodsReceipt)

	t.Run("paginates with meta", func(t *testing.T) {
		mockService.EXPECT().
			GetAll(gomock.Any(), tenantID, document.SeriesGoodsReceipt, "shree", 2, 10).
			Return([]document.DocumentResponse{{DocNumber: "0000000011"}}, int64(11), nil)

		req := httptest.NewRequest(http.MethodGet, "/grns?page=2&limit=10&q=shree", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &res)
		meta := res["meta"].(map[string]interface{})
		assert.Equal(t, float64(11), meta["total"])
		assert.Equal(t, float64(2), meta["totalPages"])
	})
}

func TestDocumentHandler_NextNumber(t *testing.T) {
	router, mockService, tenantID, _ := setupDocumentRouter(t, document.SeriesGoodsReceipt)

	t.Run("previews the upcoming number", func(t *testing.T) {
		mockService.EXPECT().
			NextNumber(gomock.Any(), tenantID, document.SeriesGoodsReceipt).
			Return(document.NextNumberResponse{NextNumber: "0000000042"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/grns/next-number", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, "0000000042", res["data"].(map[string]interface{})["next_number"])
	})
}

func TestDocumentHandler_GetHistory(t *testing.T) {
	router, mockService, tenantID, _ := setupDocumentRouter(t, document.SeriesGoodsReceipt)

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()

		mockService.EXPECT().
			GetHistory(gomock.Any(), tenantID, document.SeriesGoodsReceipt, id).
			Return(document.DocumentResponse{}, documenterrors.ErrDocumentNotFound)

		req := httptest.NewRequest(http.MethodGet, "/grns/"+id+"/history", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDocumentHandler_Update(t *testing.T) {
	router, mockService, tenantID, actor := setupDocumentRouter(t, document.SeriesGoodsReceipt)

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		body, _ := json.Marshal(validRequest())

		mockService.EXPECT().
			Update(gomock.Any(), tenantID, actor, document.SeriesGoodsReceipt, id, gomock.Any()).
			Return(document.DocumentResponse{DocNumber: "0000000003", Revision: 2}, nil)

		req := httptest.NewRequest(http.MethodPut, "/grns/"+id, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, float64(2), res["data"].(map[string]interface{})["revision"])
	})
}

func TestDocumentHandler_Delete(t *testing.T) {
	router, mockService, tenantID, actor := setupDocumentRouter(t, document.SeriesGoodsReceipt)

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()

		mockService.EXPECT().
			Delete(gomock.Any(), tenantID, actor, document.SeriesGoodsReceipt, id).
			Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/grns/"+id, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
