package document

import (
	"net/http"
	"strconv"

	"go-texerp/internal/shared/apperror"
	"go-texerp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves one document series; the same type backs both the
// goods-receipt and the quotation routes.
type Handler struct {
	service Service
	series  string
	logger  *zap.Logger
}

func NewHandler(s Service, series string, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("document.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.handler")
	}
	return &Handler{service: s, series: series, logger: l}
}

func actorFromContext(c *gin.Context) Actor {
	return Actor{
		UserID:   c.GetString("user_id"),
		Username: c.GetString("username"),
		IsAdmin:  c.GetBool("is_admin"),
	}
}

func (h *Handler) GetAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	search := c.Query("q")

	resp, total, err := h.service.GetAll(c.Request.Context(), c.GetString("tenant_id"), h.series, search, page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, limit)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) NextNumber(c *gin.Context) {
	resp, err := h.service.NextNumber(c.Request.Context(), c.GetString("tenant_id"), h.series)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.GetString("tenant_id"), h.series, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetHistory(c *gin.Context) {
	resp, err := h.service.GetHistory(c.Request.Context(), c.GetString("tenant_id"), h.series, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req SaveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), c.GetString("tenant_id"), actorFromContext(c), h.series, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req SaveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.GetString("tenant_id"), actorFromContext(c), h.series, c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.GetString("tenant_id"), actorFromContext(c), h.series, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
