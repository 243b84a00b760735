package tenant

import (
	"net/http"

	"go-texerp/internal/shared/apperror"
	"go-texerp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(s Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("tenant.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tenant.handler")
	}
	return &Handler{service: s, logger: l}
}

// Create is the get-or-create entry point: posting an existing
// (company, financial year) pair returns the existing tenant.
func (h *Handler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetOrCreate(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// GetCandidates lists the tenants the caller may select, filtered by
// the concern set carried in the session claims.
func (h *Handler) GetCandidates(c *gin.Context) {
	concernIDs, _ := c.Get("concern_ids")
	ids, _ := concernIDs.([]string)

	resp, err := h.service.GetCandidates(c.Request.Context(), ids)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
