package tenanterrors

import (
	"net/http"

	"go-texerp/internal/shared/apperror"
)

var (
	ErrTenantNotFound = apperror.New(
		apperror.CodeNotFound,
		"Tenant not found",
		http.StatusNotFound,
	)

	ErrInvalidTenantID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid tenant ID",
		http.StatusBadRequest,
	)

	ErrTenantRequired = apperror.New(
		apperror.CodeTenantRequired,
		"A tenant context is required for this operation",
		http.StatusBadRequest,
	)

	// ErrTenantConflict surfaces when a concurrent write changed the
	// concern or tenant between our insert and the adopting re-read.
	ErrTenantConflict = apperror.New(
		apperror.CodeConflict,
		"Tenant was changed by another request, please retry",
		http.StatusConflict,
	)
)
