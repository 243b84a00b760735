package concernerrors

import (
	"net/http"

	"go-texerp/internal/shared/apperror"
)

var (
	ErrConcernNotFound = apperror.New(
		apperror.CodeNotFound,
		"Concern not found",
		http.StatusNotFound,
	)

	ErrDuplicateConcernName = apperror.New(
		apperror.CodeConflict,
		"Concern name already exists",
		http.StatusConflict,
	)

	ErrInvalidConcernID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid concern ID",
		http.StatusBadRequest,
	)
)
