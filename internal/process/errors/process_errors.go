package processerrors

import (
	"net/http"

	"go-texerp/internal/shared/apperror"
)

var (
	ErrProcessNotFound = apperror.New(
		apperror.CodeNotFound,
		"Process not found",
		http.StatusNotFound,
	)

	ErrInvalidProcessID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid process ID",
		http.StatusBadRequest,
	)

	ErrDuplicateProcessName = apperror.DuplicateValue("Process name")
)
