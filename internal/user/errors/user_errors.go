package usererrors

import (
	"net/http"

	"go-texerp/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrUsernameTaken = apperror.DuplicateValue("Username")

	ErrInvalidConcernID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid concern ID",
		http.StatusBadRequest,
	)
)
