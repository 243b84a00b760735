package autherrors

import (
	"net/http"

	"go-texerp/internal/shared/apperror"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password; callers cannot tell the two apart.
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid username or password",
		http.StatusUnauthorized,
	)

	ErrAccountInactive = apperror.New(
		apperror.CodeForbidden,
		"This account has been deactivated",
		http.StatusForbidden,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid or malformed token",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token has expired",
		http.StatusUnauthorized,
	)

	ErrUsernameTaken = apperror.DuplicateValue("Username")

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrForbidden = apperror.ErrForbidden
)
