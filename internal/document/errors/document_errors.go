package documenterrors

import (
	"net/http"

	"go-texerp/internal/shared/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)

	ErrInvalidDocumentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid document ID",
		http.StatusBadRequest,
	)

	ErrInvalidDocDate = apperror.InvalidField("Doc date")

	ErrDuplicateDesign = apperror.DuplicateValue("Design number")

	ErrDuplicateDocNumber = apperror.DuplicateValue("Document number")

	ErrInvalidDocNumber = apperror.InvalidField("Document number")

	// ErrManualNumberForbidden rejects a number override from anyone but
	// an administrator.
	ErrManualNumberForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only administrators may assign document numbers manually",
		http.StatusForbidden,
	)

	// ErrSequenceConflict surfaces after the single transparent retry of
	// the allocate-and-insert step has also lost the race.
	ErrSequenceConflict = apperror.New(
		apperror.CodeSequenceConflict,
		"Could not allocate a document number, please retry",
		http.StatusConflict,
	)
)
