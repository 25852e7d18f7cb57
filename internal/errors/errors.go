package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a musebox error code.
type ErrorCode string

const (
	ErrMalformed           ErrorCode = "MALFORMED"            // 400
	ErrUnsupportedVersion  ErrorCode = "UNSUPPORTED_VERSION"  // 400
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"      // 400
	ErrNotFound            ErrorCode = "NOT_FOUND"            // 404
	ErrNameAlreadyExists   ErrorCode = "NAME_ALREADY_EXISTS"  // 409
	ErrCategoryUnavailable ErrorCode = "CATEGORY_UNAVAILABLE" // 409
	ErrStructuralInvalid   ErrorCode = "STRUCTURAL_INVALID"   // 422
	ErrSemanticInvalid     ErrorCode = "SEMANTIC_INVALID"     // 422
	ErrCancelled           ErrorCode = "CANCELLED"            // 499
	ErrStoreFailure        ErrorCode = "STORE_FAILURE"        // 500
	ErrInternal            ErrorCode = "INTERNAL"             // 500
)

// MuseboxError represents a structured error with code, status, and details.
type MuseboxError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *MuseboxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewMalformed creates a 400 error for a backup that cannot be decoded at all.
func NewMalformed(err error) *MuseboxError {
	detail := "unknown"
	if err != nil {
		detail = err.Error()
	}
	return &MuseboxError{
		Code:    ErrMalformed,
		Status:  400,
		Message: "backup is not valid JSON",
		Details: map[string]any{"decode_error": detail},
	}
}

// NewUnsupportedVersion creates a 400 error for a backup with an unknown schema version.
func NewUnsupportedVersion(got, supported string) *MuseboxError {
	msg := fmt.Sprintf("unsupported backup version %q (supported: %s)", got, supported)
	if got == "" {
		msg = fmt.Sprintf("backup version is missing (supported: %s)", supported)
	}
	return &MuseboxError{
		Code:    ErrUnsupportedVersion,
		Status:  400,
		Message: msg,
		Details: map[string]any{"version": got, "supported": supported},
	}
}

// NewStructuralInvalid creates a 422 error for a backup missing required structure.
func NewStructuralInvalid(detail string) *MuseboxError {
	return &MuseboxError{
		Code:    ErrStructuralInvalid,
		Status:  422,
		Message: fmt.Sprintf("backup structure invalid: %s", detail),
	}
}

// NewSemanticInvalid creates a 422 error for a record that violates content rules.
func NewSemanticInvalid(index int, reason string) *MuseboxError {
	return &MuseboxError{
		Code:    ErrSemanticInvalid,
		Status:  422,
		Message: fmt.Sprintf("note %d: %s", index, reason),
		Details: map[string]any{"index": index, "reason": reason},
	}
}

// NewCategoryUnavailable creates a 409 error for a note whose theme could
// neither be matched nor created.
func NewCategoryUnavailable(name string) *MuseboxError {
	return &MuseboxError{
		Code:    ErrCategoryUnavailable,
		Status:  409,
		Message: fmt.Sprintf("theme unavailable: %s", name),
		Details: map[string]any{"theme": name},
	}
}

// NewStoreFailure creates a 500 error for a store operation that was rejected.
func NewStoreFailure(op string, err error) *MuseboxError {
	detail := "unknown"
	if err != nil {
		detail = err.Error()
	}
	return &MuseboxError{
		Code:    ErrStoreFailure,
		Status:  500,
		Message: fmt.Sprintf("store operation failed: %s", op),
		Details: map[string]any{"op": op, "store_error": detail},
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *MuseboxError {
	return &MuseboxError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing note or theme.
func NewNotFound(kind, identifier string) *MuseboxError {
	return &MuseboxError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"kind": kind, "identifier": identifier},
	}
}

// NewNameAlreadyExists creates a 409 error for theme name collisions.
func NewNameAlreadyExists(name string) *MuseboxError {
	return &MuseboxError{
		Code:    ErrNameAlreadyExists,
		Status:  409,
		Message: fmt.Sprintf("theme %q already exists", name),
		Details: map[string]any{"name": name},
	}
}

// NewCancelled creates a 499 error for an operation aborted by context cancellation.
func NewCancelled(op string) *MuseboxError {
	return &MuseboxError{
		Code:    ErrCancelled,
		Status:  499,
		Message: fmt.Sprintf("%s cancelled", op),
		Details: map[string]any{"op": op},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The original error is kept in Details for logging; the message stays generic.
func NewInternal(err error) *MuseboxError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &MuseboxError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if an error is a MuseboxError with the given code, unwrapping as needed.
func Is(err error, code ErrorCode) bool {
	var mErr *MuseboxError
	if stderrors.As(err, &mErr) {
		return mErr.Code == code
	}
	return false
}
