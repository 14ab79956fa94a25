package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes surfaced in the error envelope.
const (
	CodeNotFound             = "NOT_FOUND"
	CodeBadRequest           = "BAD_REQUEST"
	CodeValidation           = "VALIDATION_ERROR"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeConflict             = "CONFLICT"
	CodeInternal             = "INTERNAL_ERROR"
	CodeTooManyRequests      = "TOO_MANY_REQUESTS"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeIdentityInUse        = "IDENTITY_IN_USE"
	CodeMalformedIdentity    = "MALFORMED_IDENTITY"
	CodeChallengeFailed      = "CHALLENGE_FAILED"
	CodeVerificationExpired  = "VERIFICATION_EXPIRED"
	CodeProfileMissing       = "PROFILE_MISSING"
	CodeAuthUnavailable      = "AUTH_UNAVAILABLE"
	CodeSelfOffer            = "SELF_OFFER"
	CodeSelfProposal         = "SELF_PROPOSAL"
	CodeOfferNotPending      = "OFFER_NOT_PENDING"
	CodeVendorRejected       = "VENDOR_REJECTED"
	CodeVendorLocationNotSet = "VENDOR_LOCATION_MISSING"
)

// ErrAuthUnavailable marks a token check that failed for reasons other than the token itself.
var ErrAuthUnavailable = errors.New("auth backend unavailable")

type AppError struct {
	Code    string
	Message string
	Status  int
	Details map[string]string
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    CodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

// Validation carries per-field messages keyed by the JSON/form field name.
func Validation(fields map[string]string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: "Invalid input data",
		Status:  http.StatusBadRequest,
		Details: fields,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Status:  http.StatusConflict,
		Err:     nil,
	}
}

func TooManyRequests(message string, err error) *AppError {
	return &AppError{
		Code:    CodeTooManyRequests,
		Message: message,
		Status:  http.StatusTooManyRequests,
		Err:     err,
	}
}

func InvalidCredentials(message string, err error) *AppError {
	return New(CodeInvalidCredentials, message, http.StatusUnauthorized, err)
}

func IdentityInUse(message string) *AppError {
	return New(CodeIdentityInUse, message, http.StatusConflict, nil)
}

func MalformedIdentity(message string, err error) *AppError {
	return New(CodeMalformedIdentity, message, http.StatusBadRequest, err)
}

func ChallengeFailed(message string, err error) *AppError {
	return New(CodeChallengeFailed, message, http.StatusBadRequest, err)
}

func ProfileMissing() *AppError {
	return New(CodeProfileMissing, "No profile exists for this account", http.StatusUnauthorized, nil)
}
