package errors

import (
	"net/http"

	"accounts/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// Kind groups error codes into the categories callers branch on.
type Kind string

const (
	KindConflict       Kind = "conflict"
	KindAuthentication Kind = "authentication"
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindForbidden      Kind = "forbidden"
	KindRateLimited    Kind = "rate_limited"
	KindInternal       Kind = "internal"
)

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches any BaseError carrying the same error code, so copies made by
// WithDetails still satisfy errors.Is against the predefined values.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the error category
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Account errors
	ErrUserNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrEmailAlreadyRegistered = NewBaseError(
		KindConflict,
		http.StatusConflict,
		"EMAIL_ALREADY_REGISTERED",
		"A user with this email already exists",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"Failed to create user",
		"",
	)

	// Authentication errors. Unknown users and wrong passwords share ErrInvalidCredentials.
	ErrInvalidCredentials = NewBaseError(
		KindAuthentication,
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"User not found or password invalid",
		"",
	)

	ErrAccountInactive = NewBaseError(
		KindAuthentication,
		http.StatusForbidden,
		"ACCOUNT_INACTIVE",
		"User account is inactive",
		"",
	)

	ErrTokenInvalid = NewBaseError(
		KindAuthentication,
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"Invalid or expired token",
		"",
	)

	ErrTooManyLoginAttempts = NewBaseError(
		KindRateLimited,
		http.StatusTooManyRequests,
		"TOO_MANY_LOGIN_ATTEMPTS",
		"Too many login attempts, try again later",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Failed to process password",
		"",
	)

	// OAuth errors
	ErrOAuthTokenInvalid = NewBaseError(
		KindAuthentication,
		http.StatusUnauthorized,
		"OAUTH_TOKEN_INVALID",
		"Invalid ID token",
		"",
	)

	ErrOAuthAccountLinked = NewBaseError(
		KindConflict,
		http.StatusConflict,
		"OAUTH_ACCOUNT_LINKED",
		"This external account is already linked to another user",
		"",
	)

	ErrOAuthNotConfigured = NewBaseError(
		KindInternal,
		http.StatusNotImplemented,
		"OAUTH_NOT_CONFIGURED",
		"External sign-in is not enabled",
		"",
	)

	// Role errors
	ErrRoleNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"ROLE_NOT_FOUND",
		"Role not found",
		"",
	)

	ErrRoleAlreadyExists = NewBaseError(
		KindConflict,
		http.StatusConflict,
		"ROLE_ALREADY_EXISTS",
		"A role with this name or slug already exists",
		"",
	)

	ErrSlugUnavailable = NewBaseError(
		KindConflict,
		http.StatusConflict,
		"SLUG_UNAVAILABLE",
		"Could not find an available slug",
		"",
	)

	// Validation errors
	ErrValidationFailed = NewBaseError(
		KindValidation,
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// ErrTransactionFailed reports a transaction that could not begin or commit;
	// errors returned by the transaction body pass through unchanged.
	ErrTransactionFailed = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrUnauthorized = NewBaseError(
		KindAuthentication,
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		"",
	)

	ErrForbidden = NewBaseError(
		KindForbidden,
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// KindOf returns the category of the first BaseError in err's chain,
// or KindInternal when there is none.
func KindOf(err error) Kind {
	var base *BaseError
	if errors.As(err, &base) {
		return base.kind
	}

	return KindInternal
}

// IsConflict reports whether err is a uniqueness conflict.
func IsConflict(err error) bool {
	return err != nil && KindOf(err) == KindConflict
}

// IsAuthentication reports whether err is a credential or account-state failure.
func IsAuthentication(err error) bool {
	return err != nil && KindOf(err) == KindAuthentication
}

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool {
	return err != nil && KindOf(err) == KindValidation
}

// Validation returns ErrValidationFailed carrying the given details.
func Validation(details string) error {
	return errors.WithStack(ErrValidationFailed.WithDetails(details))
}
