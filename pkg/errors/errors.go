package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials      = errors.New("unable to authenticate with provided credentials")
	ErrAccountNotVerified      = errors.New("account not yet verified")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrUnauthorized            = errors.New("unauthorized access")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("email already exists")
	ErrUserInactive      = errors.New("user account is inactive")
	ErrInvalidUserRole   = errors.New("invalid user role")

	ErrInvalidInput = errors.New("invalid input data")
	ErrInvalidEmail = errors.New("invalid email provided")
	ErrWeakPassword = errors.New("password does not meet requirements")

	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token provided")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
