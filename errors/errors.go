package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an error at the domain level.
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken    ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken    ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidPassword ErrorCode = "INVALID_PASSWORD"
	ErrCodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserExists      ErrorCode = "USER_EXISTS"
	ErrCodeInvalidEmail    ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidPhone    ErrorCode = "INVALID_PHONE"
	ErrCodeInvalidCode     ErrorCode = "INVALID_CODE"
	ErrCodeExpiredCode     ErrorCode = "EXPIRED_CODE"
	ErrCodeInvalidRole     ErrorCode = "INVALID_ROLE"
	ErrCodeNotOwnerOrAdmin ErrorCode = "NOT_OWNER_OR_ADMIN"

	// Car errors
	ErrCodeCarNotFound     ErrorCode = "CAR_NOT_FOUND"
	ErrCodeCarNotAvailable ErrorCode = "CAR_NOT_AVAILABLE"
	ErrCodeCarNotApproved  ErrorCode = "CAR_NOT_APPROVED"
	ErrCodeOwnCarRental    ErrorCode = "CANNOT_RENT_OWN_CAR"
	ErrCodeCarRentedPeriod ErrorCode = "CAR_ALREADY_RENTED_IN_PERIOD"

	// Rental errors
	ErrCodeRentalNotFound    ErrorCode = "RENTAL_NOT_FOUND"
	ErrCodeRentalBadDates    ErrorCode = "RENTAL_END_BEFORE_START"
	ErrCodeInvalidStatus     ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"

	// Review errors
	ErrCodeInvalidRating   ErrorCode = "INVALID_RATING"
	ErrCodeReviewNotFound  ErrorCode = "REVIEW_NOT_FOUND"
	ErrCodeReviewNotEnded  ErrorCode = "REVIEW_FOR_ENDED_RENTALS_ONLY"
	ErrCodeAlreadyReviewed ErrorCode = "ALREADY_REVIEWED"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// AppError carries a domain error code next to a human readable message.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError wrapping an optional cause.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError reports whether err is (or wraps) an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts the AppError from err, if any.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

var (
	// Availability guard, first failing precondition wins
	ErrCarNotFound       = errors.New("car not found")
	ErrCarNotAvailable   = errors.New("car is not available")
	ErrCarNotApproved    = errors.New("car has not been approved")
	ErrCannotRentOwnCar  = errors.New("cannot rent your own car")
	ErrCarRentedInPeriod = errors.New("car already rented in the requested period")

	// Rental lifecycle
	ErrRentalNotFound       = errors.New("rental not found")
	ErrRentalEndBeforeStart = errors.New("rental end date must be after start date")
	ErrInvalidRentalStatus  = errors.New("unrecognized rental status")
	ErrRentalAlreadyClosed  = errors.New("rental already ended or cancelled")
	ErrNotOwnerOrAdmin      = errors.New("requester is neither the car owner nor an admin")

	// Reviews
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrReviewNotFound     = errors.New("review not found")
	ErrReviewForEndedOnly = errors.New("reviews are allowed for ended rentals only")
	ErrAlreadyReviewed    = errors.New("rental already reviewed")

	// Users
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUnauthorized      = errors.New("unauthorized")
)
