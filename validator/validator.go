package validator

import (
	"regexp"
	"time"

	"carrent/errors"
	"carrent/models"
)

// ValidateUser checks the fields of a user before registration.
func ValidateUser(user *models.User) error {
	if user.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email must not be empty", nil)
	}

	if !isValidEmail(user.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Invalid email", nil)
	}

	if user.Password == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Password must not be empty", nil)
	}

	if len(user.Password) < 6 {
		return errors.NewAppError(errors.ErrCodeValidation, "Password must have at least 6 characters", nil)
	}

	if user.PhoneNumber != "" && !isValidPhone(user.PhoneNumber) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Invalid phone number", nil)
	}

	if user.Role < 0 || user.Role > 1 {
		return errors.NewAppError(errors.ErrCodeInvalidRole, "Invalid role", nil)
	}

	return nil
}

// ValidateCar checks a car listing before it is stored.
func ValidateCar(car *models.Car) error {
	if car.Brand == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Brand must not be empty", nil)
	}

	if err := car.ValidatePrice(); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, err.Error(), nil)
	}

	if err := car.ValidateSeats(); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, err.Error(), nil)
	}

	if car.Latitude < -90 || car.Latitude > 90 || car.Longitude < -180 || car.Longitude > 180 {
		return errors.NewAppError(errors.ErrCodeValidation, "Invalid coordinates", nil)
	}

	return nil
}

// ParseRentalWindow parses the request dates and enforces end > start.
func ParseRentalWindow(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("02/01/2006", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "Invalid start date", err)
	}

	end, err := time.Parse("02/01/2006", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "Invalid end date", err)
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeRentalBadDates, "End date must be after start date", errors.ErrRentalEndBeforeStart)
	}

	return start, end, nil
}

// ValidateReview checks a review payload.
func ValidateReview(review *models.Review) error {
	if review.RentalID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Rental id must not be empty", nil)
	}

	if review.Rating < 1 || review.Rating > 5 {
		return errors.NewAppError(errors.ErrCodeInvalidRating, "Rating must be between 1 and 5", errors.ErrInvalidRating)
	}

	return nil
}

// ValidateEmail checks an email address.
func ValidateEmail(email string) error {
	if !isValidEmail(email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Invalid email", nil)
	}
	return nil
}

// ValidatePassword checks password strength.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.NewAppError(errors.ErrCodeInvalidPassword, "Password must have at least 6 characters", nil)
	}
	return nil
}

func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func isValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^[0-9]{9,11}$`)
	return phoneRegex.MatchString(phone)
}
