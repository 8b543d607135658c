package services

import (
	stderrors "errors"
	"time"

	"carrent/errors"
	"carrent/models"

	"gorm.io/gorm"
)

// CheckCarRentable decides whether renterID may rent the car for the
// [start, end) window. Checks run in a fixed order and the first failing
// precondition wins. The function only reads state; callers creating a
// rental must still re-check availability inside the committing transaction
// because two requests can pass this guard concurrently.
func CheckCarRentable(db *gorm.DB, carID, renterID uint, start, end time.Time) (*models.Car, error) {
	var car models.Car
	if err := db.First(&car, carID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeCarNotFound, "Car not found", errors.ErrCarNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load car", err)
	}

	if !car.IsAvailable {
		return nil, errors.NewAppError(errors.ErrCodeCarNotAvailable, "Car is not available", errors.ErrCarNotAvailable)
	}

	if !car.IsApproved {
		return nil, errors.NewAppError(errors.ErrCodeCarNotApproved, "Car has not been approved", errors.ErrCarNotApproved)
	}

	if car.UserID == renterID {
		return nil, errors.NewAppError(errors.ErrCodeOwnCarRental, "Cannot rent your own car", errors.ErrCannotRentOwnCar)
	}

	// Open-interval overlap: reqStart < existingEnd AND reqEnd > existingStart.
	var overlapping int64
	err := db.Model(&models.Rental{}).
		Where("car_id = ? AND status = ? AND start_date < ? AND end_date > ?",
			car.ID, models.RentalStatusActive, end, start).
		Count(&overlapping).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to check existing rentals", err)
	}
	if overlapping > 0 {
		return nil, errors.NewAppError(errors.ErrCodeCarRentedPeriod, "Car already rented in this period", errors.ErrCarRentedInPeriod)
	}

	return &car, nil
}
