package services

import (
	stderrors "errors"
	"fmt"
	"time"

	"carrent/constants"
	"carrent/errors"
	"carrent/models"
	"carrent/services/logger"

	"gorm.io/gorm"
)

// RentalService owns the rental lifecycle. Every write that touches a
// rental's status or a car's availability flag goes through here, so the
// invariant "car unavailable iff an active rental references it" has a
// single enforcement point.
type RentalService struct {
	db       *gorm.DB
	log      logger.Logger
	notifier *NotificationService
	now      func() time.Time
}

type RentalServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Notifier *NotificationService
	Now      func() time.Time // injectable clock, defaults to time.Now
}

func NewRentalService(opts RentalServiceOptions) *RentalService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &RentalService{
		db:       opts.DB,
		log:      l,
		notifier: opts.Notifier,
		now:      now,
	}
}

// RentalDays converts a [start, end) window to billable days: whole 24h
// periods, never less than one.
func RentalDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}

// CreateRental books the car for the renter. The availability guard runs
// inside the transaction and the availability flag is flipped with a
// conditional update, so two concurrent requests for the same car cannot
// both commit: the second sees zero rows affected and fails.
func (s *RentalService) CreateRental(renterID, carID uint, start, end time.Time) (*models.Rental, error) {
	if !end.After(start) {
		return nil, errors.NewAppError(errors.ErrCodeRentalBadDates, "End date must be after start date", errors.ErrRentalEndBeforeStart)
	}

	var rental models.Rental
	var ownerID uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		car, err := CheckCarRentable(tx, carID, renterID, start, end)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Car{}).
			Where("id = ? AND is_available = ?", car.ID, true).
			Update("is_available", false)
		if res.Error != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to reserve car", res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost the race against a concurrent booking.
			return errors.NewAppError(errors.ErrCodeCarNotAvailable, "Car is not available", errors.ErrCarNotAvailable)
		}

		rental = models.Rental{
			UserID:     renterID,
			CarID:      car.ID,
			StartDate:  start,
			EndDate:    end,
			TotalPrice: RentalDays(start, end) * car.PricePerDay,
			Status:     models.RentalStatusActive,
		}
		if err := tx.Create(&rental).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to create rental", err)
		}

		ownerID = car.UserID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(ownerID, fmt.Sprintf(
			"Your car was rented from %s to %s (rental #%d).",
			start.Format("02/01/2006"), end.Format("02/01/2006"), rental.ID))
	}

	return &rental, nil
}

// ChangeStatus moves a rental to newStatus on behalf of requesterID. Only
// the car owner or an admin may do this. The status set is closed and
// transitions out of a terminal state are rejected. Closing a rental frees
// the car unconditionally, which keeps repeated closes idempotent on the
// availability flag.
func (s *RentalService) ChangeStatus(rentalID, requesterID uint, isAdmin bool, newStatus int) (*models.Rental, error) {
	if !constants.IsValidRentalStatus(newStatus) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidStatus, "Unrecognized rental status", errors.ErrInvalidRentalStatus)
	}

	var rental models.Rental
	if err := s.db.Preload("Car").First(&rental, rentalID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeRentalNotFound, "Rental not found", errors.ErrRentalNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load rental", err)
	}

	if rental.Car.UserID != requesterID && !isAdmin {
		return nil, errors.NewAppError(errors.ErrCodeNotOwnerOrAdmin, "Only the car owner or an admin may change the rental status", errors.ErrNotOwnerOrAdmin)
	}

	if err := models.ApplyStatus(&rental, newStatus); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidTransition, err.Error(), errors.ErrRentalAlreadyClosed)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Rental{}).
			Where("id = ?", rental.ID).
			Update("status", rental.Status).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to update rental status", err)
		}

		if constants.IsTerminalRentalStatus(rental.Status) {
			if err := tx.Model(&models.Car{}).
				Where("id = ?", rental.CarID).
				Update("is_available", true).Error; err != nil {
				return errors.NewAppError(errors.ErrCodeDBError, "Failed to free car", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(rental.UserID, fmt.Sprintf("Your rental #%d status changed to %s.", rental.ID, statusLabel(rental.Status)))
	}

	return &rental, nil
}

// DeleteRental removes a rental on behalf of requesterID (owner or admin).
// An active rental is soft-cancelled so the car is freed and the record
// kept; closed rentals are deleted outright.
func (s *RentalService) DeleteRental(rentalID, requesterID uint, isAdmin bool) error {
	var rental models.Rental
	if err := s.db.Preload("Car").First(&rental, rentalID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NewAppError(errors.ErrCodeRentalNotFound, "Rental not found", errors.ErrRentalNotFound)
		}
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to load rental", err)
	}

	if rental.Car.UserID != requesterID && !isAdmin {
		return errors.NewAppError(errors.ErrCodeNotOwnerOrAdmin, "Only the car owner or an admin may delete the rental", errors.ErrNotOwnerOrAdmin)
	}

	if rental.Status == models.RentalStatusActive {
		_, err := s.ChangeStatus(rentalID, requesterID, isAdmin, models.RentalStatusCancelled)
		return err
	}

	if err := s.db.Delete(&models.Rental{}, rentalID).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to delete rental", err)
	}
	return nil
}

// SweepExpired force-closes every active rental whose end date is in the
// past. Each rental is processed in its own transaction so one failure
// cannot block the rest of the batch. Returns the number of rentals closed.
func (s *RentalService) SweepExpired() (int, error) {
	now := s.now()

	var expired []models.Rental
	err := s.db.Where("status = ? AND end_date < ?", models.RentalStatusActive, now).
		Find(&expired).Error
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDBError, "Failed to scan for expired rentals", err)
	}

	closed := 0
	for _, rental := range expired {
		if err := s.closeExpired(rental); err != nil {
			s.log.Error("Failed to close expired rental %d: %v", rental.ID, err)
			continue
		}
		closed++

		if s.notifier != nil {
			s.notifier.Notify(rental.UserID, fmt.Sprintf("Your rental #%d has ended.", rental.ID))
		}
	}

	if closed > 0 {
		s.log.Info("Expiry sweep closed %d rental(s)", closed)
	}
	return closed, nil
}

func (s *RentalService) closeExpired(rental models.Rental) error {
	if err := models.ApplyStatus(&rental, models.RentalStatusEnded); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Rental{}).
			Where("id = ?", rental.ID).
			Update("status", rental.Status).Error; err != nil {
			return err
		}
		return tx.Model(&models.Car{}).
			Where("id = ?", rental.CarID).
			Update("is_available", true).Error
	})
}

func statusLabel(status int) string {
	switch status {
	case models.RentalStatusActive:
		return "active"
	case models.RentalStatusEnded:
		return "ended"
	case models.RentalStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
