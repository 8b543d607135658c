package services

import (
	stderrors "errors"
	"fmt"
	"math"

	"carrent/errors"
	"carrent/models"
	"carrent/services/logger"

	"gorm.io/gorm"
)

// ReviewService creates and removes reviews and keeps each car's denormalized
// average rating in step with them.
type ReviewService struct {
	db       *gorm.DB
	log      logger.Logger
	notifier *NotificationService
}

type ReviewServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Notifier *NotificationService
}

func NewReviewService(opts ReviewServiceOptions) *ReviewService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &ReviewService{
		db:       opts.DB,
		log:      l,
		notifier: opts.Notifier,
	}
}

// AddReview records the renter's review of their own ended rental. One
// review per rental and renter; the car's average rating is recomputed in
// the same transaction.
func (s *ReviewService) AddReview(userID, rentalID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRating, "Rating must be between 1 and 5", errors.ErrInvalidRating)
	}

	var rental models.Rental
	err := s.db.Preload("Car").
		Where("id = ? AND user_id = ?", rentalID, userID).
		First(&rental).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeRentalNotFound, "Rental not found", errors.ErrRentalNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load rental", err)
	}

	if rental.Status != models.RentalStatusEnded {
		return nil, errors.NewAppError(errors.ErrCodeReviewNotEnded, "Only ended rentals can be reviewed", errors.ErrReviewForEndedOnly)
	}

	var existing int64
	err = s.db.Model(&models.Review{}).
		Where("rental_id = ? AND user_id = ?", rentalID, userID).
		Count(&existing).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to check existing reviews", err)
	}
	if existing > 0 {
		return nil, errors.NewAppError(errors.ErrCodeAlreadyReviewed, "You have already reviewed this rental", errors.ErrAlreadyReviewed)
	}

	review := models.Review{
		RentalID: rentalID,
		UserID:   userID,
		CarID:    rental.CarID,
		Rating:   rating,
		Comment:  comment,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			// A concurrent duplicate slips past the pre-check and lands on
			// the unique index instead.
			if stderrors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.NewAppError(errors.ErrCodeAlreadyReviewed, "You have already reviewed this rental", errors.ErrAlreadyReviewed)
			}
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to create review", err)
		}
		return recomputeCarRating(tx, rental.CarID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Review %d recorded for car %d", review.ID, review.CarID)

	if s.notifier != nil {
		s.notifier.Notify(rental.Car.UserID, fmt.Sprintf("Your car received a %d-star review.", rating))
	}

	return &review, nil
}

// DeleteReview removes a review and recomputes the car's average rating.
// Admin-only; the role check happens at the route level.
func (s *ReviewService) DeleteReview(reviewID uint) error {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NewAppError(errors.ErrCodeReviewNotFound, "Review not found", errors.ErrReviewNotFound)
		}
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to load review", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Review{}, reviewID).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to delete review", err)
		}
		return recomputeCarRating(tx, review.CarID)
	})
	if err != nil {
		return err
	}

	s.log.Info("Review %d deleted, rating of car %d recomputed", reviewID, review.CarID)
	return nil
}

// ListByCar returns the reviews of a car, newest first.
func (s *ReviewService) ListByCar(carID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Preload("User").
		Where("car_id = ?", carID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// recomputeCarRating rewrites the car's cached average rating from its
// reviews, rounded to two decimals, zero when no reviews remain.
func recomputeCarRating(tx *gorm.DB, carID uint) error {
	var reviews []models.Review
	if err := tx.Where("car_id = ?", carID).Find(&reviews).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to load reviews", err)
	}

	var average float64
	if len(reviews) > 0 {
		total := 0
		for _, review := range reviews {
			total += review.Rating
		}
		average = math.Round(float64(total)/float64(len(reviews))*100) / 100
	}

	if err := tx.Model(&models.Car{}).
		Where("id = ?", carID).
		Update("average_rating", average).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to update average rating", err)
	}
	return nil
}
