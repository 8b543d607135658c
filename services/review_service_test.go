package services

import (
	"testing"

	"carrent/errors"
	"carrent/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(ReviewServiceOptions{
		DB:       db,
		Notifier: NewNotificationService(NotificationServiceOptions{DB: db}),
	})
}

func TestAddReview(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 100)
	rental := seedRental(t, db, renter.ID, car.ID, day(1), day(4), models.RentalStatusEnded)

	review, err := svc.AddReview(renter.ID, rental.ID, 4, "Smooth ride")
	require.NoError(t, err)

	assert.Equal(t, car.ID, review.CarID)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, 4.0, carByID(t, db, car.ID).AverageRating)

	// The car owner is notified.
	var notifications int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", owner.ID).Count(&notifications).Error)
	assert.EqualValues(t, 1, notifications)
}

func TestAddReviewInvalidRating(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := svc.AddReview(1, 1, rating, "")
		assert.ErrorIs(t, err, errors.ErrInvalidRating, "rating %d must be rejected", rating)
	}
}

func TestAddReviewRentalNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	stranger := seedUser(t, db, "stranger@example.com")
	car := seedCar(t, db, owner.ID, 100)
	rental := seedRental(t, db, renter.ID, car.ID, day(1), day(4), models.RentalStatusEnded)

	// Unknown rental.
	_, err := svc.AddReview(renter.ID, rental.ID+1, 5, "")
	assert.ErrorIs(t, err, errors.ErrRentalNotFound)

	// Someone else's rental looks like it does not exist.
	_, err = svc.AddReview(stranger.ID, rental.ID, 5, "")
	assert.ErrorIs(t, err, errors.ErrRentalNotFound)
}

func TestAddReviewRequiresEndedRental(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 100)

	active := seedRental(t, db, renter.ID, car.ID, day(1), day(4), models.RentalStatusActive)
	cancelled := seedRental(t, db, renter.ID, car.ID, day(5), day(8), models.RentalStatusCancelled)

	_, err := svc.AddReview(renter.ID, active.ID, 5, "")
	assert.ErrorIs(t, err, errors.ErrReviewForEndedOnly)

	_, err = svc.AddReview(renter.ID, cancelled.ID, 5, "")
	assert.ErrorIs(t, err, errors.ErrReviewForEndedOnly)
}

func TestAddReviewOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 100)
	rental := seedRental(t, db, renter.ID, car.ID, day(1), day(4), models.RentalStatusEnded)

	_, err := svc.AddReview(renter.ID, rental.ID, 5, "")
	require.NoError(t, err)

	_, err = svc.AddReview(renter.ID, rental.ID, 3, "")
	assert.ErrorIs(t, err, errors.ErrAlreadyReviewed)

	// The average still reflects the single review.
	assert.Equal(t, 5.0, carByID(t, db, car.ID).AverageRating)
}

// A duplicate that lands between the pre-check and the insert hits the
// unique index instead; it must still surface as the already-reviewed
// conflict, not as a database error.
func TestAddReviewConcurrentDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 100)
	rental := seedRental(t, db, renter.ID, car.ID, day(1), day(4), models.RentalStatusEnded)

	// Plant the rival review right after the duplicate pre-check has counted
	// zero rows.
	planted := false
	err := db.Callback().Query().After("gorm:query").Register("rival_review", func(tx *gorm.DB) {
		if planted || tx.Statement.Table != "reviews" {
			return
		}
		planted = true
		tx.Session(&gorm.Session{NewDB: true}).Create(&models.Review{
			RentalID: rental.ID,
			UserID:   renter.ID,
			CarID:    car.ID,
			Rating:   5,
		})
	})
	require.NoError(t, err)
	defer db.Callback().Query().Remove("rival_review")

	_, err = svc.AddReview(renter.ID, rental.ID, 3, "")
	assert.ErrorIs(t, err, errors.ErrAlreadyReviewed)
	assert.True(t, planted, "the rival review must have been inserted")

	// Only the rival's review exists.
	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestReviewServiceLogsWrites(t *testing.T) {
	db := newTestDB(t)
	rec := &recordingLogger{}
	svc := NewReviewService(ReviewServiceOptions{DB: db, Logger: rec})
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 100)
	rental := seedRental(t, db, renter.ID, car.ID, day(1), day(4), models.RentalStatusEnded)

	review, err := svc.AddReview(renter.ID, rental.ID, 4, "")
	require.NoError(t, err)
	require.Len(t, rec.infos, 1)

	require.NoError(t, svc.DeleteReview(review.ID))
	assert.Len(t, rec.infos, 2)
}

func TestAverageRatingRounding(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	owner := seedUser(t, db, "owner@example.com")
	car := seedCar(t, db, owner.ID, 100)

	ratings := []int{3, 4, 4}
	for i, rating := range ratings {
		renter := seedUser(t, db, "renter"+string(rune('a'+i))+"@example.com")
		rental := seedRental(t, db, renter.ID, car.ID, day(1+2*i), day(2+2*i), models.RentalStatusEnded)
		_, err := svc.AddReview(renter.ID, rental.ID, rating, "")
		require.NoError(t, err)
	}

	// (3+4+4)/3 = 3.666..., rounded to two decimals.
	assert.Equal(t, 3.67, carByID(t, db, car.ID).AverageRating)
}

func TestDeleteReviewRecomputesAverage(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	owner := seedUser(t, db, "owner@example.com")
	renterA := seedUser(t, db, "rentera@example.com")
	renterB := seedUser(t, db, "renterb@example.com")
	car := seedCar(t, db, owner.ID, 100)

	rentalA := seedRental(t, db, renterA.ID, car.ID, day(1), day(3), models.RentalStatusEnded)
	rentalB := seedRental(t, db, renterB.ID, car.ID, day(4), day(6), models.RentalStatusEnded)

	reviewA, err := svc.AddReview(renterA.ID, rentalA.ID, 2, "")
	require.NoError(t, err)
	reviewB, err := svc.AddReview(renterB.ID, rentalB.ID, 5, "")
	require.NoError(t, err)
	assert.Equal(t, 3.5, carByID(t, db, car.ID).AverageRating)

	require.NoError(t, svc.DeleteReview(reviewA.ID))
	assert.Equal(t, 5.0, carByID(t, db, car.ID).AverageRating)

	// No reviews left: the average falls back to zero.
	require.NoError(t, svc.DeleteReview(reviewB.ID))
	assert.Equal(t, 0.0, carByID(t, db, car.ID).AverageRating)
}

func TestDeleteReviewNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	err := svc.DeleteReview(99)
	assert.ErrorIs(t, err, errors.ErrReviewNotFound)
}

func TestListByCar(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	owner := seedUser(t, db, "owner@example.com")
	renterA := seedUser(t, db, "rentera@example.com")
	renterB := seedUser(t, db, "renterb@example.com")
	car := seedCar(t, db, owner.ID, 100)
	otherCar := seedCar(t, db, owner.ID, 100)

	rentalA := seedRental(t, db, renterA.ID, car.ID, day(1), day(3), models.RentalStatusEnded)
	rentalB := seedRental(t, db, renterB.ID, otherCar.ID, day(1), day(3), models.RentalStatusEnded)

	_, err := svc.AddReview(renterA.ID, rentalA.ID, 4, "")
	require.NoError(t, err)
	_, err = svc.AddReview(renterB.ID, rentalB.ID, 2, "")
	require.NoError(t, err)

	reviews, err := svc.ListByCar(car.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)
}
