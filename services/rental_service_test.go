package services

import (
	"testing"
	"time"

	"carrent/errors"
	"carrent/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRentalService(db *gorm.DB) *RentalService {
	return NewRentalService(RentalServiceOptions{
		DB:       db,
		Notifier: NewNotificationService(NotificationServiceOptions{DB: db}),
	})
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"three full days", day(1), day(4), 3},
		{"exactly one day", day(1), day(2), 1},
		{"under a day rounds up to one", day(1), day(1).Add(6 * time.Hour), 1},
		{"36 hours floors to one day", day(1), day(1).Add(36 * time.Hour), 1},
		{"49 hours floors to two days", day(1), day(1).Add(49 * time.Hour), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(tt.start, tt.end))
		})
	}
}

func TestCreateRental(t *testing.T) {
	db := newTestDB(t)
	svc := newRentalService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 150)

	rental, err := svc.CreateRental(renter.ID, car.ID, day(1), day(4))
	require.NoError(t, err)

	assert.Equal(t, models.RentalStatusActive, rental.Status)
	assert.Equal(t, 3*150, rental.TotalPrice)
	assert.False(t, carByID(t, db, car.ID).IsAvailable, "booked car must be unavailable")

	// The owner is told about the booking.
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", owner.ID).Find(&notifications).Error)
	assert.Len(t, notifications, 1)
}

func TestCreateRentalMinimumOneDay(t *testing.T) {
	db := newTestDB(t)
	svc := newRentalService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 200)

	rental, err := svc.CreateRental(renter.ID, car.ID, day(1), day(1).Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 200, rental.TotalPrice)
}

func TestCreateRentalEndBeforeStart(t *testing.T) {
	db := newTestDB(t)
	svc := newRentalService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 100)

	_, err := svc.CreateRental(renter.ID, car.ID, day(4), day(1))
	assert.ErrorIs(t, err, errors.ErrRentalEndBeforeStart)

	_, err = svc.CreateRental(renter.ID, car.ID, day(4), day(4))
	assert.ErrorIs(t, err, errors.ErrRentalEndBeforeStart)

	// Nothing was written and the car is untouched.
	var count int64
	require.NoError(t, db.Model(&models.Rental{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.True(t, carByID(t, db, car.ID).IsAvailable)
}

func TestCreateRentalCarAlreadyBooked(t *testing.T) {
	db := newTestDB(t)
	svc := newRentalService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	other := seedUser(t, db, "other@example.com")
	car := seedCar(t, db, owner.ID, 100)

	_, err := svc.CreateRental(renter.ID, car.ID, day(1), day(4))
	require.NoError(t, err)

	_, err = svc.CreateRental(other.ID, car.ID, day(10), day(12))
	assert.ErrorIs(t, err, errors.ErrCarNotAvailable)
}

// A rival booking that lands between the guard's read and the conditional
// update leaves the update with zero affected rows. The losing request must
// come back as a conflict with no rental inserted.
func TestCreateRentalLosesRace(t *testing.T) {
	db := newTestDB(t)
	svc := newRentalService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 100)

	// Flip the availability flag right after the guard has loaded the car,
	// the way a concurrent booking would.
	stolen := false
	err := db.Callback().Query().After("gorm:query").Register("rival_booking", func(tx *gorm.DB) {
		if stolen || tx.Statement.Table != "cars" {
			return
		}
		stolen = true
		tx.Session(&gorm.Session{NewDB: true}).
			Table("cars").
			Where("id = ?", car.ID).
			Update("is_available", false)
	})
	require.NoError(t, err)
	defer db.Callback().Query().Remove("rival_booking")

	_, err = svc.CreateRental(renter.ID, car.ID, day(1), day(4))
	assert.ErrorIs(t, err, errors.ErrCarNotAvailable)
	assert.True(t, stolen, "the rival update must have fired")

	var count int64
	require.NoError(t, db.Model(&models.Rental{}).Count(&count).Error)
	assert.Zero(t, count, "the losing booking must not insert a rental")
}

func TestChangeStatusEnd(t *testing.T) {
	db := newTestDB(t)
	svc := newRentalService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 100)

	rental, err := svc.CreateRental(renter.ID, car.ID, day(1), day(4))
	require.NoError(t, err)

	updated, err := svc.ChangeStatus(rental.ID, owner.ID, false, models.RentalStatusEnded)
	require.NoError(t, err)

	assert.Equal(t, models.RentalStatusEnded, updated.Status)
	assert.Equal(t, models.RentalStatusEnded, rentalByID(t, db, rental.ID).Status)
	assert.True(t, carByID(t, db, car.ID).IsAvailable, "closing a rental frees the car")
}

func TestChangeStatusCancelFreesCar(t *testing.T) {
	db := newTestDB(t)
	svc := newRentalService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 100)

	rental, err := svc.CreateRental(renter.ID, car.ID, day(1), day(4))
	require.NoError(t, err)

	_, err = svc.ChangeStatus(rental.ID, owner.ID, false, models.RentalStatusCancelled)
	require.NoError(t, err)
	assert.True(t, carByID(t, db, car.ID).IsAvailable)
}

func TestChangeStatusAuthz(t *testing.T) {
	db := newTestDB(t)
	svc := newRentalService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	stranger := seedUser(t, db, "stranger@example.com")
	car := seedCar(t, db, owner.ID, 100)

	rental, err := svc.CreateRental(renter.ID, car.ID, day(1), day(4))
	require.NoError(t, err)

	// Neither a stranger nor the renter may close the rental.
	_, err = svc.ChangeStatus(rental.ID, stranger.ID, false, models.RentalStatusEnded)
	assert.ErrorIs(t, err, errors.ErrNotOwnerOrAdmin)
	_, err = svc.ChangeStatus(rental.ID, renter.ID, false, models.RentalStatusEnded)
	assert.ErrorIs(t, err, errors.ErrNotOwnerOrAdmin)

	// An admin may, regardless of ownership.
	_, err = svc.ChangeStatus(rental.ID, stranger.ID, true, models.RentalStatusEnded)
	assert.NoError(t, err)
}

func TestChangeStatusUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newRentalService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 100)

	rental, err := svc.CreateRental(renter.ID, car.ID, day(1), day(4))
	require.NoError(t, err)

	for _, status := range []int{0, -1, 4, 7} {
		_, err := svc.ChangeStatus(rental.ID, owner.ID, false, status)
		assert.ErrorIs(t, err, errors.ErrInvalidRentalStatus, "status %d must be rejected", status)
	}

	// The rejected writes left no trace.
	assert.Equal(t, models.RentalStatusActive, rentalByID(t, db, rental.ID).Status)
}

func TestChangeStatusTerminalIsFinal(t *testing.T) {
	db := newTestDB(t)
	svc := newRentalService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 100)

	rental, err := svc.CreateRental(renter.ID, car.ID, day(1), day(4))
	require.NoError(t, err)

	_, err = svc.ChangeStatus(rental.ID, owner.ID, false, models.RentalStatusEnded)
	require.NoError(t, err)

	// Ended rentals cannot move again, not even back to active.
	_, err = svc.ChangeStatus(rental.ID, owner.ID, false, models.RentalStatusCancelled)
	assert.ErrorIs(t, err, errors.ErrRentalAlreadyClosed)
	_, err = svc.ChangeStatus(rental.ID, owner.ID, false, models.RentalStatusEnded)
	assert.ErrorIs(t, err, errors.ErrRentalAlreadyClosed)
	_, err = svc.ChangeStatus(rental.ID, owner.ID, false, models.RentalStatusActive)
	assert.ErrorIs(t, err, errors.ErrRentalAlreadyClosed)

	assert.Equal(t, models.RentalStatusEnded, rentalByID(t, db, rental.ID).Status)
	assert.True(t, carByID(t, db, car.ID).IsAvailable)
}

func TestChangeStatusNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newRentalService(db)

	_, err := svc.ChangeStatus(99, 1, true, models.RentalStatusEnded)
	assert.ErrorIs(t, err, errors.ErrRentalNotFound)
}

func TestDeleteRentalActiveCancels(t *testing.T) {
	db := newTestDB(t)
	svc := newRentalService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 100)

	rental, err := svc.CreateRental(renter.ID, car.ID, day(1), day(4))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRental(rental.ID, owner.ID, false))

	// The record survives as cancelled and the car is free again.
	assert.Equal(t, models.RentalStatusCancelled, rentalByID(t, db, rental.ID).Status)
	assert.True(t, carByID(t, db, car.ID).IsAvailable)
}

func TestDeleteRentalClosedHardDeletes(t *testing.T) {
	db := newTestDB(t)
	svc := newRentalService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 100)

	rental := seedRental(t, db, renter.ID, car.ID, day(1), day(4), models.RentalStatusEnded)

	require.NoError(t, svc.DeleteRental(rental.ID, owner.ID, false))

	var count int64
	require.NoError(t, db.Model(&models.Rental{}).Where("id = ?", rental.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteRentalAuthz(t *testing.T) {
	db := newTestDB(t)
	svc := newRentalService(db)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 100)
	rental := seedRental(t, db, renter.ID, car.ID, day(1), day(4), models.RentalStatusEnded)

	err := svc.DeleteRental(rental.ID, renter.ID, false)
	assert.ErrorIs(t, err, errors.ErrNotOwnerOrAdmin)
}

func TestSweepExpired(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	carA := seedCar(t, db, owner.ID, 100)
	carB := seedCar(t, db, owner.ID, 100)
	carC := seedCar(t, db, owner.ID, 100)

	expiredA := seedRental(t, db, renter.ID, carA.ID, day(1), day(3), models.RentalStatusActive)
	expiredB := seedRental(t, db, renter.ID, carB.ID, day(2), day(5), models.RentalStatusActive)
	current := seedRental(t, db, renter.ID, carC.ID, day(9), day(20), models.RentalStatusActive)
	require.NoError(t, db.Model(&models.Car{}).Where("id IN ?", []uint{carA.ID, carB.ID, carC.ID}).
		Update("is_available", false).Error)

	svc := NewRentalService(RentalServiceOptions{
		DB:       db,
		Notifier: NewNotificationService(NotificationServiceOptions{DB: db}),
		Now:      func() time.Time { return day(10) },
	})

	closed, err := svc.SweepExpired()
	require.NoError(t, err)
	assert.Equal(t, 2, closed)

	assert.Equal(t, models.RentalStatusEnded, rentalByID(t, db, expiredA.ID).Status)
	assert.Equal(t, models.RentalStatusEnded, rentalByID(t, db, expiredB.ID).Status)
	assert.Equal(t, models.RentalStatusActive, rentalByID(t, db, current.ID).Status)

	assert.True(t, carByID(t, db, carA.ID).IsAvailable)
	assert.True(t, carByID(t, db, carB.ID).IsAvailable)
	assert.False(t, carByID(t, db, carC.ID).IsAvailable)

	// The renter hears about each closed rental.
	var notifications int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", renter.ID).Count(&notifications).Error)
	assert.EqualValues(t, 2, notifications)
}

func TestSweepExpiredBoundary(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 100)

	// Ends exactly now: not yet expired.
	rental := seedRental(t, db, renter.ID, car.ID, day(1), day(10), models.RentalStatusActive)

	svc := NewRentalService(RentalServiceOptions{
		DB:  db,
		Now: func() time.Time { return day(10) },
	})

	closed, err := svc.SweepExpired()
	require.NoError(t, err)
	assert.Zero(t, closed)
	assert.Equal(t, models.RentalStatusActive, rentalByID(t, db, rental.ID).Status)
}

func TestSweepExpiredIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	renter := seedUser(t, db, "renter@example.com")
	car := seedCar(t, db, owner.ID, 100)
	seedRental(t, db, renter.ID, car.ID, day(1), day(3), models.RentalStatusActive)

	svc := NewRentalService(RentalServiceOptions{
		DB:  db,
		Now: func() time.Time { return day(10) },
	})

	closed, err := svc.SweepExpired()
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	closed, err = svc.SweepExpired()
	require.NoError(t, err)
	assert.Zero(t, closed, "a second sweep finds nothing to close")
	assert.True(t, carByID(t, db, car.ID).IsAvailable)
}
