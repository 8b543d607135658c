package services

import (
	"fmt"
	"testing"
	"time"

	"carrent/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// recordingLogger captures log lines for assertions.
type recordingLogger struct {
	infos  []string
	errors []string
}

func (l *recordingLogger) Info(format string, v ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Error(format string, v ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Debug(format string, v ...interface{}) {}

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.Rental{},
		&models.Review{},
		&models.Notification{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{
		Name:   "Test User",
		Email:  email,
		Status: 1,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCar(t *testing.T, db *gorm.DB, ownerID uint, pricePerDay int) models.Car {
	t.Helper()

	car := models.Car{
		UserID:      ownerID,
		Brand:       "Toyota",
		Model:       "Corolla",
		Seats:       5,
		PricePerDay: pricePerDay,
		IsAvailable: true,
		IsApproved:  true,
	}
	require.NoError(t, db.Create(&car).Error)
	return car
}

func seedRental(t *testing.T, db *gorm.DB, renterID, carID uint, start, end time.Time, status int) models.Rental {
	t.Helper()

	rental := models.Rental{
		UserID:    renterID,
		CarID:     carID,
		StartDate: start,
		EndDate:   end,
		Status:    status,
	}
	require.NoError(t, db.Create(&rental).Error)
	return rental
}

func carByID(t *testing.T, db *gorm.DB, id uint) models.Car {
	t.Helper()

	var car models.Car
	require.NoError(t, db.First(&car, id).Error)
	return car
}

func rentalByID(t *testing.T, db *gorm.DB, id uint) models.Rental {
	t.Helper()

	var rental models.Rental
	require.NoError(t, db.First(&rental, id).Error)
	return rental
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}
