package jobs

import (
	"log"

	"github.com/robfig/cron/v3"
)

// ExpiredRentalCloser force-closes overdue rentals; implemented by
// services.RentalService.
type ExpiredRentalCloser interface {
	SweepExpired() (int, error)
}

var rentalCloser ExpiredRentalCloser

// SetRentalCloser installs the implementation used by the sweep job.
func SetRentalCloser(closer ExpiredRentalCloser) {
	rentalCloser = closer
}

// InitCronJobs registers the recurring jobs and starts the runner.
func InitCronJobs(c *cron.Cron) error {
	// Close overdue rentals once per minute.
	_, err := c.AddFunc("* * * * *", func() {
		if rentalCloser == nil {
			log.Printf("Expiry sweep skipped: rental closer not configured")
			return
		}
		if _, err := rentalCloser.SweepExpired(); err != nil {
			log.Printf("Expiry sweep failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
