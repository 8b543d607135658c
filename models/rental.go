package models

import (
	"time"
)

// Rental status constants
const (
	RentalStatusActive    = 1
	RentalStatusEnded     = 2
	RentalStatusCancelled = 3
)

type Rental struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId"` // renter
	User       User      `json:"user" gorm:"foreignKey:UserID"`
	CarID      uint      `json:"carId"`
	Car        Car       `json:"car" gorm:"foreignKey:CarID"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	TotalPrice int       `json:"totalPrice"` // computed once at creation
	Status     int       `json:"status" gorm:"default:1"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Overlaps reports whether the rental's [start, end) window intersects the
// given [start, end) window.
func (r *Rental) Overlaps(start, end time.Time) bool {
	return start.Before(r.EndDate) && end.After(r.StartDate)
}
