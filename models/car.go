package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

type Car struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"userId"` // owner
	User           User            `json:"user" gorm:"foreignKey:UserID"`
	Brand          string          `json:"brand"`
	Model          string          `json:"model"`
	EngineCapacity float64         `json:"engineCapacity"`
	FuelType       string          `json:"fuelType"`
	Seats          int             `json:"seats"`
	CarType        string          `json:"carType"`
	Features       pq.StringArray  `json:"features" gorm:"type:text[]"`
	Img            json.RawMessage `json:"img" gorm:"type:json"`
	Description    string          `json:"description"`
	Longitude      float64         `json:"longitude"`
	Latitude       float64         `json:"latitude"`
	PricePerDay    int             `json:"pricePerDay"`
	IsAvailable    bool            `json:"isAvailable" gorm:"default:true"`
	IsApproved     bool            `json:"isApproved" gorm:"default:false"`
	AverageRating  float64         `json:"averageRating" gorm:"default:0"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	Rentals        []Rental        `json:"rentals,omitempty" gorm:"foreignKey:CarID"`
	Reviews        []Review        `json:"reviews,omitempty" gorm:"foreignKey:CarID"`
}

func (c *Car) ValidatePrice() error {
	if c.PricePerDay <= 0 {
		return fmt.Errorf("invalid PricePerDay: %d, must be positive", c.PricePerDay)
	}
	return nil
}

func (c *Car) ValidateSeats() error {
	if c.Seats < 1 || c.Seats > 9 {
		return fmt.Errorf("invalid Seats: %d, must be between 1 and 9", c.Seats)
	}
	return nil
}
