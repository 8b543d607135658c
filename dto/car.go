package dto

import (
	"encoding/json"
	"time"
)

type CreateCarRequest struct {
	Brand          string   `json:"brand" binding:"required"`
	Model          string   `json:"model" binding:"required"`
	EngineCapacity float64  `json:"engineCapacity" binding:"required"`
	FuelType       string   `json:"fuelType" binding:"required"`
	Seats          int      `json:"seats" binding:"required,min=1,max=9"`
	CarType        string   `json:"carType" binding:"required"`
	Features       []string `json:"features"`
	Description    string   `json:"description"`
	Longitude      float64  `json:"longitude"`
	Latitude       float64  `json:"latitude"`
	PricePerDay    int      `json:"pricePerDay" binding:"required,min=1"`
}

type UpdateCarRequest struct {
	ID             uint     `json:"id" binding:"required"`
	Brand          string   `json:"brand"`
	Model          string   `json:"model"`
	EngineCapacity float64  `json:"engineCapacity"`
	FuelType       string   `json:"fuelType"`
	Seats          int      `json:"seats"`
	CarType        string   `json:"carType"`
	Features       []string `json:"features"`
	Description    string   `json:"description"`
	Longitude      float64  `json:"longitude"`
	Latitude       float64  `json:"latitude"`
	PricePerDay    int      `json:"pricePerDay"`
}

type CarResponse struct {
	ID             uint            `json:"id"`
	Brand          string          `json:"brand"`
	Model          string          `json:"model"`
	EngineCapacity float64         `json:"engineCapacity"`
	FuelType       string          `json:"fuelType"`
	Seats          int             `json:"seats"`
	CarType        string          `json:"carType"`
	Features       []string        `json:"features"`
	Img            json.RawMessage `json:"img"`
	Longitude      float64         `json:"longitude"`
	Latitude       float64         `json:"latitude"`
	PricePerDay    int             `json:"pricePerDay"`
	IsAvailable    bool            `json:"isAvailable"`
	IsApproved     bool            `json:"isApproved"`
	AverageRating  float64         `json:"averageRating"`
	Owner          ActorResponse   `json:"owner"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type CarDetailResponse struct {
	CarResponse
	Description string           `json:"description"`
	Reviews     []ReviewResponse `json:"reviews"`
}

type ChangeCarApprovalRequest struct {
	ID       uint `json:"id" binding:"required"`
	Approved bool `json:"approved"`
}

type ChangeCarAvailabilityRequest struct {
	ID          uint `json:"id" binding:"required"`
	IsAvailable bool `json:"isAvailable"`
}
