package dto

import "time"

type CreateRentalRequest struct {
	CarID     uint   `json:"carId" binding:"required"`
	StartDate string `json:"startDate" binding:"required,rentaldate"` // 02/01/2006
	EndDate   string `json:"endDate" binding:"required,rentaldate"`   // 02/01/2006
}

type ChangeRentalStatusRequest struct {
	ID     uint `json:"id" binding:"required"`
	Status int  `json:"status" binding:"required"`
}

type RentalCarResponse struct {
	ID          uint    `json:"id"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	PricePerDay int     `json:"pricePerDay"`
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
}

type RentalResponse struct {
	ID         uint              `json:"id"`
	Renter     ActorResponse     `json:"renter"`
	Car        RentalCarResponse `json:"car"`
	StartDate  time.Time         `json:"startDate"`
	EndDate    time.Time         `json:"endDate"`
	TotalPrice int               `json:"totalPrice"`
	Status     int               `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}
