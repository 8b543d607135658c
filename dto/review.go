package dto

import "time"

type CreateReviewRequest struct {
	RentalID uint   `json:"rentalId" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

type ReviewResponse struct {
	ID        uint      `json:"id"`
	RentalID  uint      `json:"rentalId"`
	CarID     uint      `json:"carId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	User      UserInfo  `json:"user"`
}

type UserInfo struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
