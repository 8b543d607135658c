package dto

import "time"

type UserResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Avatar      string    `json:"avatar"`
	Role        int       `json:"role"`
	Status      int       `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UpdateUserRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Avatar      string `json:"avatar"`
}

type ChangeUserStatusRequest struct {
	ID     uint `json:"id" binding:"required"`
	Status int  `json:"status"`
}
