package dto

import "time"

type NotificationResponse struct {
	ID        uint      `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type MarkNotificationReadRequest struct {
	ID uint `json:"id" binding:"required"`
}
