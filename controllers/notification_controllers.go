package controllers

import (
	stderrors "errors"

	"carrent/dto"
	"carrent/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetMyNotifications lists the authenticated user's notifications.
func GetMyNotifications(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	notifications, err := notificationService.ListByUser(userID)
	if err != nil {
		response.ServerError(c)
		return
	}

	notificationResponses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		notificationResponses = append(notificationResponses, dto.NotificationResponse{
			ID:        notification.ID,
			Message:   notification.Message,
			IsRead:    notification.IsRead,
			CreatedAt: notification.CreatedAt,
		})
	}

	response.SuccessWithTotal(c, notificationResponses, len(notificationResponses))
}

// MarkNotificationRead flips one of the user's notifications to read.
func MarkNotificationRead(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.MarkNotificationReadRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	if err := notificationService.MarkRead(userID, request.ID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, nil)
}
