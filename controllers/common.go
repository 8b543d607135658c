package controllers

import (
	"strconv"

	"carrent/constants"
	"carrent/errors"
	"carrent/response"
	"carrent/services"

	"github.com/gin-gonic/gin"
)

var (
	rentalService       *services.RentalService
	reviewService       *services.ReviewService
	notificationService *services.NotificationService
)

// InitServices hands the controllers their service instances. Called once
// from main after the database and websocket hub are up.
func InitServices(rentals *services.RentalService, reviews *services.ReviewService, notifications *services.NotificationService) {
	rentalService = rentals
	reviewService = reviews
	notificationService = notifications
}

// currentUser reads the identity placed in the context by AuthMiddleware.
func currentUser(c *gin.Context) (uint, int, bool) {
	userID, ok := c.Get("userID")
	if !ok {
		return 0, 0, false
	}
	userRole, ok := c.Get("userRole")
	if !ok {
		return 0, 0, false
	}
	return userID.(uint), userRole.(int), true
}

func isAdmin(role int) bool {
	return role == constants.RoleAdmin
}

// respondDomainError maps a domain error to the matching HTTP envelope.
func respondDomainError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		response.ServerError(c)
		return
	}

	switch appErr.Code {
	case errors.ErrCodeCarNotFound,
		errors.ErrCodeRentalNotFound,
		errors.ErrCodeReviewNotFound,
		errors.ErrCodeUserNotFound,
		errors.ErrCodeDBNotFound:
		response.NotFound(c)
	case errors.ErrCodeCarNotAvailable,
		errors.ErrCodeCarRentedPeriod,
		errors.ErrCodeAlreadyReviewed:
		response.Conflict(c, appErr.Message)
	case errors.ErrCodeNotOwnerOrAdmin:
		response.Forbidden(c)
	case errors.ErrCodeDBError:
		response.ServerError(c)
	default:
		response.BadRequest(c, appErr.Message)
	}
}

// parsePagination reads page/limit query params with the usual defaults.
func parsePagination(c *gin.Context) (page, limit int) {
	page = 0
	limit = 10
	if pageStr := c.Query("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil && parsed >= 0 {
			page = parsed
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	return page, limit
}
