package controllers

import (
	"carrent/config"
	"carrent/dto"
	"carrent/models"
	"carrent/response"

	"github.com/gin-gonic/gin"
)

// GetPendingCars lists listings awaiting approval (admin only).
func GetPendingCars(c *gin.Context) {
	page, limit := parsePagination(c)

	var total int64
	if err := config.DB.Model(&models.Car{}).
		Where("is_approved = ?", false).
		Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var cars []models.Car
	if err := config.DB.Preload("User").
		Where("is_approved = ?", false).
		Order("id ASC").
		Offset(page * limit).
		Limit(limit).
		Find(&cars).Error; err != nil {
		response.ServerError(c)
		return
	}

	carResponses := make([]dto.CarResponse, 0, len(cars))
	for _, car := range cars {
		carResponses = append(carResponses, toCarResponse(car))
	}

	response.SuccessWithPagination(c, carResponses, page, limit, int(total))
}

// ChangeCarApproval approves or rejects a listing and tells its owner
// (admin only).
func ChangeCarApproval(c *gin.Context) {
	var request dto.ChangeCarApprovalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	var car models.Car
	if err := config.DB.First(&car, request.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if err := config.DB.Model(&car).Update("is_approved", request.Approved).Error; err != nil {
		response.ServerError(c)
		return
	}

	if notificationService != nil {
		message := "Your car " + car.Brand + " " + car.Model + " was rejected."
		if request.Approved {
			message = "Your car " + car.Brand + " " + car.Model + " was approved and is now listed."
		}
		notificationService.Notify(car.UserID, message)
	}

	invalidateCarCaches(car.UserID)

	response.Success(c, toCarResponse(car))
}
