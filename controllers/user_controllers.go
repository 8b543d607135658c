package controllers

import (
	"carrent/config"
	"carrent/dto"
	"carrent/models"
	"carrent/response"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the authenticated user's profile.
func GetProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, toUserResponse(user))
}

// UpdateUser lets a user edit their own profile fields.
func UpdateUser(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		response.NotFound(c)
		return
	}

	updates := map[string]interface{}{}
	if request.Name != "" {
		updates["name"] = request.Name
	}
	if request.PhoneNumber != "" {
		updates["phone_number"] = request.PhoneNumber
	}
	if request.Avatar != "" {
		updates["avatar"] = request.Avatar
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
			response.ServerError(c)
			return
		}
	}

	response.Success(c, toUserResponse(user))
}

// GetUsers lists users for admins, paginated.
func GetUsers(c *gin.Context) {
	page, limit := parsePagination(c)

	var total int64
	if err := config.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var users []models.User
	if err := config.DB.
		Order("id ASC").
		Offset(page * limit).
		Limit(limit).
		Find(&users).Error; err != nil {
		response.ServerError(c)
		return
	}

	userResponses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		userResponses = append(userResponses, toUserResponse(user))
	}

	response.SuccessWithPagination(c, userResponses, page, limit, int(total))
}

// ChangeUserStatus blocks or unblocks a user (admin only).
func ChangeUserStatus(c *gin.Context) {
	var request dto.ChangeUserStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	var user models.User
	if err := config.DB.First(&user, request.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if err := config.DB.Model(&user).Update("status", request.Status).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, toUserResponse(user))
}
