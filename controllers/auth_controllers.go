package controllers

import (
	"log"
	"time"

	"carrent/config"
	"carrent/constants"
	"carrent/dto"
	"carrent/models"
	"carrent/response"
	"carrent/services"
	"carrent/validator"

	"github.com/gin-gonic/gin"
)

func toUserResponse(user models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Avatar:      user.Avatar,
		Role:        user.Role,
		Status:      user.Status,
		CreatedAt:   user.CreatedAt,
	}
}

// RegisterUser creates an unverified account and mails a one-time code.
func RegisterUser(c *gin.Context) {
	var request dto.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	user := models.User{
		Name:        request.Name,
		Email:       request.Email,
		Password:    request.Password,
		PhoneNumber: request.PhoneNumber,
		Role:        constants.RoleUser,
		Status:      constants.UserStatusActive,
	}
	if err := validator.ValidateUser(&user); err != nil {
		respondDomainError(c, err)
		return
	}

	if _, err := services.GetUserByEmail(user.Email); err == nil {
		response.Conflict(c, "Email already registered")
		return
	}

	hashed, err := services.HashPassword(user.Password)
	if err != nil {
		response.ServerError(c)
		return
	}
	user.Password = hashed

	code, err := services.GenerateVerificationCode()
	if err != nil {
		response.ServerError(c)
		return
	}
	user.Code = code
	user.CodeCreatedAt = time.Now()

	if err := config.DB.Create(&user).Error; err != nil {
		response.ServerError(c)
		return
	}

	go func() {
		if err := services.SendVerificationEmail(user.Email, code); err != nil {
			log.Printf("Failed to send verification email to %s: %v", user.Email, err)
		}
	}()

	response.Success(c, toUserResponse(user))
}

// VerifyCode confirms the one-time code and marks the account verified.
func VerifyCode(c *gin.Context) {
	var request dto.VerifyCodeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	user, err := services.GetUserByEmail(request.Email)
	if err != nil {
		response.NotFound(c)
		return
	}

	if user.Code != request.Code {
		response.BadRequest(c, "Invalid verification code")
		return
	}

	if time.Since(user.CodeCreatedAt) > 15*time.Minute {
		response.BadRequest(c, "Verification code expired")
		return
	}

	if err := config.DB.Model(&user).Updates(map[string]interface{}{
		"is_verified": true,
		"code":        "",
	}).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, nil)
}

// Login checks credentials and returns an access token.
func Login(c *gin.Context) {
	var request dto.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	user, err := services.GetUserByEmail(request.Email)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	if err := services.CheckPassword(user.Password, request.Password); err != nil {
		response.Unauthorized(c)
		return
	}

	if user.Status == constants.UserStatusBlocked {
		response.Forbidden(c)
		return
	}

	accessToken, err := services.GenerateToken(services.UserInfo{UserId: user.ID, Role: user.Role}, 60*24*3)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, dto.LoginResponse{
		AccessToken: accessToken,
		User:        toUserResponse(user),
	})
}

// Logout exists for API symmetry; tokens simply expire.
func Logout(c *gin.Context) {
	response.Success(c, nil)
}

// AuthGoogle signs a user in with a Google id token, creating the account
// on first login.
func AuthGoogle(c *gin.Context) {
	var request dto.GoogleAuthRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	payload, err := services.VerifyGoogleIDToken(request.IDToken)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	avatar, _ := payload.Claims["picture"].(string)

	user, err := services.CreateGoogleUser(name, email, avatar)
	if err != nil {
		response.ServerError(c)
		return
	}

	accessToken, err := services.GenerateToken(services.UserInfo{UserId: user.ID, Role: user.Role}, 60*24*3)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, dto.LoginResponse{
		AccessToken: accessToken,
		User:        toUserResponse(user),
	})
}

// ForgetPassword mails a reset code.
func ForgetPassword(c *gin.Context) {
	var request dto.ForgetPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	user, err := services.GetUserByEmail(request.Email)
	if err != nil {
		// Do not reveal whether the email exists.
		response.Success(c, nil)
		return
	}

	code, err := services.GenerateVerificationCode()
	if err != nil {
		response.ServerError(c)
		return
	}

	if err := config.DB.Model(&user).Updates(map[string]interface{}{
		"code":            code,
		"code_created_at": time.Now(),
	}).Error; err != nil {
		response.ServerError(c)
		return
	}

	go func() {
		if err := services.SendVerificationEmail(user.Email, code); err != nil {
			log.Printf("Failed to send reset email to %s: %v", user.Email, err)
		}
	}()

	response.Success(c, nil)
}

// ResetPassword sets a new password after code verification.
func ResetPassword(c *gin.Context) {
	var request dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	user, err := services.GetUserByEmail(request.Email)
	if err != nil {
		response.NotFound(c)
		return
	}

	if user.Code != request.Code || user.Code == "" {
		response.BadRequest(c, "Invalid verification code")
		return
	}

	if time.Since(user.CodeCreatedAt) > 15*time.Minute {
		response.BadRequest(c, "Verification code expired")
		return
	}

	hashed, err := services.HashPassword(request.NewPassword)
	if err != nil {
		response.ServerError(c)
		return
	}

	if err := config.DB.Model(&user).Updates(map[string]interface{}{
		"password": hashed,
		"code":     "",
	}).Error; err != nil {
		response.ServerError(c)
		return
	}

	go func() {
		if err := services.SendNews(user.Email, "Password changed", "Your password has been updated."); err != nil {
			log.Printf("Failed to send confirmation email to %s: %v", user.Email, err)
		}
	}()

	response.Success(c, nil)
}
