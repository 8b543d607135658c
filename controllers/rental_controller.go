package controllers

import (
	"log"

	"carrent/config"
	"carrent/dto"
	"carrent/models"
	"carrent/response"
	"carrent/services"
	"carrent/validator"

	"github.com/gin-gonic/gin"
)

func toRentalResponse(rental models.Rental) dto.RentalResponse {
	return dto.RentalResponse{
		ID: rental.ID,
		Renter: dto.ActorResponse{
			ID:     rental.User.ID,
			Name:   rental.User.Name,
			Email:  rental.User.Email,
			Avatar: rental.User.Avatar,
		},
		Car: dto.RentalCarResponse{
			ID:          rental.Car.ID,
			Brand:       rental.Car.Brand,
			Model:       rental.Car.Model,
			PricePerDay: rental.Car.PricePerDay,
			Longitude:   rental.Car.Longitude,
			Latitude:    rental.Car.Latitude,
		},
		StartDate:  rental.StartDate,
		EndDate:    rental.EndDate,
		TotalPrice: rental.TotalPrice,
		Status:     rental.Status,
		CreatedAt:  rental.CreatedAt,
		UpdatedAt:  rental.UpdatedAt,
	}
}

// CreateRental books a car for the authenticated renter.
func CreateRental(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.CreateRentalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	start, end, err := validator.ParseRentalWindow(request.StartDate, request.EndDate)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	rental, err := rentalService.CreateRental(userID, request.CarID, start, end)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if err := config.DB.Preload("User").Preload("Car").First(rental, rental.ID).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateCarCaches(rental.Car.UserID)

	go func(email string, r models.Rental) {
		if email == "" {
			return
		}
		if err := services.SendRentalEmail(email, r.ID, r.TotalPrice,
			r.StartDate.Format("02/01/2006"), r.EndDate.Format("02/01/2006")); err != nil {
			log.Printf("Failed to send rental confirmation to %s: %v", email, err)
		}
	}(rental.User.Email, *rental)

	response.Success(c, toRentalResponse(*rental))
}

// ChangeRentalStatus ends or cancels a rental (car owner or admin).
func ChangeRentalStatus(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.ChangeRentalStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	rental, err := rentalService.ChangeStatus(request.ID, userID, isAdmin(role), request.Status)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if err := config.DB.Preload("User").Preload("Car").First(rental, rental.ID).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateCarCaches(rental.Car.UserID)

	response.Success(c, toRentalResponse(*rental))
}

// DeleteRental removes a rental (car owner or admin). Active rentals are
// cancelled instead of deleted.
func DeleteRental(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request struct {
		ID uint `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	if err := rentalService.DeleteRental(request.ID, userID, isAdmin(role)); err != nil {
		respondDomainError(c, err)
		return
	}

	response.Success(c, nil)
}

// GetRentalDetail returns one rental. Visible to the renter, the car owner
// and admins.
func GetRentalDetail(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var rental models.Rental
	if err := config.DB.Preload("User").Preload("Car").
		First(&rental, c.Param("id")).Error; err != nil {
		response.NotFound(c)
		return
	}

	if rental.UserID != userID && rental.Car.UserID != userID && !isAdmin(role) {
		response.Forbidden(c)
		return
	}

	response.Success(c, toRentalResponse(rental))
}

// GetMyRentals lists the authenticated user's rentals as a renter.
func GetMyRentals(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var rentals []models.Rental
	if err := config.DB.Preload("User").Preload("Car").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rentals).Error; err != nil {
		response.ServerError(c)
		return
	}

	rentalResponses := make([]dto.RentalResponse, 0, len(rentals))
	for _, rental := range rentals {
		rentalResponses = append(rentalResponses, toRentalResponse(rental))
	}

	response.SuccessWithTotal(c, rentalResponses, len(rentalResponses))
}

// GetRentalsOnMyCars lists rentals booked against the authenticated
// owner's cars.
func GetRentalsOnMyCars(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var rentals []models.Rental
	if err := config.DB.Preload("User").Preload("Car").
		Joins("JOIN cars ON cars.id = rentals.car_id").
		Where("cars.user_id = ?", userID).
		Order("rentals.created_at DESC").
		Find(&rentals).Error; err != nil {
		response.ServerError(c)
		return
	}

	rentalResponses := make([]dto.RentalResponse, 0, len(rentals))
	for _, rental := range rentals {
		rentalResponses = append(rentalResponses, toRentalResponse(rental))
	}

	response.SuccessWithTotal(c, rentalResponses, len(rentalResponses))
}
