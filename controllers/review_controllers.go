package controllers

import (
	"strconv"

	"carrent/dto"
	"carrent/models"
	"carrent/response"

	"github.com/gin-gonic/gin"
)

func toReviewResponse(review models.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        review.ID,
		RentalID:  review.RentalID,
		CarID:     review.CarID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		User: dto.UserInfo{
			ID:     review.User.ID,
			Name:   review.User.Name,
			Avatar: review.User.Avatar,
		},
	}
}

// CreateReview records the renter's review of an ended rental.
func CreateReview(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	review, err := reviewService.AddReview(userID, request.RentalID, request.Rating, request.Comment)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	invalidateCarCaches(userID)

	response.Success(c, toReviewResponse(*review))
}

// GetCarReviews lists the reviews of one car, newest first.
func GetCarReviews(c *gin.Context) {
	carID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid car id")
		return
	}

	reviews, err := reviewService.ListByCar(uint(carID))
	if err != nil {
		response.ServerError(c)
		return
	}

	reviewResponses := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		reviewResponses = append(reviewResponses, toReviewResponse(review))
	}

	response.SuccessWithTotal(c, reviewResponses, len(reviewResponses))
}

// DeleteReview removes a review (admin only).
func DeleteReview(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid review id")
		return
	}

	if err := reviewService.DeleteReview(uint(reviewID)); err != nil {
		respondDomainError(c, err)
		return
	}

	invalidateCarCaches(userID)

	response.Success(c, nil)
}
