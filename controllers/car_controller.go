package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"carrent/config"
	"carrent/constants"
	"carrent/dto"
	"carrent/models"
	"carrent/response"
	"carrent/services"
	"carrent/validator"

	"github.com/gin-gonic/gin"
	"github.com/schollz/closestmatch"
)

const carsCacheKey = "cars:rentable"

func toCarResponse(car models.Car) dto.CarResponse {
	return dto.CarResponse{
		ID:             car.ID,
		Brand:          car.Brand,
		Model:          car.Model,
		EngineCapacity: car.EngineCapacity,
		FuelType:       car.FuelType,
		Seats:          car.Seats,
		CarType:        car.CarType,
		Features:       car.Features,
		Img:            car.Img,
		Longitude:      car.Longitude,
		Latitude:       car.Latitude,
		PricePerDay:    car.PricePerDay,
		IsAvailable:    car.IsAvailable,
		IsApproved:     car.IsApproved,
		AverageRating:  car.AverageRating,
		Owner: dto.ActorResponse{
			ID:     car.User.ID,
			Name:   car.User.Name,
			Email:  car.User.Email,
			Avatar: car.User.Avatar,
		},
		CreatedAt: car.CreatedAt,
	}
}

// invalidateCarCaches drops the listing caches after any car mutation.
func invalidateCarCaches(triggerUserID uint) {
	if config.RedisClient == nil {
		return
	}
	_ = services.DeleteFromRedis(config.Ctx, config.RedisClient, carsCacheKey)
	_ = services.DeleteFromRedis(config.Ctx, config.RedisClient, fmt.Sprintf("cars:owner:%d", triggerUserID))
}

// GetAllCars lists approved and available cars with filters, fuzzy search,
// sorting and pagination.
func GetAllCars(c *gin.Context) {
	rdb := config.RedisClient

	var allCars []models.Car
	if err := services.GetFromRedis(config.Ctx, rdb, carsCacheKey, &allCars); err != nil || len(allCars) == 0 {
		if err := config.DB.Preload("User").
			Where("is_approved = ? AND is_available = ?", true, true).
			Find(&allCars).Error; err != nil {
			response.ServerError(c)
			return
		}

		if err := services.SetToRedis(config.Ctx, rdb, carsCacheKey, allCars, 10*time.Minute); err != nil {
			log.Printf("Failed to cache car list: %v", err)
		}
	}

	page, limit := parsePagination(c)
	search := c.Query("search")
	fuelFilter := c.Query("fuelType")
	typeFilter := c.Query("carType")
	seatsStr := c.Query("seats")
	minPriceStr := c.Query("minPrice")
	maxPriceStr := c.Query("maxPrice")
	ratingStr := c.Query("rating")
	latStr := c.Query("lat")
	lngStr := c.Query("lng")
	radiusStr := c.Query("radius")
	sortKey := c.DefaultQuery("sort", "")
	desc := c.DefaultQuery("order", "asc") == "desc"

	matcher := buildBrandMatcher(allCars)
	normalizedSearch := services.NormalizeQuery(search)

	filtered := make([]models.Car, 0)
	for _, car := range allCars {
		if search != "" && !services.MatchesBrand(normalizedSearch, car, matcher) {
			continue
		}
		if fuelFilter != "" && car.FuelType != fuelFilter {
			continue
		}
		if typeFilter != "" && car.CarType != typeFilter {
			continue
		}
		if seatsStr != "" {
			if seats, err := strconv.Atoi(seatsStr); err == nil && car.Seats != seats {
				continue
			}
		}
		if minPriceStr != "" {
			if minPrice, err := strconv.Atoi(minPriceStr); err == nil && car.PricePerDay < minPrice {
				continue
			}
		}
		if maxPriceStr != "" {
			if maxPrice, err := strconv.Atoi(maxPriceStr); err == nil && car.PricePerDay > maxPrice {
				continue
			}
		}
		if ratingStr != "" {
			if rating, err := strconv.ParseFloat(ratingStr, 64); err == nil && car.AverageRating < rating {
				continue
			}
		}
		if latStr != "" && lngStr != "" && radiusStr != "" {
			lat, errLat := strconv.ParseFloat(latStr, 64)
			lng, errLng := strconv.ParseFloat(lngStr, 64)
			radius, errRad := strconv.ParseFloat(radiusStr, 64)
			if errLat == nil && errLng == nil && errRad == nil {
				if services.Haversine(lat, lng, car.Latitude, car.Longitude) > radius {
					continue
				}
			}
		}
		filtered = append(filtered, car)
	}

	services.SortCars(filtered, sortKey, desc)

	total := len(filtered)
	start := page * limit
	end := start + limit
	if start >= total {
		filtered = []models.Car{}
	} else if end > total {
		filtered = filtered[start:]
	} else {
		filtered = filtered[start:end]
	}

	carResponses := make([]dto.CarResponse, 0, len(filtered))
	for _, car := range filtered {
		carResponses = append(carResponses, toCarResponse(car))
	}

	response.SuccessWithPagination(c, carResponses, page, limit, total)
}

func buildBrandMatcher(cars []models.Car) *closestmatch.ClosestMatch {
	seen := map[string]bool{}
	brands := make([]string, 0)
	for _, car := range cars {
		brand := services.NormalizeQuery(car.Brand)
		if brand != "" && !seen[brand] {
			seen[brand] = true
			brands = append(brands, brand)
		}
	}
	if len(brands) == 0 {
		return nil
	}
	return services.NewBrandMatcher(brands)
}

// GetMyCars lists the authenticated owner's cars, approved or not.
func GetMyCars(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	cacheKey := fmt.Sprintf("cars:owner:%d", userID)

	var cars []models.Car
	if err := services.GetFromRedis(config.Ctx, config.RedisClient, cacheKey, &cars); err != nil || len(cars) == 0 {
		if err := config.DB.Preload("User").
			Where("user_id = ?", userID).
			Order("id ASC").
			Find(&cars).Error; err != nil {
			response.ServerError(c)
			return
		}

		if err := services.SetToRedis(config.Ctx, config.RedisClient, cacheKey, cars, 10*time.Minute); err != nil {
			log.Printf("Failed to cache owner car list: %v", err)
		}
	}

	carResponses := make([]dto.CarResponse, 0, len(cars))
	for _, car := range cars {
		carResponses = append(carResponses, toCarResponse(car))
	}

	response.SuccessWithTotal(c, carResponses, len(carResponses))
}

// GetCarDetail returns one car with its reviews.
func GetCarDetail(c *gin.Context) {
	id := c.Param("id")

	var car models.Car
	if err := config.DB.Preload("User").
		Preload("Reviews").
		Preload("Reviews.User").
		First(&car, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	reviews := make([]dto.ReviewResponse, 0, len(car.Reviews))
	for _, review := range car.Reviews {
		reviews = append(reviews, toReviewResponse(review))
	}

	response.Success(c, dto.CarDetailResponse{
		CarResponse: toCarResponse(car),
		Description: car.Description,
		Reviews:     reviews,
	})
}

// CreateCar submits a new listing. It starts unapproved and waits for an
// admin.
func CreateCar(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.CreateCarRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	car := models.Car{
		UserID:         userID,
		Brand:          request.Brand,
		Model:          request.Model,
		EngineCapacity: request.EngineCapacity,
		FuelType:       request.FuelType,
		Seats:          request.Seats,
		CarType:        request.CarType,
		Features:       request.Features,
		Description:    request.Description,
		Longitude:      request.Longitude,
		Latitude:       request.Latitude,
		PricePerDay:    request.PricePerDay,
		IsAvailable:    true,
		IsApproved:     false,
	}

	if err := validator.ValidateCar(&car); err != nil {
		respondDomainError(c, err)
		return
	}

	if err := config.DB.Create(&car).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateCarCaches(userID)

	response.Success(c, toCarResponse(car))
}

// UpdateCar lets the owner edit their listing.
func UpdateCar(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.UpdateCarRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	var car models.Car
	if err := config.DB.First(&car, request.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if car.UserID != userID && !isAdmin(role) {
		response.Forbidden(c)
		return
	}

	if request.Brand != "" {
		car.Brand = request.Brand
	}
	if request.Model != "" {
		car.Model = request.Model
	}
	if request.EngineCapacity > 0 {
		car.EngineCapacity = request.EngineCapacity
	}
	if request.FuelType != "" {
		car.FuelType = request.FuelType
	}
	if request.Seats > 0 {
		car.Seats = request.Seats
	}
	if request.CarType != "" {
		car.CarType = request.CarType
	}
	if request.Features != nil {
		car.Features = request.Features
	}
	if request.Description != "" {
		car.Description = request.Description
	}
	if request.Longitude != 0 {
		car.Longitude = request.Longitude
	}
	if request.Latitude != 0 {
		car.Latitude = request.Latitude
	}
	if request.PricePerDay > 0 {
		car.PricePerDay = request.PricePerDay
	}

	if err := validator.ValidateCar(&car); err != nil {
		respondDomainError(c, err)
		return
	}

	if err := config.DB.Save(&car).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateCarCaches(userID)

	response.Success(c, toCarResponse(car))
}

// ChangeCarAvailability toggles the owner's listing on or off. A car with
// an active rental stays unavailable until the rental closes.
func ChangeCarAvailability(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.ChangeCarAvailabilityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	var car models.Car
	if err := config.DB.First(&car, request.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if car.UserID != userID && !isAdmin(role) {
		response.Forbidden(c)
		return
	}

	if request.IsAvailable {
		var active int64
		if err := config.DB.Model(&models.Rental{}).
			Where("car_id = ? AND status = ?", car.ID, constants.RentalStatusActive).
			Count(&active).Error; err != nil {
			response.ServerError(c)
			return
		}
		if active > 0 {
			response.Conflict(c, "Car has an active rental")
			return
		}
	}

	if err := config.DB.Model(&car).Update("is_available", request.IsAvailable).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateCarCaches(userID)

	response.Success(c, nil)
}

// DeleteCar removes a listing (owner or admin). Blocked while an active
// rental references the car.
func DeleteCar(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	id := c.Param("id")

	var car models.Car
	if err := config.DB.First(&car, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	if car.UserID != userID && !isAdmin(role) {
		response.Forbidden(c)
		return
	}

	var active int64
	if err := config.DB.Model(&models.Rental{}).
		Where("car_id = ? AND status = ?", car.ID, constants.RentalStatusActive).
		Count(&active).Error; err != nil {
		response.ServerError(c)
		return
	}
	if active > 0 {
		response.Conflict(c, "Car has an active rental")
		return
	}

	if err := config.DB.Delete(&car).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateCarCaches(userID)

	response.Success(c, nil)
}

// UploadCarImages stores listing photos and attaches their URLs to the car.
func UploadCarImages(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	id := c.PostForm("carId")

	var car models.Car
	if err := config.DB.First(&car, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	if car.UserID != userID && !isAdmin(role) {
		response.Forbidden(c)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "No files")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		response.BadRequest(c, "No files")
		return
	}

	urls, err := services.UploadImages(config.Ctx, config.Cloudinary, files, "cars")
	if err != nil {
		response.ServerError(c)
		return
	}

	img, err := json.Marshal(urls)
	if err != nil {
		response.ServerError(c)
		return
	}

	if err := config.DB.Model(&car).Update("img", json.RawMessage(img)).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateCarCaches(userID)

	response.Success(c, gin.H{"urls": urls})
}
