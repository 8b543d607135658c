package routes

import (
	"carrent/constants"
	"carrent/controllers"
	middlewares "carrent/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers every API endpoint under /api/v1.
func SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	v1.Use(middlewares.SessionMiddleware())

	v1.POST("/auth/register", controllers.RegisterUser)
	v1.POST("/auth/verifyCode", controllers.VerifyCode)
	v1.POST("/auth/login", controllers.Login)
	v1.DELETE("/auth/logout", controllers.Logout)
	v1.POST("/auth/google", controllers.AuthGoogle)
	v1.POST("/auth/forgetPassword", controllers.ForgetPassword)
	v1.POST("/auth/newPassword", controllers.ResetPassword)

	v1.GET("/profile", middlewares.AuthMiddleware(), controllers.GetProfile)
	v1.PUT("/users", middlewares.AuthMiddleware(), controllers.UpdateUser)
	v1.GET("/users", middlewares.AuthMiddleware(constants.RoleAdmin), controllers.GetUsers)
	v1.PUT("/userStatus", middlewares.AuthMiddleware(constants.RoleAdmin), controllers.ChangeUserStatus)

	v1.GET("/cars", controllers.GetAllCars)
	v1.GET("/cars/:id", controllers.GetCarDetail)
	v1.GET("/myCars", middlewares.AuthMiddleware(), controllers.GetMyCars)
	v1.POST("/cars", middlewares.AuthMiddleware(), controllers.CreateCar)
	v1.PUT("/cars", middlewares.AuthMiddleware(), controllers.UpdateCar)
	v1.PUT("/carAvailability", middlewares.AuthMiddleware(), controllers.ChangeCarAvailability)
	v1.DELETE("/cars/:id", middlewares.AuthMiddleware(), controllers.DeleteCar)
	v1.POST("/carImages", middlewares.AuthMiddleware(), controllers.UploadCarImages)

	v1.POST("/rentals", middlewares.AuthMiddleware(), controllers.CreateRental)
	v1.GET("/rentals/:id", middlewares.AuthMiddleware(), controllers.GetRentalDetail)
	v1.PUT("/rentalStatus", middlewares.AuthMiddleware(), controllers.ChangeRentalStatus)
	v1.DELETE("/rentals", middlewares.AuthMiddleware(), controllers.DeleteRental)
	v1.GET("/myRentals", middlewares.AuthMiddleware(), controllers.GetMyRentals)
	v1.GET("/carRentals", middlewares.AuthMiddleware(), controllers.GetRentalsOnMyCars)

	v1.POST("/reviews", middlewares.AuthMiddleware(), controllers.CreateReview)
	v1.GET("/cars/:id/reviews", controllers.GetCarReviews)
	v1.DELETE("/reviews/:id", middlewares.AuthMiddleware(constants.RoleAdmin), controllers.DeleteReview)

	v1.GET("/notifications", middlewares.AuthMiddleware(), controllers.GetMyNotifications)
	v1.PUT("/notificationRead", middlewares.AuthMiddleware(), controllers.MarkNotificationRead)

	v1.GET("/pendingCars", middlewares.AuthMiddleware(constants.RoleAdmin), controllers.GetPendingCars)
	v1.PUT("/carApproval", middlewares.AuthMiddleware(constants.RoleAdmin), controllers.ChangeCarApproval)
}
