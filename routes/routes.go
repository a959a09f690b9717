package routes

import (
	"net/http"
	"time"

	"hemovida/handlers"
	"hemovida/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterCampaignRoutes(r, hb)
	RegisterCenterRoutes(r, hb)
	RegisterHealthRoute(r)
}

// RegisterUserRoutes registers account and profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/me", hb.GetProfileHandler)
		api.GET("/me/status", hb.GetStatusHandler)
		api.PUT("/me", hb.UpdateProfileHandler)
		api.POST("/me/questionnaire", hb.SubmitQuestionnaireHandler)
		api.PUT("/me/device", hb.SetDeviceTokenHandler)
		api.DELETE("/me", hb.DeleteUserHandler)
		api.DELETE("/logout", hb.LogoutHandler)
	}
}

// RegisterAppointmentRoutes registers the booking and lifecycle endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("", hb.BookAppointmentHandler)
		api.GET("", hb.AppointmentHistoryHandler)
		api.GET("/current", hb.GetCurrentAppointmentHandler)
		api.DELETE("/current", hb.DiscardAppointmentHandler)
		api.DELETE("/:id", hb.CancelAppointmentHandler)
		api.GET("/stream", hb.AppointmentStreamHandler)

		// Lifecycle transitions driven by clinic staff.
		staff := api.Group("")
		staff.Use(middleware.StaffOnlyMiddleware(hb.UserRepo))
		staff.PUT("/:id/confirm", hb.ConfirmAppointmentHandler)
		staff.PUT("/:id/complete", hb.CompleteAppointmentHandler)
	}
}

// RegisterCampaignRoutes registers the home-feed endpoints.
func RegisterCampaignRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/campaigns")
	{
		api.GET("", hb.ListCampaignsHandler)
		api.GET("/stream", hb.CampaignStreamHandler)

		staff := api.Group("")
		staff.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		staff.Use(middleware.StaffOnlyMiddleware(hb.UserRepo))
		staff.POST("", hb.CreateCampaignHandler)
		staff.PUT("/:id", hb.UpdateCampaignHandler)
	}
}

// RegisterCenterRoutes registers the center-directory endpoints.
func RegisterCenterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/centers")
	{
		api.GET("", hb.ListCentersHandler)
		api.GET("/:id/slots", hb.CenterSlotsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm HemoVida"})
	})
}
