package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhub/internal/container"
	"github.com/joshua-takyi/eventhub/internal/handlers"
	"github.com/joshua-takyi/eventhub/internal/middleware"
)

func allowedOrigins(frontendURL string) []string {
	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if frontendURL != "" && frontendURL != origins[0] && frontendURL != origins[1] {
		origins = append(origins, frontendURL)
	}
	return origins
}

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(container.Config.FrontendURL),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "eventhub-api",
			})
		})

		api.GET("/categories", handlers.ListCategories(container.EventService))
	}

	userRoutes := api.Group("/users")
	userRoutes.Use(middleware.RateLimit(container.AuthLimiter))
	{
		userRoutes.POST("/signup", handlers.SignUp(container.UserService))
		userRoutes.POST("/signin", handlers.SignIn(container.UserService))
		userRoutes.POST("/recover-password", handlers.RecoverPassword(container.UserService))
	}

	eventRoutes := api.Group("/events")
	eventRoutes.Use(middleware.OptionalAuth(container.UserService))
	{
		eventRoutes.GET("", handlers.ListEvents(container.EventService))
		eventRoutes.GET("/:id", handlers.GetEvent(container.EventService))
		eventRoutes.GET("/:id/attendees", handlers.ListAttendees(container.EventService, "id"))
		eventRoutes.GET("/:id/activity", handlers.ListActivity(container.EventService))
		eventRoutes.POST("/create", handlers.CreateEvent(container.EventService))
		eventRoutes.POST("/editEvent", handlers.EditEvent(container.EventService))
		eventRoutes.DELETE("/deleteEvent", handlers.DeleteEvent(container.EventService))
	}

	registrationRoutes := api.Group("/registrations")
	registrationRoutes.Use(middleware.OptionalAuth(container.UserService))
	{
		registrationRoutes.POST("/register", handlers.Register(container.RegistrationService))
		registrationRoutes.POST("/unregister", handlers.Unregister(container.RegistrationService))
		registrationRoutes.GET("/:eventId/attendees", handlers.ListAttendees(container.EventService, "eventId"))
	}

	return r
}
