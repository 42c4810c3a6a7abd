package container

import (
	"log/slog"

	"github.com/joshua-takyi/eventhub/internal/config"
	"github.com/joshua-takyi/eventhub/internal/middleware"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	// Database clients
	DB            *gorm.DB
	MongoDBClient *mongo.Client

	UserService         *services.UserService
	EventService        *services.EventService
	RegistrationService *services.RegistrationService
	AuthLimiter         *middleware.IPRateLimiter
}

// NewContainer creates a new dependency injection container. mongoDBClient
// may be nil, in which case activity is not recorded.
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	mongoDBClient *mongo.Client,
) *Container {
	// Initialize repositories
	repo := models.GormNewRepo(db)

	var activity models.ActivityRepo = models.NopActivityRepo{}
	if mongoDBClient != nil {
		activity = models.MongodbNewRepo(mongoDBClient, cfg.MongoDBDatabase)
	}

	userService := services.NewUserService(repo, services.AuthSettings{
		AdminInviteKey: cfg.AdminInviteKey,
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       cfg.TokenTTL,
	}, logger)
	eventService := services.NewEventService(repo, repo, repo, activity, logger)
	registrationService := services.NewRegistrationService(repo, repo, repo, activity, logger)

	return &Container{
		Config:              cfg,
		Logger:              logger,
		DB:                  db,
		MongoDBClient:       mongoDBClient,
		UserService:         userService,
		EventService:        eventService,
		RegistrationService: registrationService,
		AuthLimiter:         middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
	}
}
