package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"hoa-service/internal/handler"
	"hoa-service/internal/middleware"
	"hoa-service/internal/model"
	"hoa-service/internal/repository"
	"hoa-service/internal/response"
	"hoa-service/internal/service"
	"hoa-service/pkg/config"
	"hoa-service/pkg/database"
	"hoa-service/pkg/jwtutil"
	"hoa-service/pkg/logger"
	"hoa-service/pkg/validate"
	"hoa-service/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: "hoa-service",
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting housing-association service...", zap.String("environment", cfg.Server.Env))

	response.Development = cfg.Server.Env != "production"

	// Initialize database
	db, err := database.Connect(database.DBConfig{
		DSN:             cfg.DB.GetDSN(),
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		LogLevel:        cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility. A missing or weak signing key aborts startup.
	tokens, err := jwtutil.New(&jwtutil.Config{
		AccessSigningKey:  cfg.JWT.AccessSigningKey,
		RefreshSigningKey: cfg.JWT.RefreshSigningKey,
		Issuer:            cfg.JWT.Issuer,
		Audience:          cfg.JWT.Audience,
		AccessTTL:         cfg.JWT.AccessTTL,
		RefreshTTL:        cfg.JWT.RefreshTTL,
	})
	if err != nil {
		log.Fatal("Failed to initialize JWT utility", zap.Error(err))
	}
	log.Info("JWT utility initialized")

	// Repositories share one explicitly constructed database handle.
	users := repository.NewGormUserRepository(db)
	associations := repository.NewGormAssociationRepository(db)
	memberships := repository.NewGormMembershipRepository(db)

	// Services
	authService := service.NewAuthService(users, tokens, log)
	accessService := service.NewAccessService(associations, memberships, users, log)
	associationService := service.NewAssociationService(associations, accessService, log)
	userService := service.NewUserService(users, associations, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	associationHandler := handler.NewAssociationHandler(associationService)
	membershipHandler := handler.NewMembershipHandler(accessService)

	authMiddleware := middleware.NewAuthMiddleware(tokens, users)

	// Initialize Echo framework
	e := echo.New()
	e.Validator = validate.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(authMiddleware.Authenticate)

	// User management
	usersGroup := api.Group("/users")
	usersGroup.GET("/profile", userHandler.GetProfile)
	usersGroup.PATCH("/profile", userHandler.UpdateProfile)
	usersGroup.POST("/change-password", userHandler.ChangePassword)
	usersGroup.DELETE("/:id", userHandler.Delete,
		authMiddleware.RequireSelf(func(c echo.Context) (uint, error) {
			return handler.PathUserID(c)
		}))

	// Associations; per-resource permission checks live in the services
	associationsGroup := api.Group("/associations")
	associationsGroup.POST("", associationHandler.Create, authMiddleware.RequireRole(model.RoleManager))
	associationsGroup.GET("", associationHandler.List)
	associationsGroup.GET("/:id", associationHandler.Get)
	associationsGroup.PATCH("/:id", associationHandler.Update)
	associationsGroup.DELETE("/:id", associationHandler.Delete)

	// Membership roster
	associationsGroup.POST("/:id/members", membershipHandler.Add)
	associationsGroup.GET("/:id/members", membershipHandler.List)
	associationsGroup.DELETE("/:id/members/:userId", membershipHandler.Remove)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
