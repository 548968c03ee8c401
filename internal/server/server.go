package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/votelab/evote-api/internal/auth"
	"github.com/votelab/evote-api/internal/config"
	"github.com/votelab/evote-api/internal/domain/user"
	"github.com/votelab/evote-api/internal/handlers"
	"github.com/votelab/evote-api/internal/ledger"
	"github.com/votelab/evote-api/internal/logger"
	"github.com/votelab/evote-api/internal/middleware"
	"github.com/votelab/evote-api/internal/objectstore"
	"github.com/votelab/evote-api/internal/services"
	"github.com/votelab/evote-api/internal/storage/postgres"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	container  postgres.RepositoryContainer
}

// New creates a new server instance
func New(cfg *config.Config, container postgres.RepositoryContainer) *Server {
	return &Server{
		config:    cfg,
		container: container,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	router, err := s.setupRouter()
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: router,

		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting HTTP server", "port", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() (*gin.Engine, error) {
	if s.config.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(s.config.CORS.AllowOrigins, ",")
	if s.config.CORS.AllowOrigins == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowOrigins = nil
	}
	corsConfig.AllowMethods = strings.Split(s.config.CORS.AllowMethods, ",")
	corsConfig.AllowHeaders = strings.Split(s.config.CORS.AllowHeaders, ",")
	router.Use(cors.New(corsConfig))

	tokens := auth.NewTokenIssuer(s.config.JWT.Secret, s.config.JWT.TTL)
	ledgerClient := ledger.FromConfig(s.config)
	if ledgerClient.Enabled() {
		logger.Get().Info("Ledger integration enabled", "contract", s.config.Ledger.ContractAddress)
	} else {
		logger.Get().Info("Ledger integration disabled, votes recorded locally only")
	}

	var photoStore objectstore.Store
	if s.config.ObjectStoreEnabled() {
		store, err := objectstore.New(s.config)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize object store: %w", err)
		}
		photoStore = store
	}

	eventService := services.NewEventService(s.container.Events(), s.container.Votes())
	voteService := services.NewVoteService(s.container.Votes(), s.container.Events(), s.container.Users(), ledgerClient)
	userService := services.NewUserService(s.container.Users(), tokens)

	eventHandler := handlers.NewEventHandler(eventService)
	voteHandler := handlers.NewVoteHandler(voteService)
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	uploadHandler := handlers.NewUploadHandler(photoStore)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Evote API is running",
			"status":  "healthy",
		})
	})

	s.setupAPIRoutes(router, tokens, eventHandler, voteHandler, authHandler, userHandler, uploadHandler)

	return router, nil
}

// setupAPIRoutes configures all API routes
func (s *Server) setupAPIRoutes(
	router *gin.Engine,
	tokens *auth.TokenIssuer,
	eventHandler *handlers.EventHandler,
	voteHandler *handlers.VoteHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	uploadHandler *handlers.UploadHandler,
) {
	api := router.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	users := api.Group("/users", middleware.Authenticate(tokens))
	{
		users.GET("/me", authHandler.Me)
		users.GET("", middleware.RequireRole(user.RoleSuperAdmin), userHandler.GetUsers)
		users.GET("/:id", middleware.RequireRole(user.RoleSuperAdmin), userHandler.GetUserByID)
	}

	events := api.Group("/events", middleware.Authenticate(tokens))
	{
		events.GET("", eventHandler.GetEvents)
		events.GET("/active", eventHandler.GetActiveEvent)
		events.GET("/:id", eventHandler.GetEventByID)
		events.POST("/:id/vote", voteHandler.SubmitVote)

		admin := events.Group("", middleware.RequireRole(user.RoleSuperAdmin))
		{
			admin.POST("", eventHandler.CreateEvent)
			admin.PUT("/:id", eventHandler.UpdateEvent)
			admin.DELETE("/:id", eventHandler.DeleteEvent)
		}
	}

	api.POST("/upload", middleware.Authenticate(tokens), middleware.RequireRole(user.RoleSuperAdmin), uploadHandler.UploadPhoto)
}
