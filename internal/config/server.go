package config

import (
	"FaceGeometry/database/postgres"
	analysisHandler "FaceGeometry/internal/api/analysis/handler"
	analysisRepository "FaceGeometry/internal/api/analysis/repository"
	analysisService "FaceGeometry/internal/api/analysis/service"
	authHandler "FaceGeometry/internal/api/auth/handler"
	authRepository "FaceGeometry/internal/api/auth/repository"
	authService "FaceGeometry/internal/api/auth/service"
	profileHandler "FaceGeometry/internal/api/profile/handler"
	profileRepository "FaceGeometry/internal/api/profile/repository"
	profileService "FaceGeometry/internal/api/profile/service"
	"FaceGeometry/internal/middleware"
	"FaceGeometry/pkg/bcrypt"
	contextPkg "FaceGeometry/pkg/context"
	"FaceGeometry/pkg/redis"
	"FaceGeometry/pkg/s3"
	"FaceGeometry/pkg/utils"
	websocketPkg "FaceGeometry/pkg/websocket"
	"context"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"os"
	"time"
)

type ServerOption func(*Server) error

type Server struct {
	engine        *fiber.App
	db            *sqlx.DB
	log           *logrus.Logger
	middleware    middleware.Middleware
	validator     *validator.Validate
	utils         utils.IUtils
	bcryptUtils   bcrypt.IBcrypt
	handlers      []handler
	redisServer   redis.IRedis
	meshWebsocket websocketPkg.IWebsocket
	s3Client      s3.ItfS3
	authServices  authService.AuthService
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithWebSocket(webSocket websocketPkg.IWebsocket) ServerOption {
	return func(s *Server) error {
		s.meshWebsocket = webSocket
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Operators
	authRepo := authRepository.New(s.db, s.log)
	s.authServices = authService.New(s.log, authRepo, s.bcryptUtils, s.utils)
	authHandlers := authHandler.New(s.log, s.authServices, s.validator, s.middleware)

	// Profiles
	profileRepo := profileRepository.New(s.db, s.log)
	profileServices := profileService.NewProfileService(s.log, profileRepo, s.redisServer, s.utils)
	profileHandlers := profileHandler.New(s.log, s.validator, s.middleware, profileServices)

	// Analysis
	analysisRepo := analysisRepository.New(s.db, s.log)
	analysisServices := analysisService.NewAnalysisService(s.log, profileServices, analysisRepo, s.meshWebsocket, s.s3Client, s.utils)
	analysisHandlers := analysisHandler.New(s.log, s.validator, s.middleware, analysisServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, profileHandlers, analysisHandlers)
}

// BootstrapOperator creates the operator named by OPERATOR_BOOTSTRAP_EMAIL and
// OPERATOR_BOOTSTRAP_API_KEY so a fresh database can issue its first token.
func (s *Server) BootstrapOperator() error {
	email := os.Getenv("OPERATOR_BOOTSTRAP_EMAIL")
	apiKey := os.Getenv("OPERATOR_BOOTSTRAP_API_KEY")
	if email == "" || apiKey == "" || s.authServices == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), "bootstrap"), 10*time.Second)
	defer cancel()

	return s.authServices.Operator().EnsureOperator(ctx, email, "bootstrap", apiKey)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware)
	router := s.engine.Group("/api/v1")

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown() error {
	if s.meshWebsocket != nil {
		s.meshWebsocket.CloseConnections()
	}

	err := s.engine.ShutdownWithTimeout(10 * time.Second)

	if s.db != nil {
		if dbErr := s.db.Close(); dbErr != nil && err == nil {
			err = dbErr
		}
	}

	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message":        "Server is Healthy!",
			"mesh_connected": s.meshWebsocket != nil && s.meshWebsocket.IsConnected(),
		})
	})
}
