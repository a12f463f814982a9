package analysisHandler

import (
	analysisService "FaceGeometry/internal/api/analysis/service"
	"FaceGeometry/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type AnalysisHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	analysisService analysisService.IAnalysisService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	as analysisService.IAnalysisService,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: as,
		log:             log,
		validator:       validator,
		middleware:      middleware,
	}
}

func (h *AnalysisHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	a := srv.Group("/analysis")
	a.Post("/direction", h.middleware.NewRateLimiter, h.ClassifyDirection)
	a.Post("/blink", h.middleware.NewRateLimiter, h.BlinkRatio)
	a.Post("/midpoint", h.middleware.NewRateLimiter, h.Midpoint)
	a.Post("/frame", h.middleware.NewRateLimiter, h.AnalyzeFrame)
	a.Post("/annotate", h.middleware.NewRateLimiter, h.Annotate)
	a.Use("/ws", wsMiddleware)
	a.Get("/ws", websocket.New(h.handleLandmarkWebSocket))

	face := srv.Group("/face")
	face.Use("/ws", wsMiddleware)
	face.Get("/ws", websocket.New(h.handleCameraWebSocket))

	sessions := srv.Group("/sessions")
	sessions.Post("", h.middleware.NewTokenMiddleware, h.StartSession)
	sessions.Get("/:id/events", h.GetSessionEvents)
	sessions.Post("/:id/export", h.middleware.NewTokenMiddleware, h.ExportSession)
}
