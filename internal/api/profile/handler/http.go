package profileHandler

import (
	profileService "FaceGeometry/internal/api/profile/service"
	"FaceGeometry/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ProfileHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	profileService profileService.IProfileService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ps profileService.IProfileService,
) *ProfileHandler {
	return &ProfileHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		profileService: ps,
	}
}

func (h *ProfileHandler) Start(srv fiber.Router) {
	profiles := srv.Group("/profiles")

	profiles.Get("", h.GetAllProfiles)
	profiles.Get("/:id", h.GetProfileByID)

	profiles.Post("", h.middleware.NewTokenMiddleware, h.CreateProfile)
	profiles.Put("/:id", h.middleware.NewTokenMiddleware, h.UpdateProfile)
	profiles.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteProfile)
}
