package handlerUtil

import (
	"FaceGeometry/pkg/geometry"
	"FaceGeometry/pkg/log"
	"FaceGeometry/pkg/response"
	"FaceGeometry/pkg/utils"
	"errors"
	"github.com/gofiber/fiber/v2"
	fiberUtils "github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

type mappedError struct {
	target  error
	status  int
	code    string
	message string
}

// Errors raised below the service layer that are not response.Error values.
var mappedErrors = []mappedError{
	{utils.ErrNoFile, fiber.StatusBadRequest, "NO_FILE", "An image file is required"},
	{utils.ErrFileTooLarge, fiber.StatusBadRequest, "FILE_TOO_LARGE", "File too large. Maximum size is 5MB."},
	{utils.ErrNotAnImage, fiber.StatusBadRequest, "INVALID_FILE_TYPE", "Invalid file type. Only png and jpeg images are allowed."},
	{geometry.ErrLandmarkIndex, fiber.StatusUnprocessableEntity, "LANDMARK_INDEX", "Landmark set is too short for the requested indices"},
	{geometry.ErrNoIntersection, fiber.StatusUnprocessableEntity, "NO_INTERSECTION", "Lines do not intersect"},
	{geometry.ErrEyeTable, fiber.StatusBadRequest, "EYE_TABLE", "Eye index table is invalid"},
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	if status, ok := response.StatusOf(err); ok {
		fields["code"] = status
		entry := h.logger.WithFields(fields)
		if status >= fiber.StatusInternalServerError {
			entry.Error("Operation failed with error response")
		} else {
			entry.Warn("Operation failed with error response")
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	for _, m := range mappedErrors {
		if errors.Is(err, m.target) {
			h.logger.WithFields(fields).Warn(m.message)
			return c.Status(m.status).JSON(ErrorResponse{
				Error: m.message,
				Code:  m.code,
			})
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		h.logger.WithFields(fields).Warn("Request rejected")
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	h.logger.WithFields(fields).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(fiberUtils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
