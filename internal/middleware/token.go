package middleware

import (
	"FaceGeometry/internal/entity"
	jwtPkg "FaceGeometry/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
	OperatorIDLocal   = "operator_id"
)

func (m *middleware) unauthorized(ctx *fiber.Ctx, reason string) error {
	m.log.WithFields(logrus.Fields{
		"request_id": m.GetRequestID(ctx),
		"path":       ctx.Path(),
		"client_ip":  ctx.IP(),
		"reason":     reason,
	}).Warn("Token check failed")
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized, access token invalid or expired",
	})
}

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	if ctx.Get("Authorization") == "" {
		return m.unauthorized(ctx, "authorization header is missing")
	}

	token, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		return m.unauthorized(ctx, err.Error())
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return m.unauthorized(ctx, "invalid token claims")
	}

	id, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)
	if id == "" || email == "" {
		return m.unauthorized(ctx, "token claims are missing required fields")
	}

	ctx.Locals(jwtPkg.OperatorLocalsKey, entity.OperatorLoginData{
		ID:       id,
		Email:    email,
		Username: username,
	})
	ctx.Locals(OperatorIDLocal, id)

	m.log.WithFields(logrus.Fields{
		"request_id":  m.GetRequestID(ctx),
		"operator_id": id,
	}).Debug("Authentication successful")
	return ctx.Next()
}
