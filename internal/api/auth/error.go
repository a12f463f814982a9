package auth

import (
	"FaceGeometry/pkg/response"
	"net/http"
)

var (
	ErrInvalidEmailOrAPIKey = response.NewError(http.StatusUnauthorized, "email or api key is wrong")
	ErrOperatorNotFound     = response.NewError(http.StatusNotFound, "operator not found")
	ErrEmailAlreadyExists   = response.NewError(http.StatusConflict, "email already exists")
	ErrCreateOperator       = response.NewError(http.StatusInternalServerError, "failed to create operator")
)
