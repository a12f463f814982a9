package profile

import (
	"FaceGeometry/pkg/response"
	"net/http"
)

var (
	ErrProfileNotFound  = response.NewError(http.StatusNotFound, "profile not found")
	ErrProfileNameTaken = response.NewError(http.StatusConflict, "profile name already exists")
	ErrCreateProfile    = response.NewError(http.StatusInternalServerError, "failed to create profile")
	ErrUpdateProfile    = response.NewError(http.StatusInternalServerError, "failed to update profile")
	ErrDeleteProfile    = response.NewError(http.StatusInternalServerError, "failed to delete profile")
)
