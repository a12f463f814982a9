package analysis

import (
	"FaceGeometry/pkg/response"
	"net/http"
)

var (
	ErrInvalidLandmarks = response.NewError(http.StatusUnprocessableEntity, "landmark set is too short for the requested indices")
	ErrNoIntersection   = response.NewError(http.StatusUnprocessableEntity, "lines do not intersect")
	ErrInvalidEyeTable  = response.NewError(http.StatusBadRequest, "eye index table is invalid")
	ErrInvalidFrame     = response.NewError(http.StatusBadRequest, "frame message is not valid landmark JSON")
	ErrSessionNotFound  = response.NewError(http.StatusNotFound, "tracking session not found")
	ErrSessionEnded     = response.NewError(http.StatusConflict, "tracking session already ended")
	ErrCreateSession    = response.NewError(http.StatusInternalServerError, "failed to create tracking session")
	ErrExportSession    = response.NewError(http.StatusInternalServerError, "failed to export tracking session")
	ErrAnnotateFrame    = response.NewError(http.StatusInternalServerError, "failed to annotate frame")
	ErrMeshUnavailable  = response.NewError(http.StatusServiceUnavailable, "face mesh service unavailable")
	ErrMissingImage     = response.NewError(http.StatusBadRequest, "image file is required")
)
