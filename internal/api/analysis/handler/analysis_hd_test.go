package analysisHandler

import (
	"FaceGeometry/internal/api/analysis"
	analysisService "FaceGeometry/internal/api/analysis/service"
	"FaceGeometry/internal/api/profile"
	"FaceGeometry/internal/entity"
	"FaceGeometry/internal/middleware"
	"FaceGeometry/pkg/geometry"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type fakeService struct {
	lastFrame analysis.FrameRequest
}

func (f *fakeService) ClassifyDirection(_ context.Context, req analysis.DirectionRequest) (analysis.DirectionResponse, error) {
	if req.ProfileID == "missing" {
		return analysis.DirectionResponse{}, profile.ErrProfileNotFound
	}
	d := geometry.ClassifyDirection(req.Top, req.Left, req.Right, req.Bottom, geometry.DefaultDirectionThresholds())
	return analysis.DirectionResponse{Direction: d.OrCenter(), Terms: d.Terms()}, nil
}

func (f *fakeService) BlinkRatio(context.Context, analysis.BlinkRequest) (analysis.BlinkResponse, error) {
	return analysis.BlinkResponse{}, analysis.ErrInvalidLandmarks
}

func (f *fakeService) Midpoint(req analysis.MidpointRequest) (analysis.MidpointResponse, error) {
	if req.Top == req.Bottom {
		return analysis.MidpointResponse{}, analysis.ErrNoIntersection
	}
	return analysis.MidpointResponse{Midpoint: geometry.Point{X: 5, Y: 5}}, nil
}

func (f *fakeService) AnalyzeFrame(_ context.Context, req analysis.FrameRequest) (analysis.FrameResponse, error) {
	f.lastFrame = req
	return analysis.FrameResponse{Analysis: geometry.FrameAnalysis{Direction: geometry.DirectionCenter}}, nil
}

func (f *fakeService) Annotate(context.Context, *multipart.FileHeader, analysis.AnnotateRequest) ([]byte, error) {
	return []byte{0xff, 0xd8, 0xff}, nil
}

func (f *fakeService) NewStream(context.Context, analysis.StreamOptions) (*analysisService.Stream, error) {
	return nil, analysis.ErrSessionNotFound
}

func (f *fakeService) ProcessCameraFrame([]byte) (*entity.MeshResult, error) {
	return nil, analysis.ErrMeshUnavailable
}

func (f *fakeService) StartSession(context.Context, analysis.StartSessionRequest, string) (analysis.SessionResponse, error) {
	return analysis.SessionResponse{ID: "s1"}, nil
}

func (f *fakeService) GetSessionEvents(_ context.Context, id string) (analysis.SessionEventsResponse, error) {
	if id != "s1" {
		return analysis.SessionEventsResponse{}, analysis.ErrSessionNotFound
	}
	return analysis.SessionEventsResponse{Session: analysis.SessionResponse{ID: id}}, nil
}

func (f *fakeService) ExportSession(context.Context, string) (analysis.ExportResponse, error) {
	return analysis.ExportResponse{}, analysis.ErrExportSession
}

func newTestApp() (*fiber.App, *fakeService) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := &fakeService{}
	app := fiber.New()
	New(log, validator.New(), middleware.New(log), svc).Start(app.Group("/api/v1"))
	return app, svc
}

func TestAnalysisRoutes(t *testing.T) {
	app, _ := newTestApp()

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		expected int
		contains string
	}{
		{
			name:     "direction top-left",
			method:   "POST",
			path:     "/api/v1/analysis/direction",
			body:     `{"top":{"z":0.2},"left":{"z":0.2}}`,
			expected: fiber.StatusOK,
			contains: `"direction":"top-left"`,
		},
		{
			name:     "direction unknown profile",
			method:   "POST",
			path:     "/api/v1/analysis/direction",
			body:     `{"profile_id":"missing"}`,
			expected: fiber.StatusNotFound,
		},
		{
			name:     "blink requires landmarks",
			method:   "POST",
			path:     "/api/v1/analysis/blink",
			body:     `{}`,
			expected: fiber.StatusBadRequest,
			contains: "VALIDATION_ERROR",
		},
		{
			name:     "blink short landmark set",
			method:   "POST",
			path:     "/api/v1/analysis/blink",
			body:     `{"landmarks":[{"x":0,"y":0,"z":0}]}`,
			expected: fiber.StatusUnprocessableEntity,
		},
		{
			name:     "midpoint",
			method:   "POST",
			path:     "/api/v1/analysis/midpoint",
			body:     `{"top":{"x":0,"y":0},"bottom":{"x":10,"y":10},"left":{"x":0,"y":10},"right":{"x":10,"y":0}}`,
			expected: fiber.StatusOK,
			contains: `"midpoint":{"x":5,"y":5}`,
		},
		{
			name:     "midpoint degenerate",
			method:   "POST",
			path:     "/api/v1/analysis/midpoint",
			body:     `{}`,
			expected: fiber.StatusUnprocessableEntity,
		},
		{
			name:     "session events",
			method:   "GET",
			path:     "/api/v1/sessions/s1/events",
			expected: fiber.StatusOK,
			contains: `"id":"s1"`,
		},
		{
			name:     "session events not found",
			method:   "GET",
			path:     "/api/v1/sessions/zz/events",
			expected: fiber.StatusNotFound,
		},
		{
			name:     "start session needs token",
			method:   "POST",
			path:     "/api/v1/sessions",
			expected: fiber.StatusUnauthorized,
		},
		{
			name:     "export needs token",
			method:   "POST",
			path:     "/api/v1/sessions/s1/export",
			expected: fiber.StatusUnauthorized,
		},
		{
			name:     "websocket needs upgrade",
			method:   "GET",
			path:     "/api/v1/analysis/ws",
			expected: fiber.StatusUpgradeRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != tt.expected {
				t.Errorf("status = %d, want %d (body %s)", resp.StatusCode, tt.expected, body)
			}
			if tt.contains != "" && !strings.Contains(string(body), tt.contains) {
				t.Errorf("body %s does not contain %s", body, tt.contains)
			}
		})
	}
}

func TestAnalyzeFramePassesOptions(t *testing.T) {
	app, svc := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/analysis/frame",
		strings.NewReader(`{"landmarks":[{"x":0.1,"y":0.2,"z":0}],"profile_id":"p1","midpoint":true}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if svc.lastFrame.ProfileID != "p1" || !svc.lastFrame.Midpoint || len(svc.lastFrame.Landmarks) != 1 {
		t.Errorf("request not forwarded: %+v", svc.lastFrame)
	}
}

func TestAnnotate(t *testing.T) {
	app, _ := newTestApp()

	tests := []struct {
		name      string
		withImage bool
		landmarks string
		expected  int
	}{
		{name: "jpeg returned", withImage: true, landmarks: `[{"x":0.5,"y":0.5,"z":0}]`, expected: fiber.StatusOK},
		{name: "missing image", landmarks: `[{"x":0.5,"y":0.5,"z":0}]`, expected: fiber.StatusBadRequest},
		{name: "bad landmarks", withImage: true, landmarks: `not json`, expected: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			w := multipart.NewWriter(&buf)
			if tt.withImage {
				part, _ := w.CreateFormFile("image", "frame.jpg")
				_, _ = part.Write([]byte{0xff, 0xd8, 0xff, 0xe0})
			}
			_ = w.WriteField("landmarks", tt.landmarks)
			_ = w.Close()

			req := httptest.NewRequest("POST", "/api/v1/analysis/annotate", strings.NewReader(buf.String()))
			req.Header.Set("Content-Type", w.FormDataContentType())

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.expected {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.expected)
			}
			if tt.expected == fiber.StatusOK && resp.Header.Get("Content-Type") != "image/jpeg" {
				t.Errorf("content type = %q", resp.Header.Get("Content-Type"))
			}
		})
	}
}
