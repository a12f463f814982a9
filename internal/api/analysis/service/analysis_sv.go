package analysisService

import (
	"FaceGeometry/internal/api/analysis"
	contextPkg "FaceGeometry/pkg/context"
	"FaceGeometry/pkg/geometry"
	"FaceGeometry/pkg/overlay"
	"context"
	"errors"
	"mime/multipart"

	"github.com/sirupsen/logrus"
)

// geometryError maps analyzer sentinels onto API errors.
func geometryError(err error) error {
	switch {
	case errors.Is(err, geometry.ErrLandmarkIndex):
		return analysis.ErrInvalidLandmarks
	case errors.Is(err, geometry.ErrNoIntersection):
		return analysis.ErrNoIntersection
	case errors.Is(err, geometry.ErrEyeTable):
		return analysis.ErrInvalidEyeTable
	}
	return err
}

func (s *analysisService) ClassifyDirection(ctx context.Context, req analysis.DirectionRequest) (analysis.DirectionResponse, error) {
	th := geometry.DefaultDirectionThresholds()
	switch {
	case req.Thresholds != nil:
		th = *req.Thresholds
	case req.ProfileID != "":
		p, err := s.profiles.ResolveProfile(ctx, req.ProfileID)
		if err != nil {
			return analysis.DirectionResponse{}, err
		}
		th = p.AnalyzerConfig().Direction
	}

	d := geometry.ClassifyDirection(req.Top, req.Left, req.Right, req.Bottom, th)
	return analysis.DirectionResponse{
		Direction: d.OrCenter(),
		Terms:     d.Terms(),
	}, nil
}

func (s *analysisService) BlinkRatio(ctx context.Context, req analysis.BlinkRequest) (analysis.BlinkResponse, error) {
	p, err := s.profiles.ResolveProfile(ctx, req.ProfileID)
	if err != nil {
		return analysis.BlinkResponse{}, err
	}
	cfg := p.AnalyzerConfig()
	if req.RightEye != nil {
		cfg.RightEye = *req.RightEye
	}
	if req.LeftEye != nil {
		cfg.LeftEye = *req.LeftEye
	}
	if req.Threshold != nil {
		cfg.BlinkThreshold = *req.Threshold
	}

	ratios, err := geometry.BlinkRatio(req.Landmarks, cfg.RightEye, cfg.LeftEye)
	if err != nil {
		return analysis.BlinkResponse{}, geometryError(err)
	}

	return analysis.BlinkResponse{
		Ratios:    ratios,
		Threshold: cfg.BlinkThreshold,
		Closed:    ratios.Closed(cfg.BlinkThreshold),
	}, nil
}

func (s *analysisService) Midpoint(req analysis.MidpointRequest) (analysis.MidpointResponse, error) {
	p, err := geometry.LineIntersection(req.Top, req.Left, req.Right, req.Bottom)
	if err != nil {
		return analysis.MidpointResponse{}, geometryError(err)
	}
	return analysis.MidpointResponse{Midpoint: geometry.Point{X: p.X, Y: p.Y}}, nil
}

func (s *analysisService) AnalyzeFrame(ctx context.Context, req analysis.FrameRequest) (analysis.FrameResponse, error) {
	p, err := s.profiles.ResolveProfile(ctx, req.ProfileID)
	if err != nil {
		return analysis.FrameResponse{}, err
	}
	cfg := p.AnalyzerConfig()
	cfg.Midpoint = req.Midpoint

	result, err := geometry.Analyze(req.Landmarks, cfg)
	if err != nil {
		return analysis.FrameResponse{}, geometryError(err)
	}

	return analysis.FrameResponse{
		ProfileID: p.ID,
		Analysis:  result,
	}, nil
}

// Annotate draws the analysis of req.Landmarks over the uploaded frame and
// returns it as JPEG.
func (s *analysisService) Annotate(ctx context.Context, file *multipart.FileHeader, req analysis.AnnotateRequest) ([]byte, error) {
	frame, err := s.utils.ReadImageFile(file)
	if err != nil {
		return nil, err
	}

	p, err := s.profiles.ResolveProfile(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}
	cfg := p.AnalyzerConfig()
	cfg.Midpoint = req.Midpoint

	result, err := geometry.Analyze(req.Landmarks, cfg)
	if err != nil {
		return nil, geometryError(err)
	}

	out, err := overlay.Render(frame, req.Landmarks, result, cfg, overlay.DefaultOptions())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to render overlay")
		return nil, analysis.ErrAnnotateFrame
	}

	return out, nil
}
