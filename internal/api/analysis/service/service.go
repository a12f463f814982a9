package analysisService

import (
	"FaceGeometry/internal/api/analysis"
	analysisRepository "FaceGeometry/internal/api/analysis/repository"
	"FaceGeometry/internal/entity"
	"FaceGeometry/pkg/s3"
	"FaceGeometry/pkg/utils"
	websocketPkg "FaceGeometry/pkg/websocket"
	"context"
	"mime/multipart"

	"github.com/sirupsen/logrus"
)

// ProfileResolver looks up analyzer settings; an empty id yields the defaults.
type ProfileResolver interface {
	ResolveProfile(ctx context.Context, id string) (entity.Profile, error)
}

type IAnalysisService interface {
	ClassifyDirection(ctx context.Context, req analysis.DirectionRequest) (analysis.DirectionResponse, error)
	BlinkRatio(ctx context.Context, req analysis.BlinkRequest) (analysis.BlinkResponse, error)
	Midpoint(req analysis.MidpointRequest) (analysis.MidpointResponse, error)
	AnalyzeFrame(ctx context.Context, req analysis.FrameRequest) (analysis.FrameResponse, error)
	Annotate(ctx context.Context, file *multipart.FileHeader, req analysis.AnnotateRequest) ([]byte, error)

	NewStream(ctx context.Context, opts analysis.StreamOptions) (*Stream, error)
	ProcessCameraFrame(frame []byte) (*entity.MeshResult, error)

	StartSession(ctx context.Context, req analysis.StartSessionRequest, operatorID string) (analysis.SessionResponse, error)
	GetSessionEvents(ctx context.Context, sessionID string) (analysis.SessionEventsResponse, error)
	ExportSession(ctx context.Context, sessionID string) (analysis.ExportResponse, error)
}

type analysisService struct {
	log      *logrus.Logger
	profiles ProfileResolver
	repo     analysisRepository.Repository
	mesh     websocketPkg.IWebsocket
	s3       s3.ItfS3
	utils    utils.IUtils
}

func NewAnalysisService(
	log *logrus.Logger,
	profiles ProfileResolver,
	repo analysisRepository.Repository,
	mesh websocketPkg.IWebsocket,
	s3 s3.ItfS3,
	utils utils.IUtils,
) IAnalysisService {
	return &analysisService{
		log:      log,
		profiles: profiles,
		repo:     repo,
		mesh:     mesh,
		s3:       s3,
		utils:    utils,
	}
}
