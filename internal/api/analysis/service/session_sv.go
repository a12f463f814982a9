package analysisService

import (
	"FaceGeometry/internal/api/analysis"
	"FaceGeometry/internal/entity"
	contextPkg "FaceGeometry/pkg/context"
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (s *analysisService) StartSession(ctx context.Context, req analysis.StartSessionRequest, operatorID string) (analysis.SessionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if req.ProfileID != "" {
		if _, err := s.profiles.ResolveProfile(ctx, req.ProfileID); err != nil {
			return analysis.SessionResponse{}, err
		}
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate session id")
		return analysis.SessionResponse{}, analysis.ErrCreateSession
	}

	session := entity.TrackingSession{
		ID:         id,
		ProfileID:  req.ProfileID,
		OperatorID: operatorID,
		StartedAt:  time.Now(),
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return analysis.SessionResponse{}, err
	}

	if err := repo.Sessions.CreateSession(ctx, session); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create tracking session")
		return analysis.SessionResponse{}, analysis.ErrCreateSession
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"session_id":  id,
		"operator_id": operatorID,
	}).Info("Tracking session started")

	return makeSessionResponse(session), nil
}

func (s *analysisService) GetSessionEvents(ctx context.Context, sessionID string) (analysis.SessionEventsResponse, error) {
	repo, err := s.repo.NewClient(false)
	if err != nil {
		return analysis.SessionEventsResponse{}, err
	}

	session, err := repo.Sessions.GetSessionByID(ctx, sessionID)
	if err != nil {
		return analysis.SessionEventsResponse{}, err
	}

	events, err := repo.Events.GetEventsBySession(ctx, sessionID)
	if err != nil {
		return analysis.SessionEventsResponse{}, err
	}

	resp := analysis.SessionEventsResponse{
		Session: makeSessionResponse(session),
		Events:  makeEventResponses(events),
	}
	resp.Total = len(resp.Events)
	return resp, nil
}

// ExportSession writes the session and its click events to object storage as
// JSON, then ends the session with the archive location.
func (s *analysisService) ExportSession(ctx context.Context, sessionID string) (analysis.ExportResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.repo.NewClient(true)
	if err != nil {
		return analysis.ExportResponse{}, err
	}
	defer func() {
		if err != nil {
			if rbErr := repo.Rollback(); rbErr != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      rbErr.Error(),
				}).Error("Failed to rollback session export")
			}
		}
	}()

	session, err := repo.Sessions.GetSessionByID(ctx, sessionID)
	if err != nil {
		return analysis.ExportResponse{}, err
	}

	events, err := repo.Events.GetEventsBySession(ctx, sessionID)
	if err != nil {
		return analysis.ExportResponse{}, err
	}

	now := time.Now()
	archive := analysis.SessionArchive{
		Session:    makeSessionResponse(session),
		Events:     makeEventResponses(events),
		ExportedAt: now,
	}

	body, err := json.Marshal(archive)
	if err != nil {
		return analysis.ExportResponse{}, fmt.Errorf("marshal session archive: %w", err)
	}

	location, err := s.s3.UploadObject(archiveKey(sessionID), body, "application/json")
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to upload session archive")
		err = analysis.ErrExportSession
		return analysis.ExportResponse{}, err
	}
	defer func() {
		if err != nil {
			if delErr := s.s3.DeleteFile(location); delErr != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"location":   location,
					"error":      delErr.Error(),
				}).Warn("Failed to remove orphaned session archive")
			}
		}
	}()

	if err = repo.Sessions.EndSession(ctx, sessionID, location, now); err != nil {
		return analysis.ExportResponse{}, err
	}

	if err = repo.Commit(); err != nil {
		return analysis.ExportResponse{}, err
	}

	url := location
	if presigned, presignErr := s.s3.PresignUrl(location); presignErr == nil {
		url = presigned
	} else {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      presignErr.Error(),
		}).Warn("Failed to presign archive url")
	}

	return analysis.ExportResponse{
		SessionID:  sessionID,
		ArchiveURL: url,
		Events:     len(events),
	}, nil
}

func archiveKey(sessionID string) string {
	return "sessions/" + sessionID + ".json"
}

func makeSessionResponse(session entity.TrackingSession) analysis.SessionResponse {
	resp := analysis.SessionResponse{
		ID:         session.ID,
		ProfileID:  session.ProfileID,
		OperatorID: session.OperatorID,
		ArchiveURL: session.ArchiveURL,
		StartedAt:  session.StartedAt,
	}
	if session.EndedAt.Valid {
		ended := session.EndedAt.Time
		resp.EndedAt = &ended
	}
	return resp
}

func makeEventResponses(events []entity.ClickEvent) []analysis.ClickEventResponse {
	out := make([]analysis.ClickEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, analysis.ClickEventResponse{
			ID:        e.ID,
			Eye:       e.Eye,
			Frames:    e.Frames,
			HeldMs:    e.HeldMs,
			FrameSeq:  e.FrameSeq,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
