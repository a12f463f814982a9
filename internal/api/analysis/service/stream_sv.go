package analysisService

import (
	"FaceGeometry/internal/api/analysis"
	"FaceGeometry/internal/entity"
	contextPkg "FaceGeometry/pkg/context"
	"FaceGeometry/pkg/geometry"
	websocketPkg "FaceGeometry/pkg/websocket"
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// Stream holds the analyzer state of one websocket connection: the close
// counters, the cursor and the session clicks are recorded into. It is not
// safe for concurrent use.
type Stream struct {
	svc       *analysisService
	ctx       context.Context
	profileID string
	cfg       geometry.Config
	tracker   *geometry.CloseTracker
	cursor    *geometry.Cursor
	sessionID string
	seq       int64
}

func (s *analysisService) NewStream(ctx context.Context, opts analysis.StreamOptions) (*Stream, error) {
	profileID := opts.ProfileID

	if opts.SessionID != "" {
		repo, err := s.repo.NewClient(false)
		if err != nil {
			return nil, err
		}
		session, err := repo.Sessions.GetSessionByID(ctx, opts.SessionID)
		if err != nil {
			return nil, err
		}
		if session.EndedAt.Valid {
			return nil, analysis.ErrSessionEnded
		}
		if profileID == "" {
			profileID = session.ProfileID
		}
	}

	p, err := s.profiles.ResolveProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	cfg := p.AnalyzerConfig()
	cfg.Midpoint = opts.Midpoint

	return &Stream{
		svc:       s,
		ctx:       ctx,
		profileID: p.ID,
		cfg:       cfg,
		tracker:   geometry.NewCloseTracker(p.ClickConfig()),
		cursor:    geometry.DefaultCursor(),
		sessionID: opts.SessionID,
	}, nil
}

// Process analyzes the first face of one frame. A frame with no usable face
// resets the close counters. Sequence numbers only move forward: a client Seq
// that is zero or not above the last one is replaced by the next local number.
func (st *Stream) Process(frame analysis.StreamFrame) analysis.StreamResult {
	if frame.Seq > st.seq {
		st.seq = frame.Seq
	} else {
		st.seq++
	}

	result := analysis.StreamResult{
		Seq:       st.seq,
		FaceCount: len(frame.Faces),
	}

	var face []geometry.Landmark
	if len(frame.Faces) > 0 {
		face = frame.Faces[0]
	}

	if len(face) == 0 {
		st.tracker.Observe(nil)
	} else if a, err := geometry.Analyze(face, st.cfg); err != nil {
		st.tracker.Observe(nil)
		result.Error = geometryError(err).Error()
	} else {
		result.Analysis = &a
		st.cursor.Move(a.Direction)
		result.Clicks = st.tracker.Observe(a.Blink)
		st.recordClicks(result.Clicks)
	}

	result.Close = st.tracker.State()
	result.Cursor = *st.cursor
	return result
}

func (st *Stream) recordClicks(clicks []geometry.ClickEvent) {
	if st.sessionID == "" || len(clicks) == 0 {
		return
	}

	log := st.svc.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(st.ctx),
		"session_id": st.sessionID,
	})

	repo, err := st.svc.repo.NewClient(false)
	if err != nil {
		log.WithError(err).Error("Failed to open repository for click events")
		return
	}

	for _, click := range clicks {
		id, err := st.svc.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			log.WithError(err).Error("Failed to generate click event id")
			continue
		}
		event := entity.ClickEvent{
			ID:        id,
			SessionID: st.sessionID,
			Eye:       string(click.Eye),
			Frames:    click.Frames,
			HeldMs:    click.Held.Milliseconds(),
			FrameSeq:  st.seq,
			CreatedAt: time.Now(),
		}
		if err := repo.Events.CreateClickEvent(st.ctx, event); err != nil {
			log.WithError(err).Warn("Failed to record click event")
		}
	}
}

func (st *Stream) ProfileID() string {
	return st.profileID
}

func (s *analysisService) ProcessCameraFrame(frame []byte) (*entity.MeshResult, error) {
	result, err := s.mesh.ProcessFaceFrame(frame)
	if err != nil {
		if errors.Is(err, websocketPkg.ErrNotConnected) {
			return nil, analysis.ErrMeshUnavailable
		}
		return nil, err
	}
	return result, nil
}
