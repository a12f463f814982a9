package analysisService

import (
	"FaceGeometry/internal/api/analysis"
	analysisRepository "FaceGeometry/internal/api/analysis/repository"
	"FaceGeometry/internal/api/profile"
	"FaceGeometry/internal/entity"
	"FaceGeometry/pkg/geometry"
	"FaceGeometry/pkg/utils"
	websocketPkg "FaceGeometry/pkg/websocket"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type fakeResolver struct {
	profiles map[string]entity.Profile
}

func (f *fakeResolver) ResolveProfile(_ context.Context, id string) (entity.Profile, error) {
	if id == "" {
		return entity.DefaultProfile(), nil
	}
	p, ok := f.profiles[id]
	if !ok {
		return entity.Profile{}, profile.ErrProfileNotFound
	}
	return p, nil
}

type fakeSessions struct {
	rows   map[string]entity.TrackingSession
	endErr error
}

func (f *fakeSessions) CreateSession(_ context.Context, s entity.TrackingSession) error {
	f.rows[s.ID] = s
	return nil
}

func (f *fakeSessions) GetSessionByID(_ context.Context, id string) (entity.TrackingSession, error) {
	s, ok := f.rows[id]
	if !ok {
		return entity.TrackingSession{}, analysis.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessions) EndSession(_ context.Context, id, archiveURL string, endedAt time.Time) error {
	if f.endErr != nil {
		return f.endErr
	}
	s, ok := f.rows[id]
	if !ok {
		return analysis.ErrSessionNotFound
	}
	s.ArchiveURL = archiveURL
	if !s.EndedAt.Valid {
		s.EndedAt = sql.NullTime{Time: endedAt, Valid: true}
	}
	f.rows[id] = s
	return nil
}

type fakeEvents struct {
	rows []entity.ClickEvent
}

func (f *fakeEvents) CreateClickEvent(_ context.Context, e entity.ClickEvent) error {
	f.rows = append(f.rows, e)
	return nil
}

func (f *fakeEvents) GetEventsBySession(_ context.Context, sessionID string) ([]entity.ClickEvent, error) {
	var out []entity.ClickEvent
	for _, e := range f.rows {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeRepo struct {
	sessions  *fakeSessions
	events    *fakeEvents
	commits   int
	rollbacks int
}

func (r *fakeRepo) NewClient(bool) (analysisRepository.Client, error) {
	return analysisRepository.Client{
		Sessions: r.sessions,
		Events:   r.events,
		Commit:   func() error { r.commits++; return nil },
		Rollback: func() error { r.rollbacks++; return nil },
	}, nil
}

type fakeS3 struct {
	objects map[string][]byte
	deleted []string
	fail    bool
}

func (f *fakeS3) UploadObject(key string, body []byte, _ string) (string, error) {
	if f.fail {
		return "", errors.New("bucket unavailable")
	}
	f.objects[key] = body
	return "https://bucket.s3.amazonaws.com/" + key, nil
}

func (f *fakeS3) PresignUrl(fileUrl string) (string, error) {
	return fileUrl + "?signed", nil
}

func (f *fakeS3) DeleteFile(fileUrl string) error {
	f.deleted = append(f.deleted, fileUrl)
	return nil
}

type fakeMesh struct {
	result *entity.MeshResult
	err    error
}

func (f *fakeMesh) ProcessFaceFrame([]byte) (*entity.MeshResult, error) {
	return f.result, f.err
}

func (f *fakeMesh) IsConnected() bool { return f.err == nil }
func (f *fakeMesh) Reconnect() error  { return f.err }
func (f *fakeMesh) CloseConnections() {}

type testDeps struct {
	svc  *analysisService
	repo *fakeRepo
	s3   *fakeS3
	mesh *fakeMesh
}

// fastProfile turns two closed frames of 50ms into a click.
func fastProfile() entity.Profile {
	p := entity.DefaultProfile()
	p.ID = "fast"
	p.Name = "fast"
	p.MinHoldMs = 100
	p.FrameIntervalMs = 50
	return p
}

func newTestService() testDeps {
	log := logrus.New()
	log.SetOutput(io.Discard)

	deps := testDeps{
		repo: &fakeRepo{
			sessions: &fakeSessions{rows: map[string]entity.TrackingSession{}},
			events:   &fakeEvents{},
		},
		s3:   &fakeS3{objects: map[string][]byte{}},
		mesh: &fakeMesh{},
	}
	resolver := &fakeResolver{profiles: map[string]entity.Profile{"fast": fastProfile()}}
	deps.svc = NewAnalysisService(log, resolver, deps.repo, deps.mesh, deps.s3, utils.New()).(*analysisService)
	return deps
}

// testFace builds a frontal face mesh whose eyes have the given lid height
// over a width of 0.1.
func testFace(eyeHeight float64) []geometry.Landmark {
	mesh := make([]geometry.Landmark, geometry.FaceMeshLandmarks)
	right, left := geometry.DefaultEyeIndices()
	for i, eye := range []geometry.EyeIndices{right, left} {
		x := 0.3 + 0.3*float64(i)
		mesh[eye.Outer] = geometry.Landmark{X: x, Y: 0.4}
		mesh[eye.Inner] = geometry.Landmark{X: x + 0.1, Y: 0.4}
		mesh[eye.Top] = geometry.Landmark{X: x + 0.05, Y: 0.4 - eyeHeight/2}
		mesh[eye.Bottom] = geometry.Landmark{X: x + 0.05, Y: 0.4 + eyeHeight/2}
	}
	mesh[geometry.DirectionTopIndex] = geometry.Landmark{X: 0.5, Y: 0.1}
	mesh[geometry.DirectionBottomIndex] = geometry.Landmark{X: 0.5, Y: 0.9}
	mesh[geometry.DirectionLeftIndex] = geometry.Landmark{X: 0.8, Y: 0.5}
	mesh[geometry.DirectionRightIndex] = geometry.Landmark{X: 0.2, Y: 0.5}
	return mesh
}

func TestClassifyDirection(t *testing.T) {
	deps := newTestService()

	tests := []struct {
		name     string
		req      analysis.DirectionRequest
		expected geometry.Direction
		err      error
	}{
		{
			name:     "center with defaults",
			req:      analysis.DirectionRequest{},
			expected: geometry.DirectionCenter,
		},
		{
			name:     "top-left",
			req:      analysis.DirectionRequest{Top: geometry.Landmark{Z: 0.2}, Left: geometry.Landmark{Z: 0.2}},
			expected: "top-left",
		},
		{
			name: "explicit thresholds win",
			req: analysis.DirectionRequest{
				Top:        geometry.Landmark{Z: 0.2},
				Thresholds: &geometry.DirectionThresholds{Up: 0.5, Down: 0.5, Left: 0.5, Right: 0.5},
				ProfileID:  "missing",
			},
			expected: geometry.DirectionCenter,
		},
		{
			name: "unknown profile",
			req:  analysis.DirectionRequest{ProfileID: "missing"},
			err:  profile.ErrProfileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := deps.svc.ClassifyDirection(context.Background(), tt.req)
			if !errors.Is(err, tt.err) {
				t.Fatalf("ClassifyDirection() error = %v, want %v", err, tt.err)
			}
			if err == nil && got.Direction != tt.expected {
				t.Errorf("ClassifyDirection() = %q, want %q", got.Direction, tt.expected)
			}
		})
	}
}

func TestBlinkRatio(t *testing.T) {
	deps := newTestService()

	tests := []struct {
		name      string
		req       analysis.BlinkRequest
		closed    bool
		ratio     float64
		expectErr error
	}{
		{
			name:  "open eyes",
			req:   analysis.BlinkRequest{Landmarks: testFace(0.02)},
			ratio: 5,
		},
		{
			name:   "closed eyes",
			req:    analysis.BlinkRequest{Landmarks: testFace(0.005)},
			closed: true,
			ratio:  20,
		},
		{
			name:  "threshold override",
			req:   analysis.BlinkRequest{Landmarks: testFace(0.02), Threshold: func() *float64 { v := 4.0; return &v }()},
			ratio: 5, closed: true,
		},
		{
			name:   "shut eyes",
			req:    analysis.BlinkRequest{Landmarks: testFace(0)},
			closed: true,
			ratio:  0,
		},
		{
			name:      "short landmark set",
			req:       analysis.BlinkRequest{Landmarks: make([]geometry.Landmark, 10)},
			expectErr: analysis.ErrInvalidLandmarks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := deps.svc.BlinkRatio(context.Background(), tt.req)
			if !errors.Is(err, tt.expectErr) {
				t.Fatalf("BlinkRatio() error = %v, want %v", err, tt.expectErr)
			}
			if err != nil {
				return
			}
			if got.Closed != tt.closed {
				t.Errorf("Closed = %v, want %v", got.Closed, tt.closed)
			}
			if d := got.Ratios.Eyes - tt.ratio; d > 1e-9 || d < -1e-9 {
				t.Errorf("Eyes = %v, want %v", got.Ratios.Eyes, tt.ratio)
			}
		})
	}
}

func TestMidpoint(t *testing.T) {
	deps := newTestService()

	got, err := deps.svc.Midpoint(analysis.MidpointRequest{
		Top:    geometry.Landmark{X: 0, Y: 0},
		Bottom: geometry.Landmark{X: 10, Y: 10},
		Left:   geometry.Landmark{X: 0, Y: 10},
		Right:  geometry.Landmark{X: 10, Y: 0},
	})
	if err != nil {
		t.Fatalf("Midpoint() error = %v", err)
	}
	if got.Midpoint.X != 5 || got.Midpoint.Y != 5 {
		t.Errorf("Midpoint() = %+v, want (5,5)", got.Midpoint)
	}

	_, err = deps.svc.Midpoint(analysis.MidpointRequest{
		Top:    geometry.Landmark{X: 0, Y: 0},
		Bottom: geometry.Landmark{X: 1, Y: 1},
		Left:   geometry.Landmark{X: 0, Y: 1},
		Right:  geometry.Landmark{X: 1, Y: 2},
	})
	if !errors.Is(err, analysis.ErrNoIntersection) {
		t.Errorf("parallel lines error = %v, want ErrNoIntersection", err)
	}
}

func TestAnalyzeFrameUsesProfile(t *testing.T) {
	deps := newTestService()

	got, err := deps.svc.AnalyzeFrame(context.Background(), analysis.FrameRequest{
		Landmarks: testFace(0.02),
		ProfileID: "fast",
		Midpoint:  true,
	})
	if err != nil {
		t.Fatalf("AnalyzeFrame() error = %v", err)
	}
	if got.ProfileID != "fast" {
		t.Errorf("ProfileID = %q, want fast", got.ProfileID)
	}
	if got.Analysis.Direction != geometry.DirectionCenter || got.Analysis.EyesClosed {
		t.Errorf("Analysis = %+v", got.Analysis)
	}
	if got.Analysis.Midpoint == nil || got.Analysis.Midpoint.X != 0.5 || got.Analysis.Midpoint.Y != 0.5 {
		t.Errorf("Midpoint = %+v, want (0.5,0.5)", got.Analysis.Midpoint)
	}
}

func TestStreamEmitsClickAndRecordsIt(t *testing.T) {
	deps := newTestService()
	ctx := context.Background()

	session, err := deps.svc.StartSession(ctx, analysis.StartSessionRequest{ProfileID: "fast"}, "op-1")
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	stream, err := deps.svc.NewStream(ctx, analysis.StreamOptions{SessionID: session.ID})
	if err != nil {
		t.Fatalf("NewStream() error = %v", err)
	}
	if stream.ProfileID() != "fast" {
		t.Errorf("stream profile = %q, want the session profile", stream.ProfileID())
	}

	closed := [][]geometry.Landmark{testFace(0.005)}
	var clicks int
	for i := 0; i < 4; i++ {
		res := stream.Process(analysis.StreamFrame{Faces: closed})
		clicks += len(res.Clicks)
		if res.Seq != int64(i+1) {
			t.Errorf("Seq = %d, want %d", res.Seq, i+1)
		}
	}
	if clicks != 2 {
		t.Errorf("clicks = %d, want one per eye", clicks)
	}
	if len(deps.repo.events.rows) != 2 {
		t.Fatalf("recorded events = %d, want 2", len(deps.repo.events.rows))
	}
	if ev := deps.repo.events.rows[0]; ev.FrameSeq != 2 || ev.HeldMs != 100 || ev.SessionID != session.ID {
		t.Errorf("recorded event = %+v", ev)
	}

	res := stream.Process(analysis.StreamFrame{})
	if res.FaceCount != 0 || res.Close != (geometry.CloseState{}) {
		t.Errorf("no-face frame did not reset: %+v", res)
	}
}

func TestStreamHoldSurvivesShutEyes(t *testing.T) {
	deps := newTestService()

	stream, err := deps.svc.NewStream(context.Background(), analysis.StreamOptions{ProfileID: "fast"})
	if err != nil {
		t.Fatalf("NewStream() error = %v", err)
	}

	closed := [][]geometry.Landmark{testFace(0.005)}
	shut := [][]geometry.Landmark{testFace(0)}

	stream.Process(analysis.StreamFrame{Faces: closed})
	res := stream.Process(analysis.StreamFrame{Faces: shut})
	if res.Error != "" || res.Analysis == nil || !res.Analysis.EyesClosed {
		t.Fatalf("shut frame result = %+v", res)
	}
	if res.Close != (geometry.CloseState{LeftFrames: 2, RightFrames: 2}) {
		t.Errorf("Close = %+v, want both eyes at 2 frames", res.Close)
	}
	if len(res.Clicks) != 2 {
		t.Errorf("clicks = %d, want one per eye on the shut frame", len(res.Clicks))
	}
}

func TestStreamSeqOnlyMovesForward(t *testing.T) {
	deps := newTestService()

	stream, err := deps.svc.NewStream(context.Background(), analysis.StreamOptions{})
	if err != nil {
		t.Fatalf("NewStream() error = %v", err)
	}

	tests := []struct {
		name     string
		seq      int64
		expected int64
	}{
		{name: "client seq", seq: 5, expected: 5},
		{name: "zero seq", seq: 0, expected: 6},
		{name: "repeated seq", seq: 6, expected: 7},
		{name: "backwards seq", seq: 2, expected: 8},
		{name: "jump ahead", seq: 20, expected: 20},
	}

	for _, tt := range tests {
		res := stream.Process(analysis.StreamFrame{Seq: tt.seq})
		if res.Seq != tt.expected {
			t.Errorf("%s: Seq = %d, want %d", tt.name, res.Seq, tt.expected)
		}
	}
}

func TestStreamReportsFaceCountAndMovesCursor(t *testing.T) {
	deps := newTestService()

	stream, err := deps.svc.NewStream(context.Background(), analysis.StreamOptions{})
	if err != nil {
		t.Fatalf("NewStream() error = %v", err)
	}

	face := testFace(0.02)
	face[geometry.DirectionTopIndex].Z = 0.3
	start := geometry.DefaultCursor()

	res := stream.Process(analysis.StreamFrame{Seq: 7, Faces: [][]geometry.Landmark{face, testFace(0.02)}})
	if res.Seq != 7 || res.FaceCount != 2 {
		t.Errorf("Seq/FaceCount = %d/%d, want 7/2", res.Seq, res.FaceCount)
	}
	if res.Analysis == nil || res.Analysis.Direction != geometry.DirectionTop {
		t.Fatalf("Analysis = %+v, want top", res.Analysis)
	}
	if res.Cursor.Y != start.Y-start.Step || res.Cursor.X != start.X {
		t.Errorf("Cursor = %+v, want one step up from %+v", res.Cursor, start)
	}

	res = stream.Process(analysis.StreamFrame{Faces: [][]geometry.Landmark{make([]geometry.Landmark, 5)}})
	if res.Error == "" || res.Analysis != nil || res.Seq != 8 {
		t.Errorf("short mesh result = %+v", res)
	}
}

func TestNewStreamRejectsEndedSession(t *testing.T) {
	deps := newTestService()
	deps.repo.sessions.rows["done"] = entity.TrackingSession{
		ID:      "done",
		EndedAt: sql.NullTime{Time: time.Now(), Valid: true},
	}

	_, err := deps.svc.NewStream(context.Background(), analysis.StreamOptions{SessionID: "done"})
	if !errors.Is(err, analysis.ErrSessionEnded) {
		t.Errorf("NewStream() error = %v, want ErrSessionEnded", err)
	}

	_, err = deps.svc.NewStream(context.Background(), analysis.StreamOptions{SessionID: "nope"})
	if !errors.Is(err, analysis.ErrSessionNotFound) {
		t.Errorf("NewStream() error = %v, want ErrSessionNotFound", err)
	}
}

func TestExportSession(t *testing.T) {
	deps := newTestService()
	ctx := context.Background()

	session, err := deps.svc.StartSession(ctx, analysis.StartSessionRequest{}, "op-1")
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	deps.repo.events.rows = append(deps.repo.events.rows, entity.ClickEvent{
		ID: "ev-1", SessionID: session.ID, Eye: "left", Frames: 16, HeldMs: 533, FrameSeq: 40,
	})

	got, err := deps.svc.ExportSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("ExportSession() error = %v", err)
	}
	if got.Events != 1 || !strings.HasSuffix(got.ArchiveURL, "?signed") {
		t.Errorf("ExportSession() = %+v", got)
	}

	body, ok := deps.s3.objects["sessions/"+session.ID+".json"]
	if !ok {
		t.Fatalf("archive not uploaded: %v", deps.s3.objects)
	}
	var archive analysis.SessionArchive
	if err := json.Unmarshal(body, &archive); err != nil {
		t.Fatalf("archive is not JSON: %v", err)
	}
	if archive.Session.ID != session.ID || len(archive.Events) != 1 || archive.Events[0].HeldMs != 533 {
		t.Errorf("archive = %+v", archive)
	}

	stored := deps.repo.sessions.rows[session.ID]
	if !stored.EndedAt.Valid || stored.ArchiveURL == "" {
		t.Errorf("session not ended: %+v", stored)
	}
	if deps.repo.commits != 1 {
		t.Errorf("commits = %d, want 1", deps.repo.commits)
	}
}

func TestExportSessionUploadFailure(t *testing.T) {
	deps := newTestService()
	deps.s3.fail = true
	deps.repo.sessions.rows["s1"] = entity.TrackingSession{ID: "s1"}

	_, err := deps.svc.ExportSession(context.Background(), "s1")
	if !errors.Is(err, analysis.ErrExportSession) {
		t.Fatalf("ExportSession() error = %v, want ErrExportSession", err)
	}
	if deps.repo.rollbacks != 1 || deps.repo.sessions.rows["s1"].EndedAt.Valid {
		t.Errorf("export failure not rolled back: rollbacks=%d", deps.repo.rollbacks)
	}
}

func TestExportSessionEndFailureRemovesArchive(t *testing.T) {
	deps := newTestService()
	deps.repo.sessions.rows["s1"] = entity.TrackingSession{ID: "s1"}
	deps.repo.sessions.endErr = errors.New("connection reset")

	if _, err := deps.svc.ExportSession(context.Background(), "s1"); err == nil {
		t.Fatal("ExportSession() error = nil, want error")
	}
	want := "https://bucket.s3.amazonaws.com/sessions/s1.json"
	if len(deps.s3.deleted) != 1 || deps.s3.deleted[0] != want {
		t.Errorf("deleted = %v, want [%s]", deps.s3.deleted, want)
	}
	if deps.repo.rollbacks != 1 {
		t.Errorf("rollbacks = %d, want 1", deps.repo.rollbacks)
	}
}

func TestProcessCameraFrame(t *testing.T) {
	deps := newTestService()

	for _, meshErr := range []error{
		websocketPkg.ErrNotConnected,
		fmt.Errorf("%w: dial tcp 127.0.0.1:1: connect: connection refused", websocketPkg.ErrNotConnected),
	} {
		deps.mesh.err = meshErr
		_, err := deps.svc.ProcessCameraFrame([]byte{0xff})
		if !errors.Is(err, analysis.ErrMeshUnavailable) {
			t.Errorf("error = %v, want ErrMeshUnavailable", err)
		}
		if strings.Contains(err.Error(), "127.0.0.1") {
			t.Errorf("error leaks the mesh address: %v", err)
		}
	}

	deps.mesh.err = nil
	deps.mesh.result = &entity.MeshResult{Faces: [][]geometry.Landmark{testFace(0.02)}}
	got, err := deps.svc.ProcessCameraFrame([]byte{0xff})
	if err != nil || len(got.FirstFace()) != geometry.FaceMeshLandmarks {
		t.Errorf("ProcessCameraFrame() = %v, %v", got, err)
	}
}
