package analysis

import (
	"FaceGeometry/pkg/geometry"
	"time"
)

type DirectionRequest struct {
	Top        geometry.Landmark             `json:"top"`
	Left       geometry.Landmark             `json:"left"`
	Right      geometry.Landmark             `json:"right"`
	Bottom     geometry.Landmark             `json:"bottom"`
	Thresholds *geometry.DirectionThresholds `json:"thresholds,omitempty"`
	ProfileID  string                        `json:"profile_id,omitempty"`
}

type DirectionResponse struct {
	Direction geometry.Direction   `json:"direction"`
	Terms     []geometry.Direction `json:"terms"`
}

type BlinkRequest struct {
	Landmarks []geometry.Landmark  `json:"landmarks" validate:"required,min=1"`
	RightEye  *geometry.EyeIndices `json:"right_eye,omitempty"`
	LeftEye   *geometry.EyeIndices `json:"left_eye,omitempty"`
	Threshold *float64             `json:"threshold,omitempty" validate:"omitempty,gt=0"`
	ProfileID string               `json:"profile_id,omitempty"`
}

type BlinkResponse struct {
	Ratios    geometry.BlinkRatios `json:"ratios"`
	Threshold float64              `json:"threshold"`
	Closed    bool                 `json:"closed"`
}

type MidpointRequest struct {
	Top    geometry.Landmark `json:"top"`
	Left   geometry.Landmark `json:"left"`
	Right  geometry.Landmark `json:"right"`
	Bottom geometry.Landmark `json:"bottom"`
}

type MidpointResponse struct {
	Midpoint geometry.Point `json:"midpoint"`
}

type FrameRequest struct {
	Landmarks []geometry.Landmark `json:"landmarks" validate:"required,min=1"`
	ProfileID string              `json:"profile_id,omitempty"`
	Midpoint  bool                `json:"midpoint"`
}

type FrameResponse struct {
	ProfileID string                 `json:"profile_id,omitempty"`
	Analysis  geometry.FrameAnalysis `json:"analysis"`
}

// AnnotateRequest is the form part of a multipart annotate upload; the image
// itself travels as the "image" file field.
type AnnotateRequest struct {
	Landmarks []geometry.Landmark `json:"landmarks" validate:"required,min=1"`
	ProfileID string              `json:"profile_id,omitempty"`
	Midpoint  bool                `json:"midpoint"`
}

// StreamFrame is one client message on the landmark websocket. Faces holds
// every detected face; only the first is analyzed.
type StreamFrame struct {
	Seq   int64                 `json:"seq"`
	Faces [][]geometry.Landmark `json:"multi_face_landmarks"`
}

type StreamResult struct {
	Seq       int64                   `json:"seq"`
	FaceCount int                     `json:"face_count"`
	Analysis  *geometry.FrameAnalysis `json:"analysis,omitempty"`
	Close     geometry.CloseState     `json:"close"`
	Clicks    []geometry.ClickEvent   `json:"clicks,omitempty"`
	Cursor    geometry.Cursor         `json:"cursor"`
	Error     string                  `json:"error,omitempty"`
}

type StreamOptions struct {
	ProfileID string
	SessionID string
	Midpoint  bool
}

type StartSessionRequest struct {
	ProfileID string `json:"profile_id,omitempty"`
}

type SessionResponse struct {
	ID         string     `json:"id"`
	ProfileID  string     `json:"profile_id,omitempty"`
	OperatorID string     `json:"operator_id,omitempty"`
	ArchiveURL string     `json:"archive_url,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
}

type SessionEventsResponse struct {
	Session SessionResponse      `json:"session"`
	Events  []ClickEventResponse `json:"events"`
	Total   int                  `json:"total"`
}

type ClickEventResponse struct {
	ID        string    `json:"id"`
	Eye       string    `json:"eye"`
	Frames    int       `json:"frames"`
	HeldMs    int64     `json:"held_ms"`
	FrameSeq  int64     `json:"frame_seq"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionArchive struct {
	Session    SessionResponse      `json:"session"`
	Events     []ClickEventResponse `json:"events"`
	ExportedAt time.Time            `json:"exported_at"`
}

type ExportResponse struct {
	SessionID  string `json:"session_id"`
	ArchiveURL string `json:"archive_url"`
	Events     int    `json:"events"`
}
