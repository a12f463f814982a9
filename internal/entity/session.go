package entity

import (
	"database/sql"
	"time"
)

type TrackingSession struct {
	ID         string       `db:"id"`
	ProfileID  string       `db:"profile_id"`
	OperatorID string       `db:"operator_id"`
	ArchiveURL string       `db:"archive_url"`
	StartedAt  time.Time    `db:"started_at"`
	EndedAt    sql.NullTime `db:"ended_at"`
}

type ClickEvent struct {
	ID        string    `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"session_id"`
	Eye       string    `db:"eye" json:"eye"`
	Frames    int       `db:"frames" json:"frames"`
	HeldMs    int64     `db:"held_ms" json:"held_ms"`
	FrameSeq  int64     `db:"frame_seq" json:"frame_seq"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
