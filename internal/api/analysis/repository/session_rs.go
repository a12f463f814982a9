package analysisRepository

import (
	"FaceGeometry/internal/api/analysis"
	"FaceGeometry/internal/entity"
	contextPkg "FaceGeometry/pkg/context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

type SessionDB struct {
	ID         sql.NullString `db:"id"`
	ProfileID  sql.NullString `db:"profile_id"`
	OperatorID sql.NullString `db:"operator_id"`
	ArchiveURL sql.NullString `db:"archive_url"`
	StartedAt  time.Time      `db:"started_at"`
	EndedAt    sql.NullTime   `db:"ended_at"`
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *sessionsRepository) CreateSession(ctx context.Context, session entity.TrackingSession) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryCreateSession, map[string]interface{}{
		"id":          session.ID,
		"profile_id":  nullString(session.ProfileID),
		"operator_id": nullString(session.OperatorID),
		"started_at":  session.StartedAt,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateSession named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateSession execution err")
		return err
	}

	return nil
}

func (r *sessionsRepository) GetSessionByID(ctx context.Context, id string) (entity.TrackingSession, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row SessionDB

	query, args, err := sqlx.Named(queryGetSessionByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSessionByID named query preparation err")
		return entity.TrackingSession{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": id,
			}).Warn("GetSessionByID no rows found")
			return entity.TrackingSession{}, analysis.ErrSessionNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSessionByID execution err")
		return entity.TrackingSession{}, err
	}

	return entity.TrackingSession{
		ID:         row.ID.String,
		ProfileID:  row.ProfileID.String,
		OperatorID: row.OperatorID.String,
		ArchiveURL: row.ArchiveURL.String,
		StartedAt:  row.StartedAt,
		EndedAt:    row.EndedAt,
	}, nil
}

func (r *sessionsRepository) EndSession(ctx context.Context, id, archiveURL string, endedAt time.Time) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryEndSession, map[string]interface{}{
		"id":          id,
		"archive_url": nullString(archiveURL),
		"ended_at":    endedAt,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("EndSession named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("EndSession execution err")
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return analysis.ErrSessionNotFound
	}

	return nil
}
