package profileRepository

import (
	"FaceGeometry/internal/api/profile"
	"FaceGeometry/internal/entity"
	contextPkg "FaceGeometry/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"time"
)

type ProfileDB struct {
	ID              sql.NullString  `db:"id"`
	Name            sql.NullString  `db:"name"`
	DirectionUp     sql.NullFloat64 `db:"direction_up"`
	DirectionDown   sql.NullFloat64 `db:"direction_down"`
	DirectionLeft   sql.NullFloat64 `db:"direction_left"`
	DirectionRight  sql.NullFloat64 `db:"direction_right"`
	BlinkThreshold  sql.NullFloat64 `db:"blink_threshold"`
	MinHoldMs       sql.NullInt64   `db:"min_hold_ms"`
	FrameIntervalMs sql.NullFloat64 `db:"frame_interval_ms"`
	CreatedBy       sql.NullString  `db:"created_by"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func profileArgs(p entity.Profile) map[string]interface{} {
	return map[string]interface{}{
		"id":                p.ID,
		"name":              p.Name,
		"direction_up":      p.DirectionUp,
		"direction_down":    p.DirectionDown,
		"direction_left":    p.DirectionLeft,
		"direction_right":   p.DirectionRight,
		"blink_threshold":   p.BlinkThreshold,
		"min_hold_ms":       p.MinHoldMs,
		"frame_interval_ms": p.FrameIntervalMs,
		"created_by":        sql.NullString{String: p.CreatedBy, Valid: p.CreatedBy != ""},
		"created_at":        p.CreatedAt,
		"updated_at":        p.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *profilesRepository) CreateProfile(ctx context.Context, p entity.Profile) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryCreateProfile, profileArgs(p))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateProfile")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"name":       p.Name,
			}).Warn("Profile name already exists")
			return profile.ErrProfileNameTaken
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating profile")
		return err
	}

	return nil
}

func (r *profilesRepository) GetProfileByID(ctx context.Context, id string) (entity.Profile, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row ProfileDB

	query, args, err := sqlx.Named(queryGetProfileByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetProfileByID named query preparation err")
		return entity.Profile{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"profile_id": id,
			}).Warn("GetProfileByID no rows found")
			return entity.Profile{}, profile.ErrProfileNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetProfileByID execution err")
		return entity.Profile{}, err
	}

	return r.makeProfile(row), nil
}

func (r *profilesRepository) GetAllProfiles(ctx context.Context, limit, offset int) ([]entity.Profile, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []ProfileDB
	var total int

	countQuery := r.q.Rebind(queryCountAllProfiles)
	if err := r.q.QueryRowxContext(ctx, countQuery).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountAllProfiles execution err")
		return nil, 0, err
	}

	query, args, err := sqlx.Named(queryGetAllProfiles, map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllProfiles named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllProfiles execution err")
		return nil, 0, err
	}

	profiles := make([]entity.Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, r.makeProfile(row))
	}

	return profiles, total, nil
}

func (r *profilesRepository) UpdateProfile(ctx context.Context, p entity.Profile) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryUpdateProfile, profileArgs(p))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateProfile named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return profile.ErrProfileNameTaken
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateProfile execution err")
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return profile.ErrProfileNotFound
	}

	return nil
}

func (r *profilesRepository) DeleteProfile(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteProfile, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteProfile named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteProfile execution err")
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return profile.ErrProfileNotFound
	}

	return nil
}

func (r *profilesRepository) makeProfile(row ProfileDB) entity.Profile {
	return entity.Profile{
		ID:              row.ID.String,
		Name:            row.Name.String,
		DirectionUp:     row.DirectionUp.Float64,
		DirectionDown:   row.DirectionDown.Float64,
		DirectionLeft:   row.DirectionLeft.Float64,
		DirectionRight:  row.DirectionRight.Float64,
		BlinkThreshold:  row.BlinkThreshold.Float64,
		MinHoldMs:       row.MinHoldMs.Int64,
		FrameIntervalMs: row.FrameIntervalMs.Float64,
		CreatedBy:       row.CreatedBy.String,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
