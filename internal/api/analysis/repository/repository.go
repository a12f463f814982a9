package analysisRepository

import (
	"FaceGeometry/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Sessions: &sessionsRepository{q: sqlExecutor, log: r.log},
		Events:   &eventsRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Sessions interface {
		CreateSession(ctx context.Context, session entity.TrackingSession) error
		GetSessionByID(ctx context.Context, id string) (entity.TrackingSession, error)
		EndSession(ctx context.Context, id, archiveURL string, endedAt time.Time) error
	}

	Events interface {
		CreateClickEvent(ctx context.Context, event entity.ClickEvent) error
		GetEventsBySession(ctx context.Context, sessionID string) ([]entity.ClickEvent, error)
	}

	Commit   func() error
	Rollback func() error
}

type sessionsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type eventsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
