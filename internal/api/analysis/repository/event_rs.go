package analysisRepository

import (
	"FaceGeometry/internal/entity"
	contextPkg "FaceGeometry/pkg/context"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (r *eventsRepository) CreateClickEvent(ctx context.Context, event entity.ClickEvent) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryCreateClickEvent, event)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateClickEvent named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": event.SessionID,
			"error":      err.Error(),
		}).Error("CreateClickEvent execution err")
		return err
	}

	return nil
}

func (r *eventsRepository) GetEventsBySession(ctx context.Context, sessionID string) ([]entity.ClickEvent, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var events []entity.ClickEvent

	query, args, err := sqlx.Named(queryGetEventsBySession, map[string]interface{}{"session_id": sessionID})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetEventsBySession named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &events, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetEventsBySession execution err")
		return nil, err
	}

	return events, nil
}
