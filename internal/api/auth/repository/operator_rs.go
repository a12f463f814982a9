package authRepository

import (
	"FaceGeometry/internal/api/auth"
	"FaceGeometry/internal/entity"
	contextPkg "FaceGeometry/pkg/context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (r *operatorRepository) CreateOperator(ctx context.Context, operator entity.Operator) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryCreateOperator, operator)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateOperator")
		return err
	}

	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"email":      operator.Email,
			}).Warn("Email already exists")
			return auth.ErrEmailAlreadyExists
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating operator")
		return err
	}

	return nil
}

func (r *operatorRepository) GetByEmail(ctx context.Context, email string) (entity.Operator, error) {
	return r.getOne(ctx, queryGetByEmail, "GetByEmail", map[string]interface{}{"email": email})
}

func (r *operatorRepository) GetByID(ctx context.Context, id string) (entity.Operator, error) {
	return r.getOne(ctx, queryGetByID, "GetByID", map[string]interface{}{"id": id})
}

func (r *operatorRepository) getOne(ctx context.Context, namedQuery, op string, argsKV map[string]interface{}) (entity.Operator, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var operator entity.Operator

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return entity.Operator{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&operator); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn(op + " no rows found")
			return entity.Operator{}, auth.ErrOperatorNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return entity.Operator{}, err
	}

	return operator, nil
}
