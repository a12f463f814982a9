package authService

import (
	"FaceGeometry/internal/api/auth"
	"FaceGeometry/internal/entity"
	contextPkg "FaceGeometry/pkg/context"
	"context"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"time"
)

// CreateOperator generates a fresh API key; it is returned once and only its
// hash is stored.
func (s *operatorDomainImpl) CreateOperator(c context.Context, req auth.CreateOperatorRequest) (auth.OperatorResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	apiKey, err := s.utils.NewAPIKey()
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate api key")
		return auth.OperatorResponse{}, auth.ErrCreateOperator
	}

	operator, err := s.create(c, req.Email, req.Username, apiKey)
	if err != nil {
		return auth.OperatorResponse{}, err
	}

	resp := makeOperatorResponse(operator)
	resp.APIKey = apiKey
	return resp, nil
}

func (s *operatorDomainImpl) GetOperator(c context.Context, id string) (auth.OperatorResponse, error) {
	repo, err := s.repo.NewClient(false)
	if err != nil {
		return auth.OperatorResponse{}, err
	}

	operator, err := repo.Operators.GetByID(c, id)
	if err != nil {
		return auth.OperatorResponse{}, err
	}

	return makeOperatorResponse(operator), nil
}

// EnsureOperator creates the operator with a known API key unless the email
// is already registered.
func (s *operatorDomainImpl) EnsureOperator(c context.Context, email, username, apiKey string) error {
	repo, err := s.repo.NewClient(false)
	if err != nil {
		return err
	}

	_, err = repo.Operators.GetByEmail(c, email)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, auth.ErrOperatorNotFound):
		return err
	}

	if _, err := s.create(c, email, username, apiKey); err != nil && !errors.Is(err, auth.ErrEmailAlreadyExists) {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"email": email,
	}).Info("Bootstrap operator created")
	return nil
}

func (s *operatorDomainImpl) create(c context.Context, email, username, apiKey string) (entity.Operator, error) {
	requestID := contextPkg.GetRequestID(c)

	hash, err := s.bcryptUtils.HashSecret(apiKey)
	if err != nil {
		return entity.Operator{}, fmt.Errorf("hash api key: %w", err)
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return entity.Operator{}, auth.ErrCreateOperator
	}

	now := time.Now()
	operator := entity.Operator{
		ID:         id,
		Email:      email,
		Username:   username,
		APIKeyHash: hash,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return entity.Operator{}, err
	}

	if err := repo.Operators.CreateOperator(c, operator); err != nil {
		return entity.Operator{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"operator_id": id,
	}).Info("Operator created")

	return operator, nil
}

func makeOperatorResponse(operator entity.Operator) auth.OperatorResponse {
	return auth.OperatorResponse{
		ID:        operator.ID,
		Email:     operator.Email,
		Username:  operator.Username,
		CreatedAt: operator.CreatedAt,
	}
}
