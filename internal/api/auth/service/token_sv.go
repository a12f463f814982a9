package authService

import (
	"FaceGeometry/internal/api/auth"
	contextPkg "FaceGeometry/pkg/context"
	jwtPkg "FaceGeometry/pkg/jwt"
	"context"
	"errors"
	"github.com/sirupsen/logrus"
	"time"
)

const tokenLifetime = time.Hour

func (s *tokenDomainImpl) IssueToken(c context.Context, req auth.TokenRequest) (auth.TokenResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.TokenResponse{}, err
	}

	operator, err := repo.Operators.GetByEmail(c, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrOperatorNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("Token requested for unknown operator")
			return auth.TokenResponse{}, auth.ErrInvalidEmailOrAPIKey
		}
		return auth.TokenResponse{}, err
	}

	if err := s.bcryptUtils.CompareSecret(operator.APIKeyHash, req.APIKey); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"operator_id": operator.ID,
		}).Warn("API key comparison failed")
		return auth.TokenResponse{}, auth.ErrInvalidEmailOrAPIKey
	}

	token, expired, err := jwtPkg.Sign(MakeOperatorData(operator), tokenLifetime)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign token")
		return auth.TokenResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"operator_id": operator.ID,
	}).Info("Token created")

	return auth.TokenResponse{
		AccessToken:      token,
		ExpiresInMinutes: time.Until(time.Unix(expired, 0)).Minutes(),
	}, nil
}
