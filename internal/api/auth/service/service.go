package authService

import (
	"FaceGeometry/internal/api/auth"
	authRepository "FaceGeometry/internal/api/auth/repository"
	"FaceGeometry/internal/entity"
	"FaceGeometry/pkg/bcrypt"
	"FaceGeometry/pkg/utils"
	"context"
	"github.com/sirupsen/logrus"
)

type AuthService interface {
	Operator() OperatorDomain
	Token() TokenDomain
	GetRepository() authRepository.Repository
}

type OperatorDomain interface {
	CreateOperator(c context.Context, req auth.CreateOperatorRequest) (auth.OperatorResponse, error)
	GetOperator(c context.Context, id string) (auth.OperatorResponse, error)
	EnsureOperator(c context.Context, email, username, apiKey string) error
}

type TokenDomain interface {
	IssueToken(c context.Context, req auth.TokenRequest) (auth.TokenResponse, error)
}

type authService struct {
	log            *logrus.Logger
	authRepository authRepository.Repository

	operatorDomain OperatorDomain
	tokenDomain    TokenDomain
}

func (a *authService) Operator() OperatorDomain {
	return a.operatorDomain
}

func (a *authService) Token() TokenDomain {
	return a.tokenDomain
}

func (a *authService) GetRepository() authRepository.Repository {
	return a.authRepository
}

type operatorDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	bcryptUtils bcrypt.IBcrypt
	utils       utils.IUtils
}

type tokenDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	bcryptUtils bcrypt.IBcrypt
}

func New(log *logrus.Logger,
	authRepo authRepository.Repository,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
) AuthService {
	return &authService{
		log:            log,
		authRepository: authRepo,

		operatorDomain: &operatorDomainImpl{log: log, repo: authRepo, bcryptUtils: bcryptUtils, utils: utils},
		tokenDomain:    &tokenDomainImpl{log: log, repo: authRepo, bcryptUtils: bcryptUtils},
	}
}

func MakeOperatorData(operator entity.Operator) map[string]interface{} {
	return map[string]interface{}{
		"id":       operator.ID,
		"email":    operator.Email,
		"username": operator.Username,
	}
}
