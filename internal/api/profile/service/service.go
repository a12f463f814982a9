package profileService

import (
	"FaceGeometry/internal/api/profile"
	profileRepository "FaceGeometry/internal/api/profile/repository"
	"FaceGeometry/internal/entity"
	"FaceGeometry/pkg/redis"
	"FaceGeometry/pkg/utils"
	"context"
	"github.com/sirupsen/logrus"
	"time"
)

type IProfileService interface {
	CreateProfile(ctx context.Context, req profile.CreateProfileRequest, operatorID string) (profile.ProfileResponse, error)
	GetProfile(ctx context.Context, id string) (entity.Profile, error)
	ResolveProfile(ctx context.Context, id string) (entity.Profile, error)
	GetAllProfiles(ctx context.Context, page, limit int) (*profile.ProfileListResponse, error)
	UpdateProfile(ctx context.Context, id string, req profile.UpdateProfileRequest) (profile.ProfileResponse, error)
	DeleteProfile(ctx context.Context, id string) error
}

type profileService struct {
	log         *logrus.Logger
	profileRepo profileRepository.Repository
	cache       redis.IRedis
	cacheTTL    time.Duration
	utils       utils.IUtils
}

func NewProfileService(
	log *logrus.Logger,
	profileRepo profileRepository.Repository,
	cache redis.IRedis,
	utils utils.IUtils,
) IProfileService {
	return &profileService{
		log:         log,
		profileRepo: profileRepo,
		cache:       cache,
		cacheTTL:    10 * time.Minute,
		utils:       utils,
	}
}
