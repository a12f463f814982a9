package profileService

import (
	"FaceGeometry/internal/api/profile"
	"FaceGeometry/internal/entity"
	contextPkg "FaceGeometry/pkg/context"
	"FaceGeometry/pkg/redis"
	"errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func cacheKey(id string) string {
	return "profile:" + id
}

type thresholdFields struct {
	up, down, left, right, blink, interval *float64
	hold                                   *int64
}

func (f thresholdFields) apply(p *entity.Profile) {
	if f.up != nil {
		p.DirectionUp = *f.up
	}
	if f.down != nil {
		p.DirectionDown = *f.down
	}
	if f.left != nil {
		p.DirectionLeft = *f.left
	}
	if f.right != nil {
		p.DirectionRight = *f.right
	}
	if f.blink != nil {
		p.BlinkThreshold = *f.blink
	}
	if f.interval != nil {
		p.FrameIntervalMs = *f.interval
	}
	if f.hold != nil {
		p.MinHoldMs = *f.hold
	}
}

func (s *profileService) CreateProfile(ctx context.Context, req profile.CreateProfileRequest, operatorID string) (profile.ProfileResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return profile.ProfileResponse{}, err
	}

	p := entity.DefaultProfile()
	thresholdFields{
		up: req.DirectionUp, down: req.DirectionDown, left: req.DirectionLeft, right: req.DirectionRight,
		blink: req.BlinkThreshold, interval: req.FrameIntervalMs, hold: req.MinHoldMs,
	}.apply(&p)

	now := time.Now()
	p.ID = id
	p.Name = req.Name
	p.CreatedBy = operatorID
	p.CreatedAt = now
	p.UpdatedAt = now

	repo, err := s.profileRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return profile.ProfileResponse{}, err
	}

	if err := repo.Profiles.CreateProfile(ctx, p); err != nil {
		if errors.Is(err, profile.ErrProfileNameTaken) {
			return profile.ProfileResponse{}, err
		}
		return profile.ProfileResponse{}, profile.ErrCreateProfile
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"profile_id": p.ID,
		"name":       p.Name,
	}).Info("Profile created")

	return makeProfileResponse(p), nil
}

// GetProfile reads through the cache. Cache failures are logged and fall
// back to the database.
func (s *profileService) GetProfile(ctx context.Context, id string) (entity.Profile, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if cached, err := s.cache.Get(ctx, cacheKey(id)); err == nil {
		var p entity.Profile
		if err := json.Unmarshal([]byte(cached), &p); err == nil {
			return p, nil
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"profile_id": id,
		}).Warn("Discarding malformed cached profile")
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Profile cache unavailable")
	}

	repo, err := s.profileRepo.NewClient(false)
	if err != nil {
		return entity.Profile{}, err
	}

	p, err := repo.Profiles.GetProfileByID(ctx, id)
	if err != nil {
		return entity.Profile{}, err
	}

	s.storeCache(ctx, p)
	return p, nil
}

// ResolveProfile returns the default profile for an empty id.
func (s *profileService) ResolveProfile(ctx context.Context, id string) (entity.Profile, error) {
	if id == "" {
		return entity.DefaultProfile(), nil
	}
	return s.GetProfile(ctx, id)
}

func (s *profileService) GetAllProfiles(ctx context.Context, page, limit int) (*profile.ProfileListResponse, error) {
	repo, err := s.profileRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	profiles, total, err := repo.Profiles.GetAllProfiles(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	resp := &profile.ProfileListResponse{
		Profiles: make([]profile.ProfileResponse, 0, len(profiles)),
		Total:    total,
		Page:     page,
		Limit:    limit,
	}
	for _, p := range profiles {
		resp.Profiles = append(resp.Profiles, makeProfileResponse(p))
	}

	return resp, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, id string, req profile.UpdateProfileRequest) (profile.ProfileResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.profileRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return profile.ProfileResponse{}, err
	}
	defer repo.Rollback()

	p, err := repo.Profiles.GetProfileByID(ctx, id)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	thresholdFields{
		up: req.DirectionUp, down: req.DirectionDown, left: req.DirectionLeft, right: req.DirectionRight,
		blink: req.BlinkThreshold, interval: req.FrameIntervalMs, hold: req.MinHoldMs,
	}.apply(&p)
	p.UpdatedAt = time.Now()

	if err := repo.Profiles.UpdateProfile(ctx, p); err != nil {
		if errors.Is(err, profile.ErrProfileNameTaken) || errors.Is(err, profile.ErrProfileNotFound) {
			return profile.ProfileResponse{}, err
		}
		return profile.ProfileResponse{}, profile.ErrUpdateProfile
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit profile update")
		return profile.ProfileResponse{}, profile.ErrUpdateProfile
	}

	s.evictCache(ctx, id)
	return makeProfileResponse(p), nil
}

func (s *profileService) DeleteProfile(ctx context.Context, id string) error {
	repo, err := s.profileRepo.NewClient(false)
	if err != nil {
		return err
	}

	if err := repo.Profiles.DeleteProfile(ctx, id); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return err
		}
		return profile.ErrDeleteProfile
	}

	s.evictCache(ctx, id)
	return nil
}

func (s *profileService) storeCache(ctx context.Context, p entity.Profile) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(p.ID), string(data), s.cacheTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to cache profile")
	}
}

func (s *profileService) evictCache(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, cacheKey(id)); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to evict cached profile")
	}
}

func makeProfileResponse(p entity.Profile) profile.ProfileResponse {
	return profile.ProfileResponse{
		ID:              p.ID,
		Name:            p.Name,
		DirectionUp:     p.DirectionUp,
		DirectionDown:   p.DirectionDown,
		DirectionLeft:   p.DirectionLeft,
		DirectionRight:  p.DirectionRight,
		BlinkThreshold:  p.BlinkThreshold,
		MinHoldMs:       p.MinHoldMs,
		FrameIntervalMs: p.FrameIntervalMs,
		CreatedBy:       p.CreatedBy,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
