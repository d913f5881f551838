package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"resume-tailor/internal/cache"
	"resume-tailor/internal/domain/profile"
	"resume-tailor/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxResumeChars = 100_000

type ProfileUsecase interface {
	SaveResume(ctx context.Context, userID uuid.UUID, content string, fileName *string) (profile.Resume, error)
	GetResume(ctx context.Context, userID uuid.UUID) (profile.Resume, error)
	SaveIntent(ctx context.Context, in profile.Intent) (profile.Intent, error)
	GetIntent(ctx context.Context, userID uuid.UUID) (profile.Intent, error)
}

// Profile serves the master resume and intent. Reads go through the
// user-data cache and writes invalidate it.
type Profile struct {
	resumes repository.ResumeRepository
	intents repository.IntentRepository
	cache   *cache.TTL[any]
	logger  *zap.Logger
}

func NewProfileUsecase(resumes repository.ResumeRepository, intents repository.IntentRepository, userData *cache.TTL[any], logger *zap.Logger) *Profile {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profile{resumes: resumes, intents: intents, cache: userData, logger: logger}
}

func resumeCacheKey(userID uuid.UUID) string { return "user:resume:" + userID.String() }
func intentCacheKey(userID uuid.UUID) string { return "user:intent:" + userID.String() }

func (u *Profile) SaveResume(ctx context.Context, userID uuid.UUID, content string, fileName *string) (profile.Resume, error) {
	content = strings.TrimSpace(content)
	if userID == uuid.Nil || content == "" || len([]rune(content)) > maxResumeChars {
		return profile.Resume{}, ErrInvalidInput
	}

	res := profile.Resume{UserID: userID, Content: content, FileName: fileName, UpdatedAt: time.Now().UTC()}
	if err := u.resumes.Upsert(ctx, res); err != nil {
		u.logger.Error("save resume failed", zap.String("user_id", userID.String()), zap.Error(err))
		return profile.Resume{}, ErrInternal
	}
	if u.cache != nil {
		u.cache.Delete(resumeCacheKey(userID))
	}
	return res, nil
}

func (u *Profile) GetResume(ctx context.Context, userID uuid.UUID) (profile.Resume, error) {
	res, err := cache.GetOrCompute(ctx, storeOf(u.cache), resumeCacheKey(userID), 0, func(ctx context.Context) (profile.Resume, error) {
		return u.resumes.Get(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return profile.Resume{}, ErrResumeMissing
		}
		u.logger.Error("load resume failed", zap.String("user_id", userID.String()), zap.Error(err))
		return profile.Resume{}, ErrInternal
	}
	return res, nil
}

func (u *Profile) SaveIntent(ctx context.Context, in profile.Intent) (profile.Intent, error) {
	if in.UserID == uuid.Nil {
		return profile.Intent{}, ErrInvalidInput
	}
	in.DesiredRoles = cleanList(in.DesiredRoles)
	in.Companies = cleanList(in.Companies)
	in.Locations = cleanList(in.Locations)
	in.WorkMode = strings.ToLower(strings.TrimSpace(in.WorkMode))
	switch in.WorkMode {
	case "", "remote", "hybrid", "onsite":
	default:
		return profile.Intent{}, ErrInvalidInput
	}
	in.UpdatedAt = time.Now().UTC()

	if err := u.intents.Upsert(ctx, in); err != nil {
		u.logger.Error("save intent failed", zap.String("user_id", in.UserID.String()), zap.Error(err))
		return profile.Intent{}, ErrInternal
	}
	if u.cache != nil {
		u.cache.Delete(intentCacheKey(in.UserID))
	}
	return in, nil
}

func (u *Profile) GetIntent(ctx context.Context, userID uuid.UUID) (profile.Intent, error) {
	in, err := cache.GetOrCompute(ctx, storeOf(u.cache), intentCacheKey(userID), 0, func(ctx context.Context) (profile.Intent, error) {
		return u.intents.Get(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrIntentNotFound) {
			return profile.Intent{}, ErrIntentNotFound
		}
		u.logger.Error("load intent failed", zap.String("user_id", userID.String()), zap.Error(err))
		return profile.Intent{}, ErrInternal
	}
	return in, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

// storeOf avoids handing GetOrCompute a typed nil inside a non-nil interface.
func storeOf(c *cache.TTL[any]) cache.Store {
	if c == nil {
		return nil
	}
	return c
}
