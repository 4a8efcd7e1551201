// Package service provides application business logic (tweets, feed, users, media).
package service

import (
	"context"
	"encoding/hex"
	"errors"

	"chirp/internal/cache"
	"chirp/internal/models"
	"chirp/internal/repository"

	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
)

// UserService provides identity resolution, profiles and the follow graph.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	pepper     []byte
}

// NewUserService returns a new UserService. The pepper is mixed into api key
// digests so a leaked table alone is not enough to forge credentials.
func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository, pepper string) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		pepper:     []byte(pepper),
	}
}

// UserRef is the compact user representation embedded in profiles and tweets.
type UserRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Profile is a user together with both sides of their follow graph.
type Profile struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Followers []UserRef `json:"followers"`
	Following []UserRef `json:"following"`
}

// DigestAPIKey returns the hex keyed digest of a raw api key. Raw keys are
// never stored or compared directly.
func (s *UserService) DigestAPIKey(rawKey string) string {
	h, err := blake2b.New256(s.pepper)
	if err != nil {
		// Only possible with a pepper longer than 64 bytes, which config
		// validation rejects.
		panic(err)
	}
	h.Write([]byte(rawKey))
	return hex.EncodeToString(h.Sum(nil))
}

// ResolveAPIKey maps a raw api key onto the user owning it.
func (s *UserService) ResolveAPIKey(ctx context.Context, rawKey string) (*models.User, error) {
	user, err := s.userRepo.GetByAPIKeyDigest(ctx, s.DigestAPIKey(rawKey))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(models.ErrTypeInvalidAPIKey, "api key does not match any user")
		}
		return nil, err
	}
	return user, nil
}

// GetProfile returns the user's profile with followers and following resolved.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	var profile Profile
	err := cache.Aside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		followers, err := s.followRepo.Followers(ctx, userID)
		if err != nil {
			return err
		}
		following, err := s.followRepo.Following(ctx, userID)
		if err != nil {
			return err
		}

		profile = Profile{
			ID:        user.ID,
			Name:      user.FullName(),
			Followers: toUserRefs(followers),
			Following: toUserRefs(following),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(models.ErrTypeInvalidUserID, "user does not exist")
		}
		return nil, err
	}
	return &profile, nil
}

// Follow makes followerID follow targetID. Following an already-followed user
// is a no-op; following yourself is rejected.
func (s *UserService) Follow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewValidationError("you cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError(models.ErrTypeInvalidUserID, "user does not exist")
		}
		return err
	}

	if err := s.followRepo.Follow(ctx, followerID, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError(models.ErrTypeInvalidUserID, "user does not exist")
		}
		return err
	}

	cache.InvalidateProfile(ctx, followerID)
	cache.InvalidateProfile(ctx, targetID)
	return nil
}

// Unfollow removes the follow edge. Unfollowing someone you do not follow
// succeeds without effect.
func (s *UserService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewValidationError("you cannot unfollow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError(models.ErrTypeInvalidUserID, "user does not exist")
		}
		return err
	}

	if err := s.followRepo.Unfollow(ctx, followerID, targetID); err != nil {
		return err
	}

	cache.InvalidateProfile(ctx, followerID)
	cache.InvalidateProfile(ctx, targetID)
	return nil
}

func toUserRefs(users []*models.User) []UserRef {
	refs := make([]UserRef, 0, len(users))
	for _, u := range users {
		refs = append(refs, UserRef{ID: u.ID, Name: u.FullName()})
	}
	return refs
}
