package story

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	storyModel "lull/internal/model/story"
	"lull/internal/pkg/id"
	"lull/internal/service"
)

// CreateProfile saves a child profile
func (s *Service) CreateProfile(ctx context.Context, userID, name string, age int, interests string) (*storyModel.ChildProfile, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}
	if name == "" || age <= 0 {
		return nil, service.ErrInvalidInput
	}

	profile := &storyModel.ChildProfile{
		ID:        id.New(),
		UserID:    userID,
		Name:      name,
		Age:       age,
		Interests: interests,
	}

	if err := s.repos.Profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ListProfiles lists the caller's child profiles
func (s *Service) ListProfiles(ctx context.Context, userID string) ([]*storyModel.ChildProfile, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}
	return s.repos.Profiles.FindByUserID(ctx, userID)
}

// GetProfile fetches one profile.
// A profile owned by someone else reads as not found.
func (s *Service) GetProfile(ctx context.Context, userID, profileID string) (*storyModel.ChildProfile, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	profile, err := s.repos.Profiles.FindByID(ctx, profileID)
	if err != nil || profile.UserID != userID {
		return nil, service.ErrNotFound
	}
	return profile, nil
}

// UpdateProfile applies a partial update to a profile
func (s *Service) UpdateProfile(ctx context.Context, userID, profileID string, name *string, age *int, interests *string) (*storyModel.ChildProfile, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	profile, err := s.repos.Profiles.FindByID(ctx, profileID)
	if err != nil {
		return nil, service.ErrNotFound
	}
	if profile.UserID != userID {
		return nil, service.ErrUnauthorized
	}

	set := bson.M{}
	if name != nil && *name != "" {
		set["name"] = *name
		profile.Name = *name
	}
	if age != nil && *age > 0 {
		set["age"] = *age
		profile.Age = *age
	}
	if interests != nil {
		set["interests"] = *interests
		profile.Interests = *interests
	}
	if len(set) == 0 {
		return profile, nil
	}

	if err := s.repos.Profiles.Update(ctx, profileID, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteProfile removes a profile.
// Stories keep the child name they captured at creation, so nothing
// cascades.
func (s *Service) DeleteProfile(ctx context.Context, userID, profileID string) error {
	if userID == "" {
		return service.ErrUnauthenticated
	}

	profile, err := s.repos.Profiles.FindByID(ctx, profileID)
	if err != nil {
		return service.ErrNotFound
	}
	if profile.UserID != userID {
		return service.ErrUnauthorized
	}

	return s.repos.Profiles.Delete(ctx, profileID)
}
