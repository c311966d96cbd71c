package story

import (
	"context"

	"github.com/rs/zerolog/log"

	storyModel "lull/internal/model/story"
	"lull/internal/pkg/cache"
	"lull/internal/service"
)

// StoryWithAudio a story plus a playable narration URL when audio is ready
type StoryWithAudio struct {
	*storyModel.Story
	AudioURL string `json:"audio_url,omitempty"`
}

// ListStories lists the caller's stories, newest first
func (s *Service) ListStories(ctx context.Context, userID string) ([]*StoryWithAudio, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	stories, err := s.repos.Stories.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withAudioURLs(ctx, stories), nil
}

// ListFavorites lists the caller's favorite stories, newest first
func (s *Service) ListFavorites(ctx context.Context, userID string) ([]*StoryWithAudio, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	stories, err := s.repos.Stories.FindFavoritesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withAudioURLs(ctx, stories), nil
}

// ListStoriesByChild lists the stories generated for one saved profile.
// The profile itself is ownership-checked first.
func (s *Service) ListStoriesByChild(ctx context.Context, userID, childID string) ([]*StoryWithAudio, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	profile, err := s.repos.Profiles.FindByID(ctx, childID)
	if err != nil || profile.UserID != userID {
		return nil, service.ErrNotFound
	}

	stories, err := s.repos.Stories.FindByChildID(ctx, userID, childID)
	if err != nil {
		return nil, err
	}
	return s.withAudioURLs(ctx, stories), nil
}

// GetStory fetches one story with its narration URL.
// A story owned by someone else reads as not found.
func (s *Service) GetStory(ctx context.Context, userID, storyID string) (*StoryWithAudio, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	st, err := s.repos.Stories.FindByID(ctx, storyID)
	if err != nil || st.UserID != userID {
		return nil, service.ErrNotFound
	}

	return &StoryWithAudio{
		Story:    st,
		AudioURL: s.storyAudioURL(ctx, st),
	}, nil
}

// ToggleFavorite flips the favorite flag and returns the new value
func (s *Service) ToggleFavorite(ctx context.Context, userID, storyID string) (bool, error) {
	if userID == "" {
		return false, service.ErrUnauthenticated
	}

	st, err := s.repos.Stories.FindByID(ctx, storyID)
	if err != nil {
		return false, service.ErrNotFound
	}
	if st.UserID != userID {
		return false, service.ErrUnauthorized
	}

	next := !st.IsFavorite
	if err := s.repos.Stories.SetFavorite(ctx, storyID, next); err != nil {
		return false, err
	}
	return next, nil
}

// DeleteStory removes a story and its narration audio if present.
// The audio delete is best effort; the row goes regardless.
func (s *Service) DeleteStory(ctx context.Context, userID, storyID string) error {
	if userID == "" {
		return service.ErrUnauthenticated
	}

	st, err := s.repos.Stories.FindByID(ctx, storyID)
	if err != nil {
		return service.ErrNotFound
	}
	if st.UserID != userID {
		return service.ErrUnauthorized
	}

	if st.AudioKey != "" {
		if err := s.store.Delete(ctx, st.AudioKey); err != nil {
			log.Warn().Err(err).Str("story_id", storyID).Str("audio_key", st.AudioKey).Msg("failed to delete story audio, continuing")
		}
	}

	return s.repos.Stories.Delete(ctx, storyID)
}

func (s *Service) withAudioURLs(ctx context.Context, stories []*storyModel.Story) []*StoryWithAudio {
	out := make([]*StoryWithAudio, 0, len(stories))
	for _, st := range stories {
		out = append(out, &StoryWithAudio{
			Story:    st,
			AudioURL: s.storyAudioURL(ctx, st),
		})
	}
	return out
}

func (s *Service) storyAudioURL(ctx context.Context, st *storyModel.Story) string {
	if st.AudioStatus != storyModel.AudioStatusReady || st.AudioKey == "" {
		return ""
	}
	return s.audioURL(ctx, st.AudioKey)
}

// audioURL presigns a playback URL for a stored audio object, going through
// the redis cache when one is configured. URL failures degrade to an empty
// string; the record itself still renders.
func (s *Service) audioURL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}

	cacheKey := cache.AudioURLCacheKey(key)
	if s.cache != nil {
		var cached string
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && cached != "" {
			return cached
		}
	}

	url, err := s.store.GetPresignedDownloadURL(ctx, key, s.presignExpiry)
	if err != nil {
		log.Warn().Err(err).Str("audio_key", key).Msg("failed to presign audio URL")
		return ""
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, url, cache.AudioURLCacheTTL); err != nil {
			log.Warn().Err(err).Str("audio_key", key).Msg("failed to cache audio URL")
		}
	}

	return url
}
