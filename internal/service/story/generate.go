package story

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	storyModel "lull/internal/model/story"
	"lull/internal/pkg/id"
	"lull/internal/pkg/storyteller"
	"lull/internal/service"
)

// GenerateStory generates the full story text for a chosen idea and
// persists it with pending audio. Child name and voice name are copied onto
// the story here, so later profile or preset changes leave it untouched.
func (s *Service) GenerateStory(ctx context.Context, userID string, idea storyteller.Idea, child ChildSelector, voice VoiceSelector) (*storyModel.Story, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}
	if idea.Title == "" || idea.Description == "" {
		return nil, service.ErrInvalidInput
	}

	descriptor, childID, err := s.resolveChild(ctx, userID, child)
	if err != nil {
		return nil, err
	}

	preset, voiceName, voiceDescription, err := s.resolveVoice(ctx, userID, voice)
	if err != nil {
		return nil, err
	}

	apiKey, err := s.creds.Resolve(ctx, userID, service.ProviderOpenAI)
	if err != nil {
		return nil, err
	}

	prompt := storyteller.BuildStoryPrompt(idea, descriptor)

	content, err := s.text.Generate(ctx, apiKey, prompt)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("title", idea.Title).Msg("story generation call failed")
		return nil, fmt.Errorf("%w: %v", service.ErrGenerationFailed, err)
	}

	st := &storyModel.Story{
		ID:               id.New(),
		UserID:           userID,
		ChildID:          childID,
		ChildName:        descriptor.Name,
		Title:            idea.Title,
		Content:          content,
		VoiceName:        voiceName,
		VoiceDescription: voiceDescription,
		AudioStatus:      storyModel.AudioStatusPending,
	}
	if preset != nil {
		st.VoicePresetID = preset.ID
	}

	if err := s.repos.Stories.Create(ctx, st); err != nil {
		// The generated text is not cached; a retry regenerates it.
		log.Error().Err(err).Str("user_id", userID).Str("title", idea.Title).Msg("failed to save generated story")
		return nil, service.ErrSaveFailed
	}

	log.Info().
		Str("story_id", st.ID).
		Str("user_id", userID).
		Str("title", st.Title).
		Int("content_len", len(content)).
		Msg("story generated")

	return st, nil
}
