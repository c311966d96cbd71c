package story

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	storyModel "lull/internal/model/story"
	"lull/internal/pkg/hume"
	"lull/internal/pkg/storyteller"
	"lull/internal/service"
)

// retryableStates are the audio states synthesis may start from. A story
// already in generating is owned by another in-flight request; everything
// else, including ready, may be re-synthesized.
var retryableStates = []storyModel.AudioStatus{
	storyModel.AudioStatusPending,
	storyModel.AudioStatusReady,
	storyModel.AudioStatusError,
}

// SynthesizeAudio narrates a story and stores the audio.
//
// The credential check runs before the story is touched, so a user without
// a speech key never flips a story into generating. The transition to
// generating is a conditional update: of N concurrent requests exactly one
// proceeds, the rest fail with ErrSynthesisInProgress. From generating the
// story always ends in ready or error; there is no automatic retry.
func (s *Service) SynthesizeAudio(ctx context.Context, userID, storyID string) (*storyModel.Story, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	apiKey, err := s.creds.Resolve(ctx, userID, service.ProviderHume)
	if err != nil {
		return nil, err
	}

	st, err := s.repos.Stories.FindByID(ctx, storyID)
	if err != nil {
		return nil, service.ErrNotFound
	}
	if st.UserID != userID {
		return nil, service.ErrUnauthorized
	}

	won, err := s.repos.Stories.TransitionAudioStatus(ctx, st.ID, retryableStates, storyModel.AudioStatusGenerating)
	if err != nil {
		return nil, fmt.Errorf("failed to mark story generating: %w", err)
	}
	if !won {
		return nil, service.ErrSynthesisInProgress
	}

	utterance, err := s.buildUtterance(ctx, st)
	if err != nil {
		s.markAudioError(ctx, st.ID)
		return nil, err
	}

	synth, err := s.tts.Synthesize(ctx, apiKey, []hume.Utterance{utterance})
	if err != nil {
		log.Error().Err(err).Str("story_id", st.ID).Msg("audio synthesis failed")
		s.markAudioError(ctx, st.ID)
		return nil, fmt.Errorf("%w: %v", service.ErrSynthesisFailed, err)
	}

	audioKey := fmt.Sprintf("stories/%s/audio.wav", st.ID)
	if _, err := s.store.Upload(ctx, audioKey, bytes.NewReader(synth.Audio), "audio/wav"); err != nil {
		log.Error().Err(err).Str("story_id", st.ID).Str("audio_key", audioKey).Msg("failed to store audio")
		s.markAudioError(ctx, st.ID)
		return nil, fmt.Errorf("%w: %v", service.ErrStorageFailed, err)
	}

	if err := s.repos.Stories.UpdateAudioReady(ctx, st.ID, audioKey); err != nil {
		s.markAudioError(ctx, st.ID)
		return nil, fmt.Errorf("failed to mark story ready: %w", err)
	}

	log.Info().
		Str("story_id", st.ID).
		Str("audio_key", audioKey).
		Float64("duration", synth.Duration).
		Msg("story audio ready")

	st.AudioKey = audioKey
	st.AudioStatus = storyModel.AudioStatusReady
	return st, nil
}

// buildUtterance applies the voice precedence: preset first, then the
// story's own description, then the generic storyteller voice. A story
// referencing an unresolvable preset fails outright rather than silently
// narrating with the wrong voice.
func (s *Service) buildUtterance(ctx context.Context, st *storyModel.Story) (hume.Utterance, error) {
	if st.VoicePresetID != "" {
		preset, err := s.repos.Presets.FindByID(ctx, st.VoicePresetID)
		if err != nil {
			log.Error().Err(err).Str("story_id", st.ID).Str("preset_id", st.VoicePresetID).Msg("voice preset unresolvable")
			return hume.Utterance{}, service.ErrNotFound
		}
		return hume.Utterance{
			Text:  st.Content,
			Voice: &hume.Voice{ID: preset.HumeVoiceID},
		}, nil
	}

	description := st.VoiceDescription
	if description == "" {
		// Creation guarantees a preset or a description, so this only
		// covers rows written by older code.
		description = storyteller.FallbackVoiceDescription
	}
	return hume.Utterance{
		Text:        st.Content,
		Description: description,
	}, nil
}

func (s *Service) markAudioError(ctx context.Context, storyID string) {
	if err := s.repos.Stories.UpdateAudioStatus(ctx, storyID, storyModel.AudioStatusError); err != nil {
		log.Error().Err(err).Str("story_id", storyID).Msg("failed to mark story audio error")
	}
}
