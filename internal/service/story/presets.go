package story

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	storyModel "lull/internal/model/story"
	"lull/internal/pkg/hume"
	"lull/internal/pkg/id"
	"lull/internal/pkg/storyteller"
	"lull/internal/service"
)

// PresetWithAudio a voice preset plus a playable sample URL
type PresetWithAudio struct {
	*storyModel.VoicePreset
	SampleAudioURL string `json:"sample_audio_url,omitempty"`
}

// CreatePreset provisions a persistent voice from a free-text description.
//
// A fixed sample script is synthesized with the description, the resulting
// generation is registered with the provider under the given name, and the
// sample audio plus the preset row are persisted. The provider enforces name
// uniqueness; a conflict surfaces as ErrDuplicateVoiceName and leaves no
// local row or blob behind. A failure after registration succeeded leaves
// an orphaned provider-side voice, which is accepted and logged.
func (s *Service) CreatePreset(ctx context.Context, userID, name, description string) (*storyModel.VoicePreset, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}
	if name == "" || description == "" {
		return nil, service.ErrInvalidInput
	}

	apiKey, err := s.creds.Resolve(ctx, userID, service.ProviderHume)
	if err != nil {
		return nil, err
	}

	sample, err := s.tts.Synthesize(ctx, apiKey, []hume.Utterance{{
		Text:        storyteller.SampleScript,
		Description: description,
	}})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("name", name).Msg("sample synthesis failed")
		return nil, fmt.Errorf("%w: %v", service.ErrProviderError, err)
	}

	// The generation id doubles as the persistent voice id once registered.
	if err := s.tts.CreateVoice(ctx, apiKey, name, sample.GenerationID); err != nil {
		if hume.IsDuplicateNameError(err) {
			return nil, fmt.Errorf("%w: %s", service.ErrDuplicateVoiceName, name)
		}
		log.Error().Err(err).Str("user_id", userID).Str("name", name).Msg("voice registration failed")
		return nil, fmt.Errorf("%w: %v", service.ErrProviderError, err)
	}

	presetID := id.New()
	sampleKey := fmt.Sprintf("voice-presets/%s/sample.wav", presetID)
	if _, err := s.store.Upload(ctx, sampleKey, bytes.NewReader(sample.Audio), "audio/wav"); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("name", name).Msg("failed to store voice sample, provider voice orphaned")
		return nil, fmt.Errorf("%w: %v", service.ErrStorageFailed, err)
	}

	preset := &storyModel.VoicePreset{
		ID:             presetID,
		UserID:         userID,
		Name:           name,
		Description:    description,
		HumeVoiceID:    sample.GenerationID,
		SampleAudioKey: sampleKey,
	}

	if err := s.repos.Presets.Create(ctx, preset); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("name", name).Msg("failed to save voice preset, provider voice orphaned")
		return nil, service.ErrSaveFailed
	}

	log.Info().
		Str("preset_id", preset.ID).
		Str("user_id", userID).
		Str("name", name).
		Msg("voice preset provisioned")

	return preset, nil
}

// ListPresets lists the caller's presets with sample audio URLs
func (s *Service) ListPresets(ctx context.Context, userID string) ([]*PresetWithAudio, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	presets, err := s.repos.Presets.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*PresetWithAudio, 0, len(presets))
	for _, p := range presets {
		out = append(out, &PresetWithAudio{
			VoicePreset:    p,
			SampleAudioURL: s.audioURL(ctx, p.SampleAudioKey),
		})
	}
	return out, nil
}

// GetPreset fetches one preset with its sample audio URL.
// A preset owned by someone else reads as not found.
func (s *Service) GetPreset(ctx context.Context, userID, presetID string) (*PresetWithAudio, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	preset, err := s.repos.Presets.FindByID(ctx, presetID)
	if err != nil || preset.UserID != userID {
		return nil, service.ErrNotFound
	}

	return &PresetWithAudio{
		VoicePreset:    preset,
		SampleAudioURL: s.audioURL(ctx, preset.SampleAudioKey),
	}, nil
}

// UpdatePreset renames a preset or replaces its description.
// The provider-side voice keeps its original name; only the local row changes.
func (s *Service) UpdatePreset(ctx context.Context, userID, presetID string, name, description *string) (*storyModel.VoicePreset, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	preset, err := s.repos.Presets.FindByID(ctx, presetID)
	if err != nil {
		return nil, service.ErrNotFound
	}
	if preset.UserID != userID {
		return nil, service.ErrUnauthorized
	}

	set := bson.M{}
	if name != nil && *name != "" {
		set["name"] = *name
		preset.Name = *name
	}
	if description != nil && *description != "" {
		set["description"] = *description
		preset.Description = *description
	}
	if len(set) == 0 {
		return preset, nil
	}

	if err := s.repos.Presets.Update(ctx, presetID, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return preset, nil
}

// DeletePreset removes a preset.
//
// The provider-side voice is deleted best effort; a failure there is logged
// and ignored. The sample blob must delete successfully before the row goes,
// otherwise the operation aborts and the row stays, so no blob is ever left
// without a referencing record.
func (s *Service) DeletePreset(ctx context.Context, userID, presetID string) error {
	if userID == "" {
		return service.ErrUnauthenticated
	}

	preset, err := s.repos.Presets.FindByID(ctx, presetID)
	if err != nil {
		return service.ErrNotFound
	}
	if preset.UserID != userID {
		return service.ErrUnauthorized
	}

	if apiKey, err := s.creds.Resolve(ctx, userID, service.ProviderHume); err == nil {
		if err := s.tts.DeleteVoice(ctx, apiKey, preset.HumeVoiceID); err != nil {
			log.Warn().Err(err).Str("preset_id", presetID).Str("voice_id", preset.HumeVoiceID).Msg("failed to delete provider voice, continuing")
		}
	} else {
		log.Warn().Err(err).Str("preset_id", presetID).Msg("no speech credential, skipping provider voice delete")
	}

	if err := s.store.Delete(ctx, preset.SampleAudioKey); err != nil {
		log.Error().Err(err).Str("preset_id", presetID).Str("sample_key", preset.SampleAudioKey).Msg("failed to delete voice sample, keeping preset")
		return fmt.Errorf("%w: %v", service.ErrStorageFailed, err)
	}

	return s.repos.Presets.Delete(ctx, presetID)
}
