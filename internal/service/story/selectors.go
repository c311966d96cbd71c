package story

import (
	"context"

	storyModel "lull/internal/model/story"
	"lull/internal/pkg/storyteller"
	"lull/internal/service"
)

// ChildSelector picks the child a story is for: a saved profile or one-off
// details. Exactly one side must be set.
type ChildSelector struct {
	ProfileID string
	AdHoc     *storyteller.ChildDescriptor
}

// ManualVoice a voice the user typed in rather than saved as a preset
type ManualVoice struct {
	Name        string
	Description string
}

// VoiceSelector picks the narration voice: a saved preset or a manual
// name + description pair. Exactly one side must be set.
type VoiceSelector struct {
	PresetID string
	Manual   *ManualVoice
}

func (c ChildSelector) valid() bool {
	return (c.ProfileID != "") != (c.AdHoc != nil)
}

func (v VoiceSelector) valid() bool {
	return (v.PresetID != "") != (v.Manual != nil)
}

// resolveChild turns a selector into a concrete descriptor.
// For a profile reference the ownership check degrades to not-found, so a
// caller cannot probe for other users' profile ids.
func (s *Service) resolveChild(ctx context.Context, userID string, sel ChildSelector) (storyteller.ChildDescriptor, string, error) {
	if !sel.valid() {
		return storyteller.ChildDescriptor{}, "", service.ErrInvalidInput
	}

	if sel.AdHoc != nil {
		return *sel.AdHoc, "", nil
	}

	profile, err := s.repos.Profiles.FindByID(ctx, sel.ProfileID)
	if err != nil || profile.UserID != userID {
		return storyteller.ChildDescriptor{}, "", service.ErrNotFound
	}

	return storyteller.ChildDescriptor{
		Name:      profile.Name,
		Age:       profile.Age,
		Interests: profile.Interests,
	}, profile.ID, nil
}

// resolveVoice turns a selector into the denormalized voice fields stored
// on a story
func (s *Service) resolveVoice(ctx context.Context, userID string, sel VoiceSelector) (preset *storyModel.VoicePreset, name, description string, err error) {
	if !sel.valid() {
		return nil, "", "", service.ErrInvalidInput
	}

	if sel.Manual != nil {
		return nil, sel.Manual.Name, sel.Manual.Description, nil
	}

	preset, err = s.repos.Presets.FindByID(ctx, sel.PresetID)
	if err != nil || preset.UserID != userID {
		return nil, "", "", service.ErrNotFound
	}

	return preset, preset.Name, "", nil
}
