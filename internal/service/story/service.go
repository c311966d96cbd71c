// Package story implements the generation pipeline: idea suggestions,
// long-form story text, narration audio, and the voice presets and child
// profiles feeding it.
package story

import (
	"context"
	"time"

	"lull/internal/pkg/hume"
	"lull/internal/pkg/llm"
	"lull/internal/pkg/storage"
	storyRepo "lull/internal/repository/story"
	"lull/internal/service"
)

// CredentialResolver decrypts a user's provider API key for internal use
type CredentialResolver interface {
	Resolve(ctx context.Context, userID string, provider service.Provider) (string, error)
}

// SpeechClient the subset of the Hume client the pipeline needs
type SpeechClient interface {
	Synthesize(ctx context.Context, apiKey string, utterances []hume.Utterance) (*hume.Synthesis, error)
	CreateVoice(ctx context.Context, apiKey, name, generationID string) error
	DeleteVoice(ctx context.Context, apiKey, voiceID string) error
}

// URLCache caches presigned audio URLs
type URLCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Repos the mongo stores the service operates on
type Repos struct {
	Stories  storyRepo.StoryRepository
	Profiles storyRepo.ChildProfileRepository
	Presets  storyRepo.VoicePresetRepository
}

// Service story pipeline service
type Service struct {
	repos Repos

	creds CredentialResolver
	text  llm.TextGenerator
	tts   SpeechClient
	store storage.Storage
	cache URLCache // nil disables URL caching

	presignExpiry time.Duration
}

// New creates the story service.
// cache may be nil, in which case every audio URL is presigned fresh.
func New(
	repos Repos,
	creds CredentialResolver,
	text llm.TextGenerator,
	tts SpeechClient,
	store storage.Storage,
	cache URLCache,
	presignExpiry time.Duration,
) *Service {
	if presignExpiry <= 0 {
		presignExpiry = time.Hour
	}
	return &Service{
		repos:         repos,
		creds:         creds,
		text:          text,
		tts:           tts,
		store:         store,
		cache:         cache,
		presignExpiry: presignExpiry,
	}
}
