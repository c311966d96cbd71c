package story

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"lull/internal/pkg/storyteller"
	"lull/internal/service"
)

// GenerateIdeas produces five validated story ideas for a child.
// Ownership and credential checks run before the model is called, so a
// request that was never going to succeed costs no provider spend.
func (s *Service) GenerateIdeas(ctx context.Context, userID string, child ChildSelector) ([]storyteller.StoryIdea, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	descriptor, _, err := s.resolveChild(ctx, userID, child)
	if err != nil {
		return nil, err
	}

	apiKey, err := s.creds.Resolve(ctx, userID, service.ProviderOpenAI)
	if err != nil {
		return nil, err
	}

	// Existing titles steer the model away from repeating itself.
	titles, err := s.repos.Stories.FindTitlesByUserID(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to load existing titles, generating without them")
		titles = nil
	}

	prompt := storyteller.BuildIdeasPrompt(descriptor, titles)

	raw, err := s.text.Generate(ctx, apiKey, prompt)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("idea generation call failed")
		return nil, fmt.Errorf("%w: %v", service.ErrGenerationFailed, err)
	}

	ideas, err := storyteller.ParseIdeas(raw)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("idea response failed validation")
		return nil, fmt.Errorf("%w: %v", service.ErrGenerationFailed, err)
	}

	return ideas, nil
}
