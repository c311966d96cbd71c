package storyteller

import (
	"encoding/json"
	"fmt"
	"strings"
)

// IdeaCount is the number of ideas a generation must return
const IdeaCount = 5

// maxTitleWords caps idea titles so they stay scannable in lists
const maxTitleWords = 10

// StoryIdea one generated story idea
type StoryIdea struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ideasEnvelope struct {
	Stories []StoryIdea `json:"stories"`
}

// ParseIdeas parses and validates the model's idea response.
// The contract is strict: exactly IdeaCount entries, unique non-empty ids,
// non-empty descriptions, titles of at most 10 words. Anything else is an
// error so a confused model never leaks half-valid ideas to the client.
func ParseIdeas(raw string) ([]StoryIdea, error) {
	cleaned := stripCodeFence(raw)

	var envelope ideasEnvelope
	if err := json.Unmarshal([]byte(cleaned), &envelope); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	if len(envelope.Stories) != IdeaCount {
		return nil, fmt.Errorf("expected %d story ideas, got %d", IdeaCount, len(envelope.Stories))
	}

	seen := make(map[string]bool, IdeaCount)
	for i, idea := range envelope.Stories {
		if strings.TrimSpace(idea.ID) == "" {
			return nil, fmt.Errorf("idea %d has an empty id", i)
		}
		if seen[idea.ID] {
			return nil, fmt.Errorf("duplicate idea id %q", idea.ID)
		}
		seen[idea.ID] = true

		title := strings.TrimSpace(idea.Title)
		if title == "" {
			return nil, fmt.Errorf("idea %q has an empty title", idea.ID)
		}
		if words := len(strings.Fields(title)); words > maxTitleWords {
			return nil, fmt.Errorf("idea %q title has %d words, max %d", idea.ID, words, maxTitleWords)
		}

		if strings.TrimSpace(idea.Description) == "" {
			return nil, fmt.Errorf("idea %q has an empty description", idea.ID)
		}
	}

	return envelope.Stories, nil
}

// stripCodeFence removes a surrounding markdown code fence, which chat
// models like to wrap JSON in despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)

	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
