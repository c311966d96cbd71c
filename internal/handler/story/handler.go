package story

import (
	storyService "lull/internal/service/story"
)

// Handler story pipeline endpoints.
// All story-related handler methods reach the service through this struct.
type Handler struct {
	svc *storyService.Service
}

// NewHandler creates the story handler
func NewHandler(svc *storyService.Service) *Handler {
	return &Handler{
		svc: svc,
	}
}
