package story

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lull/internal/pkg/storyteller"
	storyService "lull/internal/service/story"
)

// IdeaInput the chosen story idea
type IdeaInput struct {
	ID          string `json:"id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// VoiceInput tagged voice selector: either voice_preset_id or the manual
// name + description pair
type VoiceInput struct {
	VoicePresetID string `json:"voice_preset_id,omitempty"`
	Name          string `json:"name,omitempty"`
	Description   string `json:"description,omitempty"`
}

func (in VoiceInput) toVoiceSelector() storyService.VoiceSelector {
	if in.VoicePresetID != "" {
		return storyService.VoiceSelector{PresetID: in.VoicePresetID}
	}
	if in.Name == "" && in.Description == "" {
		return storyService.VoiceSelector{}
	}
	return storyService.VoiceSelector{
		Manual: &storyService.ManualVoice{
			Name:        in.Name,
			Description: in.Description,
		},
	}
}

// GenerateStoryRequest full story generation request
type GenerateStoryRequest struct {
	Idea  IdeaInput  `json:"idea" binding:"required"`
	Child ChildInput `json:"child" binding:"required"`
	Voice VoiceInput `json:"voice" binding:"required"`
}

// GenerateStory generates the full story text and persists it
// @Summary      Generate story
// @Description  Generate the full story for a chosen idea; the story is saved with pending audio
// @Tags         stories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      GenerateStoryRequest  true  "generation request"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse  "invalid input or missing OpenAI key"
// @Failure      401      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse  "generation failed"
// @Router       /api/v1/stories/generate [post]
func (h *Handler) GenerateStory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req GenerateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	idea := storyteller.Idea{
		ID:          req.Idea.ID,
		Title:       req.Idea.Title,
		Description: req.Idea.Description,
	}

	st, err := h.svc.GenerateStory(c.Request.Context(), userID, idea, req.Child.toChildSelector(), req.Voice.toVoiceSelector())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "story generated",
		"data":    toStoryInfo(&storyService.StoryWithAudio{Story: st}),
	})
}
