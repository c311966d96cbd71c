package story

import (
	"net/http"

	"github.com/gin-gonic/gin"

	storyService "lull/internal/service/story"
)

// SynthesizeAudio narrates a story and stores the audio
// @Summary      Synthesize story audio
// @Description  Narrate the story with its selected voice. Runs synchronously for up to five minutes; of concurrent requests for one story exactly one proceeds, the rest get 409.
// @Tags         stories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "story id"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse  "missing Hume key"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse  "synthesis already in progress"
// @Failure      502  {object}  ErrorResponse  "synthesis failed"
// @Router       /api/v1/stories/{id}/voice [post]
func (h *Handler) SynthesizeAudio(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	st, err := h.svc.SynthesizeAudio(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "audio ready",
		"data":    toStoryInfo(&storyService.StoryWithAudio{Story: st}),
	})
}
