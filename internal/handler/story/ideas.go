package story

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GenerateIdeasRequest idea generation request.
// Child selects either a saved profile (child_id) or ad-hoc details.
type GenerateIdeasRequest struct {
	Child ChildInput `json:"child" binding:"required"`
}

// GenerateIdeas produces five story ideas for a child
// @Summary      Generate story ideas
// @Description  Generate five validated bedtime story ideas, avoiding the caller's existing titles
// @Tags         stories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      GenerateIdeasRequest  true  "idea request"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse  "invalid input or missing OpenAI key"
// @Failure      401      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse  "generation failed"
// @Router       /api/v1/stories/ideas [post]
func (h *Handler) GenerateIdeas(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req GenerateIdeasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	ideas, err := h.svc.GenerateIdeas(c.Request.Context(), userID, req.Child.toChildSelector())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "ideas generated",
		"data":    gin.H{"ideas": ideas},
	})
}
