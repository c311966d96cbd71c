package story

import (
	"net/http"

	"github.com/gin-gonic/gin"

	storyService "lull/internal/service/story"
)

// CreatePresetRequest voice preset provisioning request
type CreatePresetRequest struct {
	Name        string `json:"name" binding:"required"`        // provider enforces uniqueness
	Description string `json:"description" binding:"required"` // free-text voice description
}

// CreatePreset provisions a persistent narration voice
// @Summary      Create voice preset
// @Description  Synthesize a sample from the description and register it as a persistent named voice
// @Tags         voice-presets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreatePresetRequest  true  "preset"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse  "voice name already taken"
// @Failure      502      {object}  ErrorResponse
// @Router       /api/v1/voice-presets [post]
func (h *Handler) CreatePreset(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreatePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	preset, err := h.svc.CreatePreset(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "voice preset created",
		"data":    toPresetInfo(&storyService.PresetWithAudio{VoicePreset: preset}),
	})
}

// ListPresets lists the caller's voice presets
// @Summary      List voice presets
// @Tags         voice-presets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/voice-presets [get]
func (h *Handler) ListPresets(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	presets, err := h.svc.ListPresets(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    toPresetInfoList(presets),
	})
}

// GetPreset fetches one voice preset
// @Summary      Get voice preset
// @Tags         voice-presets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "preset id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/voice-presets/{id} [get]
func (h *Handler) GetPreset(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	preset, err := h.svc.GetPreset(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    toPresetInfo(preset),
	})
}

// UpdatePresetRequest partial preset update
type UpdatePresetRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdatePreset renames a preset or replaces its description
// @Summary      Update voice preset
// @Description  Update the local name or description; the provider-side voice is untouched
// @Tags         voice-presets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "preset id"
// @Param        request  body      UpdatePresetRequest  true  "fields to update"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/voice-presets/{id} [patch]
func (h *Handler) UpdatePreset(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdatePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	preset, err := h.svc.UpdatePreset(c.Request.Context(), userID, c.Param("id"), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "voice preset updated",
		"data":    toPresetInfo(&storyService.PresetWithAudio{VoicePreset: preset}),
	})
}

// DeletePreset removes a voice preset
// @Summary      Delete voice preset
// @Description  Delete the preset; provider-side voice removal is best effort, the stored sample must delete successfully
// @Tags         voice-presets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "preset id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/voice-presets/{id} [delete]
func (h *Handler) DeletePreset(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.DeletePreset(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "voice preset deleted",
	})
}
