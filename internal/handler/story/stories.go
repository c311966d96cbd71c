package story

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListStories lists the caller's stories
// @Summary      List stories
// @Description  List the caller's stories, newest first, with playback URLs where audio is ready
// @Tags         stories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/stories [get]
func (h *Handler) ListStories(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	stories, err := h.svc.ListStories(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    toStoryInfoList(stories),
	})
}

// ListFavorites lists the caller's favorite stories
// @Summary      List favorite stories
// @Tags         stories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/stories/favorites [get]
func (h *Handler) ListFavorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	stories, err := h.svc.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    toStoryInfoList(stories),
	})
}

// ListStoriesByChild lists the stories generated for one saved profile
// @Summary      List stories by child
// @Tags         stories
// @Produce      json
// @Security     BearerAuth
// @Param        child_id  path      string  true  "child profile id"
// @Success      200       {object}  map[string]interface{}
// @Failure      401       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /api/v1/children/{child_id}/stories [get]
func (h *Handler) ListStoriesByChild(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	stories, err := h.svc.ListStoriesByChild(c.Request.Context(), userID, c.Param("child_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    toStoryInfoList(stories),
	})
}

// GetStory fetches one story
// @Summary      Get story
// @Tags         stories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "story id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/stories/{id} [get]
func (h *Handler) GetStory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	st, err := h.svc.GetStory(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    toStoryInfo(st),
	})
}

// ToggleFavorite flips a story's favorite flag
// @Summary      Toggle favorite
// @Tags         stories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "story id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/stories/{id}/favorite [post]
func (h *Handler) ToggleFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	favorite, err := h.svc.ToggleFavorite(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "favorite toggled",
		"data":    gin.H{"is_favorite": favorite},
	})
}

// DeleteStory removes a story and its audio
// @Summary      Delete story
// @Tags         stories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "story id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/stories/{id} [delete]
func (h *Handler) DeleteStory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteStory(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "story deleted",
	})
}
