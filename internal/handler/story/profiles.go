package story

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateProfileRequest child profile creation request
type CreateProfileRequest struct {
	Name      string `json:"name" binding:"required"`
	Age       int    `json:"age" binding:"required,gt=0"`
	Interests string `json:"interests"`
}

// CreateProfile saves a child profile
// @Summary      Create child profile
// @Description  Save a child profile for story generation
// @Tags         child-profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateProfileRequest  true  "profile"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/child-profiles [post]
func (h *Handler) CreateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	profile, err := h.svc.CreateProfile(c.Request.Context(), userID, req.Name, req.Age, req.Interests)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "profile created",
		"data":    toProfileInfo(profile),
	})
}

// ListProfiles lists the caller's child profiles
// @Summary      List child profiles
// @Tags         child-profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/child-profiles [get]
func (h *Handler) ListProfiles(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profiles, err := h.svc.ListProfiles(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    toProfileInfoList(profiles),
	})
}

// GetProfile fetches one child profile
// @Summary      Get child profile
// @Tags         child-profiles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "profile id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/child-profiles/{id} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.svc.GetProfile(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    toProfileInfo(profile),
	})
}

// UpdateProfileRequest partial profile update
type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty"`
	Age       *int    `json:"age,omitempty"`
	Interests *string `json:"interests,omitempty"`
}

// UpdateProfile updates a child profile
// @Summary      Update child profile
// @Tags         child-profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                true  "profile id"
// @Param        request  body      UpdateProfileRequest  true  "fields to update"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/child-profiles/{id} [patch]
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	profile, err := h.svc.UpdateProfile(c.Request.Context(), userID, c.Param("id"), req.Name, req.Age, req.Interests)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "profile updated",
		"data":    toProfileInfo(profile),
	})
}

// DeleteProfile removes a child profile
// @Summary      Delete child profile
// @Description  Delete a profile; existing stories keep their denormalized child name
// @Tags         child-profiles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "profile id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/child-profiles/{id} [delete]
func (h *Handler) DeleteProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteProfile(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "profile deleted",
	})
}
