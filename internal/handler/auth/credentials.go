package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lull/internal/pkg/ctxutil"
	"lull/internal/service"
)

// StoreCredentialRequest provider API key submission.
// The key is encrypted before it reaches the database and is never
// returned by any endpoint. An empty key clears the stored one.
type StoreCredentialRequest struct {
	APIKey string `json:"api_key"`
}

// StoreOpenAIKey stores the caller's OpenAI API key
// @Summary      Store OpenAI key
// @Description  Encrypt and store the caller's OpenAI API key
// @Tags         credentials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      StoreCredentialRequest  true  "API key"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/credentials/openai [put]
func (h *Handler) StoreOpenAIKey(c *gin.Context) {
	h.storeCredential(c, service.ProviderOpenAI)
}

// StoreHumeKey stores the caller's Hume API key
// @Summary      Store Hume key
// @Description  Encrypt and store the caller's Hume API key
// @Tags         credentials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      StoreCredentialRequest  true  "API key"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/credentials/hume [put]
func (h *Handler) StoreHumeKey(c *gin.Context) {
	h.storeCredential(c, service.ProviderHume)
}

func (h *Handler) storeCredential(c *gin.Context, provider service.Provider) {
	ctx := c.Request.Context()

	userID, ok := ctxutil.GetUserID(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    40100,
			Message: "unauthorized",
		})
		return
	}

	var req StoreCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	if err := h.credService.Store(ctx, userID, provider, req.APIKey); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "credential stored",
	})
}

// GetCredentialStatus reports which provider keys are configured
// @Summary      Credential status
// @Description  Report which provider API keys are stored, never the keys themselves
// @Tags         credentials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/credentials [get]
func (h *Handler) GetCredentialStatus(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := ctxutil.GetUserID(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    40100,
			Message: "unauthorized",
		})
		return
	}

	status, err := h.credService.Status(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    status,
	})
}
