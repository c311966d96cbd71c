package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lull/internal/service"
)

// RegisterRequest account registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"` // login email (required)
	Password string `json:"password" binding:"required,min=8"`
}

// RegisterResponseData registration response data
type RegisterResponseData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Register creates an account
// @Summary      Register
// @Description  Create an account with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "registration request"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	result, err := h.authService.Register(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Code:    40901,
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "registered",
		"data": RegisterResponseData{
			UserID: result.UserID,
			Email:  result.Email,
		},
	})
}
