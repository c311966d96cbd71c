package auth

import (
	"time"

	"lull/internal/model/auth"
	httputil "lull/internal/pkg/http"
)

// ErrorResponse error response alias (shared http.ErrorResponse)
type ErrorResponse = httputil.ErrorResponse

// UserInfo user payload shared by all auth responses
type UserInfo struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	LastLoginAt string `json:"last_login_at,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// toUserInfo converts a User entity to its response shape
func toUserInfo(user *auth.User) UserInfo {
	info := UserInfo{
		ID:    user.ID,
		Email: user.Email,
	}

	if user.LastLoginAt != nil {
		info.LastLoginAt = user.LastLoginAt.Format(time.RFC3339)
	}
	info.CreatedAt = user.CreatedAt.Format(time.RFC3339)

	return info
}
