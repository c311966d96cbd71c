package auth

import (
	"lull/internal/service"
)

// Handler authentication and credential endpoints.
// All auth-related handler methods reach the services through this struct.
type Handler struct {
	authService *service.AuthService
	credService *service.CredentialService
}

// NewHandler creates the auth handler
func NewHandler(authService *service.AuthService, credService *service.CredentialService) *Handler {
	return &Handler{
		authService: authService,
		credService: credService,
	}
}
