package service

import "errors"

// Sentinel errors shared across services. Handlers match these with
// errors.Is and translate them to HTTP status and app codes.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("email already registered")
	ErrInvalidPassword   = errors.New("invalid email or password")
	ErrInvalidToken      = errors.New("token invalid")
	ErrExpiredToken      = errors.New("token expired")

	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthenticated = errors.New("no authenticated user in context")
	ErrUnauthorized    = errors.New("resource belongs to another user")

	ErrMissingCredential = errors.New("provider API key not configured")
	ErrInvalidCredential = errors.New("stored provider API key could not be decrypted")

	ErrGenerationFailed    = errors.New("story generation failed")
	ErrSynthesisFailed     = errors.New("audio synthesis failed")
	ErrSynthesisInProgress = errors.New("audio synthesis already in progress")
	ErrDuplicateVoiceName  = errors.New("voice name already taken")
	ErrProviderError       = errors.New("speech provider request failed")
	ErrStorageFailed       = errors.New("failed to store audio")
	ErrSaveFailed          = errors.New("failed to save generated story")
)
