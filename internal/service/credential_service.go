package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"lull/internal/model/auth"
	"lull/internal/pkg/secretbox"
	authRepo "lull/internal/repository/auth"
)

// Provider identifies which external API a stored key belongs to
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderHume   Provider = "hume"
)

// CredentialService stores and resolves per-user provider API keys.
// Keys are encrypted with the process secretbox before they reach the
// database and are only ever decrypted to make a provider call; no
// operation returns a plaintext key to the client.
type CredentialService struct {
	userRepo authRepo.UserRepository
	box      *secretbox.Box
}

// NewCredentialService creates the credential service
func NewCredentialService(userRepo authRepo.UserRepository, box *secretbox.Box) *CredentialService {
	return &CredentialService{
		userRepo: userRepo,
		box:      box,
	}
}

// CredentialStatus which providers a user has keys for
type CredentialStatus struct {
	HasOpenAIKey bool `json:"has_openai_key"`
	HasHumeKey   bool `json:"has_hume_key"`
}

// Store encrypts and saves a provider API key for the user.
// An empty apiKey clears the stored key.
func (s *CredentialService) Store(ctx context.Context, userID string, provider Provider, apiKey string) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return ErrUserNotFound
	}

	var cred *auth.EncryptedCredential
	if apiKey != "" {
		ciphertext, iv, err := s.box.Encrypt(apiKey)
		if err != nil {
			log.Error().Err(err).Str("provider", string(provider)).Msg("failed to encrypt API key")
			return errors.New("failed to encrypt API key")
		}
		cred = &auth.EncryptedCredential{Ciphertext: ciphertext, IV: iv}
	}

	var err error
	switch provider {
	case ProviderOpenAI:
		err = s.userRepo.UpdateOpenAICredential(ctx, userID, cred)
	case ProviderHume:
		err = s.userRepo.UpdateHumeCredential(ctx, userID, cred)
	default:
		return errors.New("unknown provider")
	}
	if err != nil {
		log.Error().Err(err).Str("provider", string(provider)).Msg("failed to save API key")
		return errors.New("failed to save API key")
	}

	return nil
}

// Status reports which provider keys the user has configured
func (s *CredentialService) Status(ctx context.Context, userID string) (*CredentialStatus, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return &CredentialStatus{
		HasOpenAIKey: user.OpenAIAPI != nil,
		HasHumeKey:   user.HumeAPI != nil,
	}, nil
}

// Resolve decrypts the user's key for a provider.
// ErrMissingCredential when none is stored, ErrInvalidCredential when the
// stored ciphertext cannot be decrypted (secret rotation, corruption).
func (s *CredentialService) Resolve(ctx context.Context, userID string, provider Provider) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", ErrUserNotFound
	}

	var cred *auth.EncryptedCredential
	switch provider {
	case ProviderOpenAI:
		cred = user.OpenAIAPI
	case ProviderHume:
		cred = user.HumeAPI
	default:
		return "", errors.New("unknown provider")
	}

	if cred == nil {
		return "", ErrMissingCredential
	}

	plaintext, err := s.box.Decrypt(cred.Ciphertext, cred.IV)
	if err != nil {
		log.Error().Str("provider", string(provider)).Str("user_id", userID).Msg("stored API key failed to decrypt")
		return "", ErrInvalidCredential
	}

	return plaintext, nil
}
