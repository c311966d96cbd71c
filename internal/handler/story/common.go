package story

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	storyModel "lull/internal/model/story"
	"lull/internal/pkg/ctxutil"
	httputil "lull/internal/pkg/http"
	"lull/internal/pkg/storyteller"
	"lull/internal/service"
	storyService "lull/internal/service/story"
)

// ErrorResponse error response alias (shared http.ErrorResponse)
type ErrorResponse = httputil.ErrorResponse

// currentUser extracts the authenticated user id or writes a 401
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := ctxutil.GetUserID(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    40100,
			Message: "unauthorized",
		})
		return "", false
	}
	return userID, true
}

// respondError maps a service error to HTTP status and app code.
// One table instead of per-endpoint switches: the taxonomy is shared by
// every story endpoint.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := 50001

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status, code = http.StatusBadRequest, 40001
	case errors.Is(err, service.ErrUnauthenticated):
		status, code = http.StatusUnauthorized, 40100
	case errors.Is(err, service.ErrUnauthorized):
		status, code = http.StatusForbidden, 40301
	case errors.Is(err, service.ErrNotFound):
		status, code = http.StatusNotFound, 40401
	case errors.Is(err, service.ErrMissingCredential):
		status, code = http.StatusBadRequest, 40010
	case errors.Is(err, service.ErrInvalidCredential):
		status, code = http.StatusInternalServerError, 50002
	case errors.Is(err, service.ErrSynthesisInProgress):
		status, code = http.StatusConflict, 40901
	case errors.Is(err, service.ErrDuplicateVoiceName):
		status, code = http.StatusConflict, 40902
	case errors.Is(err, service.ErrGenerationFailed):
		status, code = http.StatusBadGateway, 50201
	case errors.Is(err, service.ErrSynthesisFailed):
		status, code = http.StatusBadGateway, 50202
	case errors.Is(err, service.ErrProviderError):
		status, code = http.StatusBadGateway, 50203
	case errors.Is(err, service.ErrStorageFailed):
		status, code = http.StatusInternalServerError, 50003
	case errors.Is(err, service.ErrSaveFailed):
		status, code = http.StatusInternalServerError, 50004
	}

	c.JSON(status, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

// ProfileInfo child profile DTO
type ProfileInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Interests string `json:"interests"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// toProfileInfo converts a ChildProfile entity to its response shape
func toProfileInfo(p *storyModel.ChildProfile) ProfileInfo {
	return ProfileInfo{
		ID:        p.ID,
		Name:      p.Name,
		Age:       p.Age,
		Interests: p.Interests,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

// toProfileInfoList converts a ChildProfile list
func toProfileInfoList(profiles []*storyModel.ChildProfile) []ProfileInfo {
	result := make([]ProfileInfo, len(profiles))
	for i, p := range profiles {
		result[i] = toProfileInfo(p)
	}
	return result
}

// PresetInfo voice preset DTO
type PresetInfo struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	SampleAudioURL string `json:"sample_audio_url,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// toPresetInfo converts a preset with sample URL to its response shape.
// The provider voice id stays internal.
func toPresetInfo(p *storyService.PresetWithAudio) PresetInfo {
	return PresetInfo{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		SampleAudioURL: p.SampleAudioURL,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
	}
}

// toPresetInfoList converts a preset list
func toPresetInfoList(presets []*storyService.PresetWithAudio) []PresetInfo {
	result := make([]PresetInfo, len(presets))
	for i, p := range presets {
		result[i] = toPresetInfo(p)
	}
	return result
}

// StoryInfo story DTO
type StoryInfo struct {
	ID               string `json:"id"`
	ChildID          string `json:"child_id,omitempty"`
	ChildName        string `json:"child_name"`
	Title            string `json:"title"`
	Content          string `json:"content"`
	VoicePresetID    string `json:"voice_preset_id,omitempty"`
	VoiceName        string `json:"voice_name"`
	VoiceDescription string `json:"voice_description,omitempty"`
	AudioStatus      string `json:"audio_status"` // pending, generating, ready, error
	AudioURL         string `json:"audio_url,omitempty"`
	IsFavorite       bool   `json:"is_favorite"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// toStoryInfo converts a story with audio URL to its response shape
func toStoryInfo(s *storyService.StoryWithAudio) StoryInfo {
	return StoryInfo{
		ID:               s.ID,
		ChildID:          s.ChildID,
		ChildName:        s.ChildName,
		Title:            s.Title,
		Content:          s.Content,
		VoicePresetID:    s.VoicePresetID,
		VoiceName:        s.VoiceName,
		VoiceDescription: s.VoiceDescription,
		AudioStatus:      s.AudioStatus.String(),
		AudioURL:         s.AudioURL,
		IsFavorite:       s.IsFavorite,
		CreatedAt:        s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        s.UpdatedAt.Format(time.RFC3339),
	}
}

// toStoryInfoList converts a story list
func toStoryInfoList(stories []*storyService.StoryWithAudio) []StoryInfo {
	result := make([]StoryInfo, len(stories))
	for i, s := range stories {
		result[i] = toStoryInfo(s)
	}
	return result
}

// ChildInput tagged child selector: either child_id or the ad-hoc fields
type ChildInput struct {
	ChildID   string `json:"child_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Age       int    `json:"age,omitempty"`
	Interests string `json:"interests,omitempty"`
}

// toChildSelector converts the wire shape to the service selector
func (in ChildInput) toChildSelector() storyService.ChildSelector {
	if in.ChildID != "" {
		return storyService.ChildSelector{ProfileID: in.ChildID}
	}
	if in.Name == "" {
		// Neither side set; the service rejects this as invalid.
		return storyService.ChildSelector{}
	}
	return storyService.ChildSelector{
		AdHoc: &storyteller.ChildDescriptor{
			Name:      in.Name,
			Age:       in.Age,
			Interests: in.Interests,
		},
	}
}
