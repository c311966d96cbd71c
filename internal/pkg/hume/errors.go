package hume

import (
	"encoding/json"
	"errors"
	"fmt"
)

// The provider reports a name conflict on voice registration with this
// code/slug pair inside the error body. Kept in one place so contract drift
// only touches this file.
const (
	duplicateNameErrorCode = "E0603"
	clientErrorSlug        = "client_error"
)

// APIError structured error returned by the Hume API
type APIError struct {
	StatusCode int
	Code       string
	Slug       string
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("hume api error %d (%s/%s): %s", e.StatusCode, e.Code, e.Slug, e.Message)
	}
	return fmt.Sprintf("hume api error %d: %s", e.StatusCode, e.Message)
}

// IsDuplicateName reports whether this error is the voice-name conflict
func (e *APIError) IsDuplicateName() bool {
	return e.Code == duplicateNameErrorCode && e.Slug == clientErrorSlug
}

// IsDuplicateNameError reports whether err is a voice-name conflict
func IsDuplicateNameError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsDuplicateName()
}

type apiErrorBody struct {
	Details struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Code    string `json:"code"`
		Slug    string `json:"slug"`
	} `json:"details"`
}

// decodeAPIError builds an *APIError from a non-2xx response body.
// An unparseable body still yields an *APIError carrying the raw text.
func decodeAPIError(statusCode int, body []byte) error {
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Details.Message == "" {
		return &APIError{
			StatusCode: statusCode,
			Message:    string(body),
		}
	}

	return &APIError{
		StatusCode: statusCode,
		Code:       parsed.Details.Code,
		Slug:       parsed.Details.Slug,
		Message:    parsed.Details.Message,
	}
}
