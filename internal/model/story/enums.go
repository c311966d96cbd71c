package story

// AudioStatus narration lifecycle stage of a story.
//
// Transitions: pending -> generating -> ready, and generating -> error on any
// failure. error is terminal until a caller explicitly retries, which
// re-enters at generating. Nothing skips generating.
type AudioStatus string

const (
	AudioStatusPending    AudioStatus = "pending"    // story saved, no synthesis attempted
	AudioStatusGenerating AudioStatus = "generating" // synthesis in flight
	AudioStatusReady      AudioStatus = "ready"      // audio stored and playable
	AudioStatusError      AudioStatus = "error"      // last attempt failed, retry allowed
)

// String returns the status string
func (s AudioStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is one of the known stages
func (s AudioStatus) IsValid() bool {
	switch s {
	case AudioStatusPending, AudioStatusGenerating, AudioStatusReady, AudioStatusError:
		return true
	}
	return false
}
