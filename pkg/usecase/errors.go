package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	ErrMeetingNotFound = errors.New("meeting not found")
)

// Context keys for error values
const (
	MeetingIDKey = "meeting_id"
	UserKey      = "user"
)
