package model

import "errors"

// Sentinel errors for meeting lifecycle and update validation
var (
	// Validation errors: surfaced to the end user verbatim
	ErrFieldRequired = errors.New("field is required")
	ErrFieldTooLong  = errors.New("field must be 500 characters or less")

	// Lifecycle errors
	ErrMeetingClosed = errors.New("meeting is closed and cannot be updated")
	ErrAlreadyClosed = errors.New("meeting is already closed")

	// Policy errors
	ErrAlreadySubmitted = errors.New("user has already submitted an update for this meeting")
	ErrNotCreator       = errors.New("only the meeting creator can close it")
)

// Context keys for error values
const (
	FieldKey     = "field"
	MeetingIDKey = "meeting_id"
	UserKey      = "user"
)
