package types

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// MeetingID identifies a meeting record. The format is
// {2-digit-year}-{month}-{day}-{8-hex-random-suffix}, e.g. "25-9-10-a1b2c3d4".
// The date prefix keeps IDs human-sortable by creation day; the random suffix
// provides practical uniqueness. There is no collision check against stored
// records; a same-day suffix collision is treated as negligible.
type MeetingID string

var meetingIDPattern = regexp.MustCompile(`^\d{2}-\d{1,2}-\d{1,2}-[0-9a-f]{8}$`)

// NewMeetingID mints a fresh meeting ID for the given creation time.
func NewMeetingID(now time.Time) MeetingID {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return MeetingID(fmt.Sprintf("%02d-%d-%d-%s", now.Year()%100, int(now.Month()), now.Day(), suffix))
}

// Validate checks if the meeting ID matches the expected format
func (x MeetingID) Validate() error {
	if x == "" {
		return goerr.New("meeting ID is empty")
	}
	if !meetingIDPattern.MatchString(string(x)) {
		return goerr.New("invalid meeting ID format", goerr.V("id", string(x)))
	}
	return nil
}

// String returns the string representation of the meeting ID
func (x MeetingID) String() string {
	return string(x)
}
