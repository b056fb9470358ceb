package types_test

import (
	"testing"
	"time"

	"github.com/huddle-lab/standup/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestNewMeetingID(t *testing.T) {
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)

	id := types.NewMeetingID(now)
	gt.NoError(t, id.Validate())
	gt.Value(t, id.String()[:8]).Equal("25-9-10-")

	// Suffixes are random
	other := types.NewMeetingID(now)
	gt.Value(t, id).NotEqual(other)
}

func TestMeetingID_Validate(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"25-9-10-a1b2c3d4", true},
		{"25-12-31-00ffee99", true},
		{"", false},
		{"25-9-10", false},
		{"25-9-10-XYZ", false},
		{"2025-9-10-a1b2c3d4", false},
		{"25-9-10-a1b2c3d4e5", false},
		{"../etc/passwd", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := types.MeetingID(tt.id).Validate()
			if tt.valid {
				gt.NoError(t, err)
			} else {
				gt.Error(t, err)
			}
		})
	}
}
