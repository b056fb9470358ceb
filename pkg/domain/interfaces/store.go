package interfaces

import (
	"context"

	"github.com/huddle-lab/standup/pkg/domain/model"
	"github.com/huddle-lab/standup/pkg/domain/types"
)

// MeetingStore defines the interface for meeting persistence. One record per
// meeting ID, last writer wins; the design assumes at most one writer at a
// time per meeting ID (human-paced form submissions).
type MeetingStore interface {
	// Save writes the meeting, fully overwriting any prior record.
	Save(ctx context.Context, meeting *model.Meeting) error

	// Load returns (nil, nil) when no record exists for the ID. A record that
	// cannot be decoded or fails structural validation is logged and also
	// reported as absent, not as an error.
	Load(ctx context.Context, id types.MeetingID) (*model.Meeting, error)

	// Exists reports whether a record exists for the ID.
	Exists(ctx context.Context, id types.MeetingID) (bool, error)

	// List enumerates all stored meeting IDs in unspecified order.
	List(ctx context.Context) ([]types.MeetingID, error)

	// Delete removes the record, returning false when it did not exist.
	Delete(ctx context.Context, id types.MeetingID) (bool, error)
}
