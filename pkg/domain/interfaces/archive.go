package interfaces

import (
	"context"

	"github.com/huddle-lab/standup/pkg/domain/types"
)

// Archive pushes a closed meeting's artifacts to durable object storage.
// Archival is an auxiliary side effect of closing a meeting: every method
// returns failure as a value and callers must treat it as non-fatal.
type Archive interface {
	// IsAvailable returns true only when the storage target is fully
	// configured; callers skip upload cleanly when it is false.
	IsAvailable() bool

	// UploadMeetingJSON stores the serialized meeting document under
	// meetings/<id>/meeting.json with content type application/json.
	UploadMeetingJSON(ctx context.Context, id types.MeetingID, data []byte) error

	// UploadHTMLReport stores the rendered report under
	// meetings/<id>/index.html with content type text/html.
	UploadHTMLReport(ctx context.Context, id types.MeetingID, html []byte) error

	// PresignReportURL generates a time-limited retrieval URL for the HTML
	// report object.
	PresignReportURL(ctx context.Context, id types.MeetingID) (string, error)

	// TestConnection verifies the storage target is reachable.
	TestConnection(ctx context.Context) error
}
