package archive

import (
	"context"

	"github.com/huddle-lab/standup/pkg/domain/interfaces"
	"github.com/huddle-lab/standup/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Unavailable is the archive used when object storage is not configured.
// IsAvailable returns false so callers skip upload cleanly; every operation
// returns a not-configured error if called anyway.
type Unavailable struct{}

var _ interfaces.Archive = Unavailable{}

var errNotConfigured = goerr.New("archive storage is not configured")

func (Unavailable) IsAvailable() bool {
	return false
}

func (Unavailable) UploadMeetingJSON(ctx context.Context, id types.MeetingID, data []byte) error {
	return errNotConfigured
}

func (Unavailable) UploadHTMLReport(ctx context.Context, id types.MeetingID, html []byte) error {
	return errNotConfigured
}

func (Unavailable) PresignReportURL(ctx context.Context, id types.MeetingID) (string, error) {
	return "", errNotConfigured
}

func (Unavailable) TestConnection(ctx context.Context) error {
	return errNotConfigured
}
