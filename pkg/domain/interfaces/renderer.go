package interfaces

import (
	"github.com/huddle-lab/standup/pkg/domain/model"
)

// ReportRenderer projects a meeting into an HTML document. Rendering failure
// is a degraded-but-continuable outcome for callers: "no report" must never
// abort the triggering action.
type ReportRenderer interface {
	// Available reports whether the report template can be loaded.
	Available() bool

	// Render returns the HTML report for the meeting. All user-supplied text
	// is HTML-escaped by the implementation.
	Render(meeting *model.Meeting) ([]byte, error)
}
