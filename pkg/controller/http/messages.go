package http

import (
	"errors"
	"fmt"

	"github.com/huddle-lab/standup/pkg/domain/model"
	"github.com/huddle-lab/standup/pkg/domain/types"
	"github.com/huddle-lab/standup/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
)

// genericErrorText is shown for unexpected faults. Detail stays in the log;
// raw fault text never reaches the end user.
const genericErrorText = ":x: Something went wrong. Please try again."

// rejectionText maps expected lifecycle and policy errors to user-facing
// rejection messages. It returns false for unexpected faults, which callers
// log and replace with genericErrorText.
func rejectionText(err error, id types.MeetingID) (string, bool) {
	switch {
	case errors.Is(err, usecase.ErrMeetingNotFound):
		return fmt.Sprintf(":x: Meeting `%s` not found.", id), true
	case errors.Is(err, model.ErrMeetingClosed):
		return fmt.Sprintf(":x: Meeting `%s` is closed and cannot be updated.", id), true
	case errors.Is(err, model.ErrAlreadyClosed):
		return fmt.Sprintf(":x: Meeting `%s` is already closed.", id), true
	case errors.Is(err, model.ErrAlreadySubmitted):
		return fmt.Sprintf(":x: You have already submitted an update for meeting `%s`.", id), true
	case errors.Is(err, model.ErrNotCreator):
		return ":x: You did not open this meeting.", true
	case errors.Is(err, model.ErrFieldRequired), errors.Is(err, model.ErrFieldTooLong):
		return fmt.Sprintf(":x: Validation error: %s", err.Error()), true
	default:
		return "", false
	}
}

// validationField extracts the offending field name from a validation error,
// so modal submissions can attach the message to the right input.
func validationField(err error) string {
	var ge *goerr.Error
	if !errors.As(err, &ge) {
		return ""
	}
	if field, ok := ge.Values()[model.FieldKey].(string); ok {
		return field
	}
	return ""
}
