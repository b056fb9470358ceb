package usecase

import (
	"context"
	"encoding/json"

	"github.com/huddle-lab/standup/pkg/domain/interfaces"
	"github.com/huddle-lab/standup/pkg/domain/model"
	"github.com/huddle-lab/standup/pkg/domain/types"
	"github.com/huddle-lab/standup/pkg/utils/errutil"
	"github.com/huddle-lab/standup/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// MeetingUseCase implements the meeting lifecycle: create, collect updates,
// close, and archive.
type MeetingUseCase struct {
	store    interfaces.MeetingStore
	archive  interfaces.Archive
	renderer interfaces.ReportRenderer
}

// Create opens a new meeting and persists it
func (uc *MeetingUseCase) Create(ctx context.Context, createdBy, name, link string) (*model.Meeting, error) {
	meeting := model.NewMeeting(createdBy, name, link)

	if err := uc.store.Save(ctx, meeting); err != nil {
		return nil, goerr.Wrap(err, "failed to save new meeting", goerr.V(MeetingIDKey, meeting.ID))
	}

	logging.From(ctx).Info("meeting created",
		"meeting_id", meeting.ID, "created_by", createdBy)
	return meeting, nil
}

// Get loads a meeting, returning ErrMeetingNotFound when no valid record exists
func (uc *MeetingUseCase) Get(ctx context.Context, id types.MeetingID) (*model.Meeting, error) {
	meeting, err := uc.store.Load(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load meeting", goerr.V(MeetingIDKey, id))
	}
	if meeting == nil {
		return nil, goerr.Wrap(ErrMeetingNotFound, "no such meeting", goerr.V(MeetingIDKey, id))
	}
	return meeting, nil
}

// CheckSubmit verifies that the user may submit an update to the meeting.
// Used by the dispatcher to reject before opening the update form.
func (uc *MeetingUseCase) CheckSubmit(ctx context.Context, id types.MeetingID, user string) error {
	meeting, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	return meeting.CanSubmit(user)
}

// SubmitUpdate validates and appends one participant's status update
func (uc *MeetingUseCase) SubmitUpdate(ctx context.Context, id types.MeetingID, user, progress, blockers, goals string) (*model.Update, error) {
	meeting, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := meeting.CanSubmit(user); err != nil {
		return nil, err
	}

	update, err := meeting.AddUpdate(user, progress, blockers, goals)
	if err != nil {
		return nil, err
	}

	if err := uc.store.Save(ctx, meeting); err != nil {
		return nil, goerr.Wrap(err, "failed to save update", goerr.V(MeetingIDKey, id), goerr.V(UserKey, user))
	}

	logging.From(ctx).Info("update submitted",
		"meeting_id", id, "user", user, "total_updates", len(meeting.Updates))
	return update, nil
}

// CloseResult is the outcome of closing a meeting. ReportURL is empty when no
// report could be archived.
type CloseResult struct {
	Meeting   *model.Meeting
	ReportURL string
}

// Close closes the meeting on behalf of user and archives its artifacts.
// Closing itself must succeed for a result to be returned; rendering, upload
// and URL generation are best effort and never fail the close.
func (uc *MeetingUseCase) Close(ctx context.Context, id types.MeetingID, user string) (*CloseResult, error) {
	meeting, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := meeting.CanClose(user); err != nil {
		return nil, err
	}
	if err := meeting.Close(); err != nil {
		return nil, err
	}

	if err := uc.store.Save(ctx, meeting); err != nil {
		return nil, goerr.Wrap(err, "failed to save closed meeting", goerr.V(MeetingIDKey, id))
	}

	logging.From(ctx).Info("meeting closed",
		"meeting_id", id, "closed_by", user, "total_updates", len(meeting.Updates))

	return &CloseResult{
		Meeting:   meeting,
		ReportURL: uc.archiveMeeting(ctx, meeting),
	}, nil
}

// archiveMeeting renders and uploads the meeting artifacts, returning a
// presigned report URL when everything succeeded and "" otherwise. All
// failures are logged and absorbed.
func (uc *MeetingUseCase) archiveMeeting(ctx context.Context, meeting *model.Meeting) string {
	logger := logging.From(ctx)

	if !uc.archive.IsAvailable() {
		logger.Info("archive not configured, skipping upload", "meeting_id", meeting.ID)
		return ""
	}

	var html []byte
	if uc.renderer != nil {
		rendered, err := uc.renderer.Render(meeting)
		if err != nil {
			errutil.Handle(ctx, err, "failed to render meeting report")
		} else {
			html = rendered
		}
	}

	doc, err := json.MarshalIndent(meeting, "", "  ")
	if err != nil {
		errutil.Handle(ctx, err, "failed to serialize meeting for archive")
		return ""
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return uc.archive.UploadMeetingJSON(egCtx, meeting.ID, doc)
	})
	if html != nil {
		eg.Go(func() error {
			return uc.archive.UploadHTMLReport(egCtx, meeting.ID, html)
		})
	}
	if err := eg.Wait(); err != nil {
		errutil.Handle(ctx, err, "failed to archive meeting artifacts")
		return ""
	}

	if html == nil {
		// Nothing to link without an HTML report
		return ""
	}

	url, err := uc.archive.PresignReportURL(ctx, meeting.ID)
	if err != nil {
		errutil.Handle(ctx, err, "failed to presign report URL")
		return ""
	}

	logger.Info("meeting archived", "meeting_id", meeting.ID)
	return url
}

// List returns all stored meeting IDs
func (uc *MeetingUseCase) List(ctx context.Context) ([]types.MeetingID, error) {
	ids, err := uc.store.List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list meetings")
	}
	return ids, nil
}

// Delete removes a meeting record. Administrative operation, not exposed to
// the chat command surface.
func (uc *MeetingUseCase) Delete(ctx context.Context, id types.MeetingID) (bool, error) {
	deleted, err := uc.store.Delete(ctx, id)
	if err != nil {
		return false, goerr.Wrap(err, "failed to delete meeting", goerr.V(MeetingIDKey, id))
	}
	if deleted {
		logging.From(ctx).Info("meeting deleted", "meeting_id", id)
	}
	return deleted, nil
}
