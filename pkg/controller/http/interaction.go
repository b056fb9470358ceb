package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/huddle-lab/standup/pkg/domain/model"
	slacksvc "github.com/huddle-lab/standup/pkg/service/slack"
	"github.com/huddle-lab/standup/pkg/usecase"
	"github.com/huddle-lab/standup/pkg/utils/errutil"
	"github.com/huddle-lab/standup/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// InteractionHandler handles modal view submissions: the create-meeting form
// and the status update form.
type InteractionHandler struct {
	uc       *usecase.MeetingUseCase
	slackSvc slacksvc.Service
}

func NewInteractionHandler(uc *usecase.MeetingUseCase, svc slacksvc.Service) *InteractionHandler {
	return &InteractionHandler{uc: uc, slackSvc: svc}
}

func (h *InteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Slack sends interaction payloads as application/x-www-form-urlencoded
	// with a "payload" field containing JSON
	payload := r.FormValue("payload")
	if payload == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("missing payload field in interaction request"), http.StatusBadRequest)
		return
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse interaction payload"), http.StatusBadRequest)
		return
	}

	if callback.Type != slack.InteractionTypeViewSubmission {
		w.WriteHeader(http.StatusOK)
		return
	}

	switch callback.View.CallbackID {
	case slacksvc.CallbackIDNewMeeting:
		h.handleNewMeetingSubmission(ctx, w, &callback)
	case slacksvc.CallbackIDUpdate:
		h.handleUpdateSubmission(ctx, w, &callback)
	default:
		logging.From(ctx).Warn("unknown view callback ID", "callback_id", callback.View.CallbackID)
		w.WriteHeader(http.StatusOK)
	}
}

func (h *InteractionHandler) handleNewMeetingSubmission(ctx context.Context, w http.ResponseWriter, callback *slack.InteractionCallback) {
	meta, err := slacksvc.DecodeViewMetadata(callback.View.PrivateMetadata)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	name := slacksvc.InputValue(callback.View.State, slacksvc.BlockIDName)
	link := slacksvc.InputValue(callback.View.State, slacksvc.BlockIDLink)

	meeting, err := h.uc.Create(ctx, callback.User.ID, name, link)
	if err != nil {
		errutil.Handle(ctx, err, "failed to create meeting")
		h.notifyEphemeral(ctx, meta.ChannelID, callback.User.ID, genericErrorText)
		w.WriteHeader(http.StatusOK)
		return
	}

	// Close the modal, then announce the meeting in the origin channel
	w.WriteHeader(http.StatusOK)

	text := fmt.Sprintf(
		":white_check_mark: New meeting created by <@%s>: `%s`\n"+
			"Submit your update with `/standup update %s`",
		callback.User.ID, meeting.ID, meeting.ID)
	if meeting.Name != "" {
		text = fmt.Sprintf(":white_check_mark: New meeting *%s* created by <@%s>: `%s`\n"+
			"Submit your update with `/standup update %s`",
			meeting.Name, callback.User.ID, meeting.ID, meeting.ID)
	}

	if err := h.slackSvc.PostMessage(ctx, meta.ChannelID, slack.MsgOptionText(text, false)); err != nil {
		errutil.Handle(ctx, err, "failed to announce new meeting")
	}
}

func (h *InteractionHandler) handleUpdateSubmission(ctx context.Context, w http.ResponseWriter, callback *slack.InteractionCallback) {
	meta, err := slacksvc.DecodeViewMetadata(callback.View.PrivateMetadata)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	progress := slacksvc.InputValue(callback.View.State, slacksvc.BlockIDProgress)
	blockers := slacksvc.InputValue(callback.View.State, slacksvc.BlockIDBlockers)
	goals := slacksvc.InputValue(callback.View.State, slacksvc.BlockIDGoals)

	_, err = h.uc.SubmitUpdate(ctx, meta.MeetingID, callback.User.ID, progress, blockers, goals)
	if err != nil {
		// Validation failures stay inside the modal, attached to the
		// offending input
		if field := validationField(err); field != "" {
			writeViewErrors(ctx, w, map[string]string{field: validationMessage(err)})
			return
		}

		text, ok := rejectionText(err, meta.MeetingID)
		if !ok {
			errutil.Handle(ctx, err, "failed to submit update")
			text = genericErrorText
		}
		h.notifyEphemeral(ctx, meta.ChannelID, callback.User.ID, text)
		w.WriteHeader(http.StatusOK)
		return
	}

	w.WriteHeader(http.StatusOK)

	meeting, err := h.uc.Get(ctx, meta.MeetingID)
	if err != nil {
		errutil.Handle(ctx, err, "failed to reload meeting for confirmation")
		return
	}

	h.notifyEphemeral(ctx, meta.ChannelID, callback.User.ID,
		fmt.Sprintf(":white_check_mark: Your update has been added to meeting `%s` (%d total).",
			meeting.ID, len(meeting.Updates)))
}

// writeViewErrors responds to a view submission with per-input error messages
func writeViewErrors(ctx context.Context, w http.ResponseWriter, fieldErrors map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	resp := struct {
		ResponseAction string            `json:"response_action"`
		Errors         map[string]string `json:"errors"`
	}{
		ResponseAction: "errors",
		Errors:         fieldErrors,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.From(ctx).Error("failed to write view errors response", "error", err)
	}
}

// validationMessage returns the user-facing text for a validation error
func validationMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrFieldRequired):
		return "This field is required"
	case errors.Is(err, model.ErrFieldTooLong):
		return fmt.Sprintf("Must be %d characters or less", model.MaxFieldLength)
	default:
		return err.Error()
	}
}

func (h *InteractionHandler) notifyEphemeral(ctx context.Context, channelID, userID, text string) {
	if channelID == "" {
		return
	}
	if err := h.slackSvc.PostEphemeral(ctx, channelID, userID, slack.MsgOptionText(text, false)); err != nil {
		errutil.Handle(ctx, err, "failed to post ephemeral notification")
	}
}
