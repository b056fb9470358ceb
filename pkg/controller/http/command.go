package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/huddle-lab/standup/pkg/domain/model/config"
	"github.com/huddle-lab/standup/pkg/domain/types"
	slacksvc "github.com/huddle-lab/standup/pkg/service/slack"
	"github.com/huddle-lab/standup/pkg/usecase"
	"github.com/huddle-lab/standup/pkg/utils/async"
	"github.com/huddle-lab/standup/pkg/utils/errutil"
	"github.com/huddle-lab/standup/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// CommandHandler dispatches the /standup slash command: new opens the
// create-meeting modal, update <id> opens the status form after prechecks,
// close <id> closes and archives the meeting.
type CommandHandler struct {
	uc       *usecase.MeetingUseCase
	slackSvc slacksvc.Service
	form     *config.FormConfig
}

func NewCommandHandler(uc *usecase.MeetingUseCase, svc slacksvc.Service, form *config.FormConfig) *CommandHandler {
	if form == nil {
		form = config.DefaultFormConfig()
	}
	return &CommandHandler{uc: uc, slackSvc: svc, form: form}
}

// respondEphemeral writes an ephemeral message as the immediate slash command
// response.
func respondEphemeral(ctx context.Context, w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	resp := map[string]string{
		"response_type": slack.ResponseTypeEphemeral,
		"text":          text,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.From(ctx).Error("failed to write command response", "error", err)
	}
}

func (h *CommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse slash command"), http.StatusBadRequest)
		return
	}

	action, arg := splitCommandText(cmd.Text)

	switch action {
	case "new":
		h.handleNew(ctx, w, &cmd)
	case "update":
		h.handleUpdate(ctx, w, &cmd, types.MeetingID(arg))
	case "close":
		h.handleClose(ctx, w, &cmd, types.MeetingID(arg))
	default:
		respondEphemeral(ctx, w, "Usage: `/standup new`, `/standup update <meeting_id>`, `/standup close <meeting_id>`")
	}
}

func splitCommandText(text string) (action, arg string) {
	parts := strings.Fields(text)
	if len(parts) > 0 {
		action = parts[0]
	}
	if len(parts) > 1 {
		arg = parts[1]
	}
	return action, arg
}

func (h *CommandHandler) handleNew(ctx context.Context, w http.ResponseWriter, cmd *slack.SlashCommand) {
	view, err := slacksvc.NewMeetingModal(h.form, slacksvc.ViewMetadata{ChannelID: cmd.ChannelID})
	if err != nil {
		errutil.Handle(ctx, err, "failed to build create-meeting modal")
		respondEphemeral(ctx, w, genericErrorText)
		return
	}

	if err := h.slackSvc.OpenView(ctx, cmd.TriggerID, view); err != nil {
		errutil.Handle(ctx, err, "failed to open create-meeting modal")
		respondEphemeral(ctx, w, genericErrorText)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *CommandHandler) handleUpdate(ctx context.Context, w http.ResponseWriter, cmd *slack.SlashCommand, id types.MeetingID) {
	if id == "" {
		respondEphemeral(ctx, w, ":x: Meeting ID is required: `/standup update <meeting_id>`")
		return
	}

	// Reject before opening the form: unknown meeting, closed meeting, or a
	// user who already submitted.
	if err := h.uc.CheckSubmit(ctx, id, cmd.UserID); err != nil {
		if text, ok := rejectionText(err, id); ok {
			respondEphemeral(ctx, w, text)
			return
		}
		errutil.Handle(ctx, err, "failed to precheck update submission")
		respondEphemeral(ctx, w, genericErrorText)
		return
	}

	view, err := slacksvc.UpdateModal(h.form, slacksvc.ViewMetadata{MeetingID: id, ChannelID: cmd.ChannelID})
	if err != nil {
		errutil.Handle(ctx, err, "failed to build update modal")
		respondEphemeral(ctx, w, genericErrorText)
		return
	}

	if err := h.slackSvc.OpenView(ctx, cmd.TriggerID, view); err != nil {
		errutil.Handle(ctx, err, "failed to open update modal")
		respondEphemeral(ctx, w, genericErrorText)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *CommandHandler) handleClose(ctx context.Context, w http.ResponseWriter, cmd *slack.SlashCommand, id types.MeetingID) {
	if id == "" {
		respondEphemeral(ctx, w, ":x: Meeting ID is required: `/standup close <meeting_id>`")
		return
	}

	userID := cmd.UserID
	responseURL := cmd.ResponseURL

	// Ack within Slack's 3-second window; the close itself (render, upload,
	// presign) completes asynchronously and reports via the response URL.
	w.WriteHeader(http.StatusOK)

	async.Dispatch(ctx, func(ctx context.Context) error {
		result, err := h.uc.Close(ctx, id, userID)
		if err != nil {
			text, ok := rejectionText(err, id)
			if !ok {
				errutil.Handle(ctx, err, "failed to close meeting")
				text = genericErrorText
			}
			return postWebhook(ctx, responseURL, &slack.WebhookMessage{
				ResponseType: slack.ResponseTypeEphemeral,
				Text:         text,
			})
		}

		return postWebhook(ctx, responseURL, &slack.WebhookMessage{
			ResponseType: slack.ResponseTypeInChannel,
			Text:         closeAnnouncement(result, userID),
		})
	})
}

// closeAnnouncement builds the in-channel summary posted after a close
func closeAnnouncement(result *usecase.CloseResult, closedBy string) string {
	m := result.Meeting

	reportLine := "Automatic report link unavailable."
	if result.ReportURL != "" {
		reportLine = fmt.Sprintf("<%s|View meeting report>", result.ReportURL)
	}

	linkLine := "This meeting has no link."
	if m.Link != "" {
		linkLine = m.Link
	}

	return fmt.Sprintf(
		":lock: Meeting `%s` has been closed by <@%s>.\n"+
			"*Total updates:* %d\n"+
			"*Report:* %s\n"+
			"*Meeting link:* %s\n"+
			"_Meeting data has been saved and locked._",
		m.ID, closedBy, len(m.Updates), reportLine, linkLine)
}

func postWebhook(ctx context.Context, responseURL string, msg *slack.WebhookMessage) error {
	if err := slack.PostWebhookContext(ctx, responseURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post to response URL")
	}
	return nil
}
