package slack

import (
	"encoding/json"

	"github.com/huddle-lab/standup/pkg/domain/model"
	"github.com/huddle-lab/standup/pkg/domain/model/config"
	"github.com/huddle-lab/standup/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// Modal callback IDs routed by the interaction handler
const (
	CallbackIDNewMeeting = "standup_new"
	CallbackIDUpdate     = "standup_update"
)

// Block and action IDs of the modal inputs
const (
	BlockIDName     = "meeting_name"
	BlockIDLink     = "meeting_link"
	BlockIDProgress = "progress"
	BlockIDBlockers = "blockers"
	BlockIDGoals    = "goals"

	actionIDInput = "input"
)

// ViewMetadata rides in a modal's private_metadata so the submission handler
// knows which meeting and origin channel the view belongs to.
type ViewMetadata struct {
	MeetingID types.MeetingID `json:"meeting_id,omitempty"`
	ChannelID string          `json:"channel_id,omitempty"`
}

// Encode serializes the metadata for ModalViewRequest.PrivateMetadata
func (m ViewMetadata) Encode() (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode view metadata")
	}
	return string(data), nil
}

// DecodeViewMetadata parses a modal's private_metadata
func DecodeViewMetadata(s string) (*ViewMetadata, error) {
	var m ViewMetadata
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, goerr.Wrap(err, "failed to decode view metadata")
	}
	return &m, nil
}

func textInput(blockID string, field config.FormField, optional bool, maxLength int) *slack.InputBlock {
	element := slack.NewPlainTextInputBlockElement(
		slack.NewTextBlockObject(slack.PlainTextType, field.Placeholder, false, false),
		actionIDInput,
	)
	element.Multiline = true
	if maxLength > 0 {
		element.MaxLength = maxLength
	}

	block := slack.NewInputBlock(blockID,
		slack.NewTextBlockObject(slack.PlainTextType, field.Label, false, false),
		nil, element)
	block.Optional = optional
	return block
}

func modal(title, callbackID, metadata string, blocks ...slack.Block) slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		Title:           slack.NewTextBlockObject(slack.PlainTextType, title, false, false),
		Submit:          slack.NewTextBlockObject(slack.PlainTextType, "Submit", false, false),
		Close:           slack.NewTextBlockObject(slack.PlainTextType, "Cancel", false, false),
		CallbackID:      callbackID,
		PrivateMetadata: metadata,
		Blocks:          slack.Blocks{BlockSet: blocks},
	}
}

// NewMeetingModal builds the create-meeting form (optional name and link)
func NewMeetingModal(form *config.FormConfig, meta ViewMetadata) (slack.ModalViewRequest, error) {
	metadata, err := meta.Encode()
	if err != nil {
		return slack.ModalViewRequest{}, err
	}

	return modal("Create Meeting", CallbackIDNewMeeting, metadata,
		textInput(BlockIDName, form.Name, true, 50),
		textInput(BlockIDLink, form.Link, true, model.MaxFieldLength),
	), nil
}

// UpdateModal builds the status update form (progress, blockers, goals)
func UpdateModal(form *config.FormConfig, meta ViewMetadata) (slack.ModalViewRequest, error) {
	metadata, err := meta.Encode()
	if err != nil {
		return slack.ModalViewRequest{}, err
	}

	return modal("Meeting Update", CallbackIDUpdate, metadata,
		textInput(BlockIDProgress, form.Progress, false, model.MaxFieldLength),
		textInput(BlockIDBlockers, form.Blockers, false, model.MaxFieldLength),
		textInput(BlockIDGoals, form.Goals, false, model.MaxFieldLength),
	), nil
}

// InputValue extracts a plain text input value from a submitted view state
func InputValue(state *slack.ViewState, blockID string) string {
	if state == nil {
		return ""
	}
	block, ok := state.Values[blockID]
	if !ok {
		return ""
	}
	return block[actionIDInput].Value
}
