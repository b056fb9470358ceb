package model_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/huddle-lab/standup/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestNewMeeting(t *testing.T) {
	m := model.NewMeeting("alice", "weekly sync", "https://example.com/room")

	gt.NoError(t, m.ID.Validate())
	gt.Value(t, m.CreatedBy).Equal("alice")
	gt.Value(t, m.Name).Equal("weekly sync")
	gt.Value(t, m.Link).Equal("https://example.com/room")
	gt.Bool(t, m.IsClosed).False()
	gt.Value(t, m.ClosedAt).Nil()
	gt.Array(t, m.Updates).Length(0)
	gt.Bool(t, m.CreatedAt.IsZero()).False()
}

func TestMeetingID_Format(t *testing.T) {
	m1 := model.NewMeeting("alice", "", "")
	m2 := model.NewMeeting("alice", "", "")

	// YY-M-D prefix plus 8 hex chars
	parts := strings.Split(m1.ID.String(), "-")
	gt.Array(t, parts).Length(4)
	gt.Number(t, len(parts[3])).Equal(8)

	gt.Value(t, m1.ID).NotEqual(m2.ID)
}

func TestAddUpdate(t *testing.T) {
	t.Run("valid update is appended with trimmed fields", func(t *testing.T) {
		m := model.NewMeeting("alice", "", "")

		u, err := m.AddUpdate("bob", "  shipped X  ", "none", "ship Y")
		gt.NoError(t, err).Required()

		gt.Value(t, u.User).Equal("bob")
		gt.Value(t, u.Progress).Equal("shipped X")
		gt.Value(t, u.Blockers).Equal("none")
		gt.Value(t, u.Goals).Equal("ship Y")
		gt.Bool(t, u.Timestamp.IsZero()).False()
		gt.Array(t, m.Updates).Length(1)
	})

	t.Run("boundary length is accepted", func(t *testing.T) {
		m := model.NewMeeting("alice", "", "")

		long := strings.Repeat("a", model.MaxFieldLength)
		_, err := m.AddUpdate("bob", long, long, long)
		gt.NoError(t, err)
		gt.Array(t, m.Updates).Length(1)
	})

	t.Run("length is counted in characters, not bytes", func(t *testing.T) {
		m := model.NewMeeting("alice", "", "")

		// 500 three-byte characters are within the limit
		long := strings.Repeat("あ", model.MaxFieldLength)
		_, err := m.AddUpdate("bob", long, long, long)
		gt.NoError(t, err)
		gt.Array(t, m.Updates).Length(1)

		_, err = m.AddUpdate("carol", long+"あ", "none", "ship Y")
		gt.Bool(t, errors.Is(err, model.ErrFieldTooLong)).True()
		gt.Array(t, m.Updates).Length(1)
	})

	t.Run("invalid fields leave the meeting unchanged", func(t *testing.T) {
		tests := []struct {
			name                       string
			progress, blockers, goals  string
			wantErr                    error
		}{
			{"empty progress", "", "none", "ship Y", model.ErrFieldRequired},
			{"whitespace-only blockers", "shipped X", "   ", "ship Y", model.ErrFieldRequired},
			{"empty goals", "shipped X", "none", "", model.ErrFieldRequired},
			{"progress too long", strings.Repeat("a", model.MaxFieldLength+1), "none", "ship Y", model.ErrFieldTooLong},
			{"goals too long", "shipped X", "none", strings.Repeat("b", model.MaxFieldLength+1), model.ErrFieldTooLong},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				m := model.NewMeeting("alice", "", "")

				_, err := m.AddUpdate("bob", tt.progress, tt.blockers, tt.goals)
				gt.Error(t, err)
				gt.Bool(t, errors.Is(err, tt.wantErr)).True()
				gt.Array(t, m.Updates).Length(0)
			})
		}
	})

	t.Run("closed meeting rejects updates regardless of input", func(t *testing.T) {
		m := model.NewMeeting("alice", "", "")
		gt.NoError(t, m.Close())

		_, err := m.AddUpdate("bob", "shipped X", "none", "ship Y")
		gt.Bool(t, errors.Is(err, model.ErrMeetingClosed)).True()

		_, err = m.AddUpdate("bob", "", "", "")
		gt.Bool(t, errors.Is(err, model.ErrMeetingClosed)).True()
		gt.Array(t, m.Updates).Length(0)
	})
}

func TestClose(t *testing.T) {
	m := model.NewMeeting("alice", "", "")

	gt.NoError(t, m.Close())
	gt.Bool(t, m.IsClosed).True()
	gt.Value(t, m.ClosedAt).NotNil()

	closedAt := *m.ClosedAt

	// Second close fails and leaves closure state untouched
	err := m.Close()
	gt.Bool(t, errors.Is(err, model.ErrAlreadyClosed)).True()
	gt.Bool(t, m.IsClosed).True()
	gt.Bool(t, m.ClosedAt.Equal(closedAt)).True()
}

func TestCanSubmit(t *testing.T) {
	m := model.NewMeeting("alice", "", "")

	gt.NoError(t, m.CanSubmit("bob"))

	_, err := m.AddUpdate("bob", "shipped X", "none", "ship Y")
	gt.NoError(t, err).Required()

	gt.Bool(t, errors.Is(m.CanSubmit("bob"), model.ErrAlreadySubmitted)).True()
	gt.NoError(t, m.CanSubmit("carol"))

	gt.NoError(t, m.Close())
	gt.Bool(t, errors.Is(m.CanSubmit("carol"), model.ErrMeetingClosed)).True()
}

func TestCanClose(t *testing.T) {
	m := model.NewMeeting("alice", "", "")

	gt.Bool(t, errors.Is(m.CanClose("carol"), model.ErrNotCreator)).True()
	gt.NoError(t, m.CanClose("alice"))

	gt.NoError(t, m.Close())
	gt.Bool(t, errors.Is(m.CanClose("alice"), model.ErrAlreadyClosed)).True()
}

func TestMeetingJSONRoundTrip(t *testing.T) {
	m := model.NewMeeting("alice", "planning", "https://example.com/room")
	_, err := m.AddUpdate("bob", "shipped X", "none", "ship Y")
	gt.NoError(t, err).Required()
	_, err = m.AddUpdate("carol", "reviewed PRs", "waiting on infra", "merge queue")
	gt.NoError(t, err).Required()
	gt.NoError(t, m.Close())

	data, err := json.Marshal(m)
	gt.NoError(t, err).Required()

	var got model.Meeting
	gt.NoError(t, json.Unmarshal(data, &got)).Required()

	gt.Value(t, got.ID).Equal(m.ID)
	gt.Value(t, got.CreatedBy).Equal(m.CreatedBy)
	gt.Value(t, got.Name).Equal(m.Name)
	gt.Value(t, got.Link).Equal(m.Link)
	gt.Bool(t, got.CreatedAt.Equal(m.CreatedAt)).True()
	gt.Bool(t, got.IsClosed).True()
	gt.Bool(t, got.ClosedAt.Equal(*m.ClosedAt)).True()
	gt.Array(t, got.Updates).Length(2)
	gt.Value(t, got.Updates[0].User).Equal("bob")
	gt.Value(t, got.Updates[0].Progress).Equal("shipped X")
	gt.Value(t, got.Updates[1].User).Equal("carol")
	gt.NoError(t, got.Validate())
}

func TestMeetingJSONDefaults(t *testing.T) {
	// Documents written before closing lack is_closed/closed_at
	doc := `{
  "id": "25-9-10-a1b2c3d4",
  "created_by": "alice",
  "created_at": "2025-09-10T09:00:00Z",
  "updates": []
}`

	var m model.Meeting
	gt.NoError(t, json.Unmarshal([]byte(doc), &m)).Required()

	gt.Bool(t, m.IsClosed).False()
	gt.Value(t, m.ClosedAt).Nil()
	gt.NoError(t, m.Validate())
}

func TestMeetingJSONMissingUpdates(t *testing.T) {
	doc := `{
  "id": "25-9-10-a1b2c3d4",
  "created_by": "alice",
  "created_at": "2025-09-10T09:00:00Z"
}`

	var m model.Meeting
	gt.NoError(t, json.Unmarshal([]byte(doc), &m)).Required()
	gt.NoError(t, m.Validate())

	// Validate normalizes the nil slice so the record serializes with an array
	gt.Array(t, m.Updates).Length(0)
	raw, err := json.Marshal(&m)
	gt.NoError(t, err)
	gt.String(t, string(raw)).Contains(`"updates":[]`)
}

func TestMeetingValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *model.Meeting)
		wantErr bool
	}{
		{"valid open meeting", func(m *model.Meeting) {}, false},
		{"missing creator", func(m *model.Meeting) { m.CreatedBy = "" }, true},
		{"bad ID format", func(m *model.Meeting) { m.ID = "not-an-id" }, true},
		{"zero created_at", func(m *model.Meeting) { m.CreatedAt = time.Time{} }, true},
		{"closed without closed_at", func(m *model.Meeting) { m.IsClosed = true }, true},
		{"closed_at without is_closed", func(m *model.Meeting) {
			now := time.Now()
			m.ClosedAt = &now
		}, true},
		{"incomplete update", func(m *model.Meeting) {
			m.Updates = append(m.Updates, model.Update{User: "bob"})
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := model.NewMeeting("alice", "", "")
			tt.mutate(m)

			err := m.Validate()
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}
