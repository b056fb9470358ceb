package model

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/huddle-lab/standup/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// MaxFieldLength is the maximum length of each update text field, counted in
// characters, the same unit the modal inputs enforce.
const MaxFieldLength = 500

// Update is one participant's status submission. It is immutable once
// constructed; NewUpdate is the only way to build a valid one.
type Update struct {
	User      string    `json:"user"`
	Progress  string    `json:"progress"`
	Blockers  string    `json:"blockers"`
	Goals     string    `json:"goals"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUpdate validates and constructs an Update. Each of progress, blockers
// and goals must be non-empty after trimming and at most MaxFieldLength
// characters.
func NewUpdate(user, progress, blockers, goals string) (*Update, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"progress", &progress},
		{"blockers", &blockers},
		{"goals", &goals},
	}

	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return nil, goerr.Wrap(ErrFieldRequired, "empty update field", goerr.V(FieldKey, f.name))
		}
		if utf8.RuneCountInString(*f.value) > MaxFieldLength {
			return nil, goerr.Wrap(ErrFieldTooLong, "update field too long", goerr.V(FieldKey, f.name))
		}
	}

	return &Update{
		User:      user,
		Progress:  progress,
		Blockers:  blockers,
		Goals:     goals,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Meeting is a tracked status session with an ordered list of participant
// updates and an open/closed lifecycle state.
type Meeting struct {
	ID        types.MeetingID `json:"id"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
	Name      string          `json:"name,omitempty"`
	Link      string          `json:"link,omitempty"`
	Updates   []Update        `json:"updates"`
	IsClosed  bool            `json:"is_closed"`
	ClosedAt  *time.Time      `json:"closed_at,omitempty"`
}

// NewMeeting creates a new open meeting with an empty update list and a
// freshly minted ID. Name and link are optional free-text metadata.
func NewMeeting(createdBy, name, link string) *Meeting {
	now := time.Now().UTC()
	return &Meeting{
		ID:        types.NewMeetingID(now),
		CreatedBy: createdBy,
		CreatedAt: now,
		Name:      strings.TrimSpace(name),
		Link:      strings.TrimSpace(link),
		Updates:   []Update{},
	}
}

// AddUpdate validates and appends a new update. The meeting is left unchanged
// when validation fails.
func (m *Meeting) AddUpdate(user, progress, blockers, goals string) (*Update, error) {
	if m.IsClosed {
		return nil, goerr.Wrap(ErrMeetingClosed, "cannot add update", goerr.V(MeetingIDKey, m.ID))
	}

	update, err := NewUpdate(user, progress, blockers, goals)
	if err != nil {
		return nil, err
	}

	m.Updates = append(m.Updates, *update)
	return update, nil
}

// Close marks the meeting as closed and stamps the closing time. Closing is
// one-way: a closed meeting never reopens.
func (m *Meeting) Close() error {
	if m.IsClosed {
		return goerr.Wrap(ErrAlreadyClosed, "cannot close meeting", goerr.V(MeetingIDKey, m.ID))
	}

	now := time.Now().UTC()
	m.IsClosed = true
	m.ClosedAt = &now
	return nil
}

// Validate checks the structural integrity of a meeting reconstructed from a
// stored document: required keys, ID format, update fields, and the closure
// invariant (closed_at is set if and only if is_closed).
func (m *Meeting) Validate() error {
	// A document without an updates key decodes to a nil slice; normalize it
	// so the record always serializes with an array.
	if m.Updates == nil {
		m.Updates = []Update{}
	}

	if err := m.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid meeting ID")
	}
	if m.CreatedBy == "" {
		return goerr.New("created_by is required", goerr.V(MeetingIDKey, m.ID))
	}
	if m.CreatedAt.IsZero() {
		return goerr.New("created_at is required", goerr.V(MeetingIDKey, m.ID))
	}
	if m.IsClosed != (m.ClosedAt != nil) {
		return goerr.New("inconsistent closure state", goerr.V(MeetingIDKey, m.ID), goerr.V("is_closed", m.IsClosed))
	}

	for i, u := range m.Updates {
		if u.User == "" || u.Progress == "" || u.Blockers == "" || u.Goals == "" {
			return goerr.New("incomplete update", goerr.V(MeetingIDKey, m.ID), goerr.V("index", i))
		}
	}

	return nil
}

// HasUpdateFrom reports whether the user already submitted an update
func (m *Meeting) HasUpdateFrom(user string) bool {
	for _, u := range m.Updates {
		if u.User == user {
			return true
		}
	}
	return false
}

// CanSubmit checks whether the user may submit an update: the meeting must be
// open and the user must not have submitted one already.
func (m *Meeting) CanSubmit(user string) error {
	if m.IsClosed {
		return goerr.Wrap(ErrMeetingClosed, "cannot submit update", goerr.V(MeetingIDKey, m.ID))
	}
	if m.HasUpdateFrom(user) {
		return goerr.Wrap(ErrAlreadySubmitted, "duplicate submission", goerr.V(MeetingIDKey, m.ID), goerr.V(UserKey, user))
	}
	return nil
}

// CanClose checks whether the user may close the meeting: the meeting must be
// open and the user must be the creator.
func (m *Meeting) CanClose(user string) error {
	if m.IsClosed {
		return goerr.Wrap(ErrAlreadyClosed, "cannot close meeting", goerr.V(MeetingIDKey, m.ID))
	}
	if user != m.CreatedBy {
		return goerr.Wrap(ErrNotCreator, "close denied", goerr.V(MeetingIDKey, m.ID), goerr.V(UserKey, user))
	}
	return nil
}
