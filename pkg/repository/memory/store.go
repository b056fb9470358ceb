package memory

import (
	"context"
	"sync"

	"github.com/huddle-lab/standup/pkg/domain/interfaces"
	"github.com/huddle-lab/standup/pkg/domain/model"
	"github.com/huddle-lab/standup/pkg/domain/types"
)

// Store is an in-memory meeting store for tests and development mode
type Store struct {
	mu       sync.RWMutex
	meetings map[types.MeetingID]*model.Meeting
}

var _ interfaces.MeetingStore = &Store{}

func New() *Store {
	return &Store{
		meetings: make(map[types.MeetingID]*model.Meeting),
	}
}

// copyMeeting creates a deep copy so callers never share mutable state
func copyMeeting(m *model.Meeting) *model.Meeting {
	copied := *m
	copied.Updates = make([]model.Update, len(m.Updates))
	copy(copied.Updates, m.Updates)
	if m.ClosedAt != nil {
		closedAt := *m.ClosedAt
		copied.ClosedAt = &closedAt
	}
	return &copied
}

func (s *Store) Save(ctx context.Context, meeting *model.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.meetings[meeting.ID] = copyMeeting(meeting)
	return nil
}

func (s *Store) Load(ctx context.Context, id types.MeetingID) (*model.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, exists := s.meetings[id]
	if !exists {
		return nil, nil
	}
	return copyMeeting(m), nil
}

func (s *Store) Exists(ctx context.Context, id types.MeetingID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.meetings[id]
	return exists, nil
}

func (s *Store) List(ctx context.Context) ([]types.MeetingID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]types.MeetingID, 0, len(s.meetings))
	for id := range s.meetings {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Store) Delete(ctx context.Context, id types.MeetingID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.meetings[id]; !exists {
		return false, nil
	}
	delete(s.meetings, id)
	return true, nil
}
