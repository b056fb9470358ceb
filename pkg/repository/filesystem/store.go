package filesystem

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/huddle-lab/standup/pkg/domain/interfaces"
	"github.com/huddle-lab/standup/pkg/domain/model"
	"github.com/huddle-lab/standup/pkg/domain/types"
	"github.com/huddle-lab/standup/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const recordFileName = "meeting.json"

// Store persists one meeting per JSON file under <root>/<id>/meeting.json.
// The directory listing is the index; there is no locking. At most one writer
// per meeting ID is assumed: two concurrent saves of the same ID are
// last-writer-wins and a concurrently appended update can be lost.
type Store struct {
	root string
}

var _ interfaces.MeetingStore = &Store{}

// New creates a store rooted at dir, creating it if necessary
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, goerr.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create storage directory", goerr.V("dir", dir))
	}
	return &Store{root: dir}, nil
}

func (s *Store) recordPath(id types.MeetingID) string {
	return filepath.Join(s.root, id.String(), recordFileName)
}

// Save writes the meeting document, fully overwriting any prior record.
func (s *Store) Save(ctx context.Context, meeting *model.Meeting) error {
	if err := meeting.ID.Validate(); err != nil {
		return goerr.Wrap(err, "refusing to save meeting with invalid ID")
	}

	dir := filepath.Join(s.root, meeting.ID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create meeting directory", goerr.V("dir", dir))
	}

	data, err := json.MarshalIndent(meeting, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to serialize meeting", goerr.V(model.MeetingIDKey, meeting.ID))
	}

	path := s.recordPath(meeting.ID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return goerr.Wrap(err, "failed to write meeting record", goerr.V("path", path))
	}

	return nil
}

// Load returns (nil, nil) when no record exists. A record that cannot be
// decoded or fails validation is logged and also reported as absent so that
// corrupt data never crashes a user action.
func (s *Store) Load(ctx context.Context, id types.MeetingID) (*model.Meeting, error) {
	if err := id.Validate(); err != nil {
		return nil, nil
	}

	path := s.recordPath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to read meeting record", goerr.V("path", path))
	}

	var meeting model.Meeting
	if err := json.Unmarshal(data, &meeting); err != nil {
		logging.From(ctx).Warn("malformed meeting record, treating as absent",
			"path", path, "error", err.Error())
		return nil, nil
	}
	if err := meeting.Validate(); err != nil {
		logging.From(ctx).Warn("invalid meeting record, treating as absent",
			"path", path, "error", err.Error())
		return nil, nil
	}

	return &meeting, nil
}

// Exists reports whether a record file exists for the ID
func (s *Store) Exists(ctx context.Context, id types.MeetingID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, nil
	}

	if _, err := os.Stat(s.recordPath(id)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to stat meeting record", goerr.V(model.MeetingIDKey, id))
	}
	return true, nil
}

// List enumerates stored meeting IDs in directory order
func (s *Store) List(ctx context.Context) ([]types.MeetingID, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.MeetingID{}, nil
		}
		return nil, goerr.Wrap(err, "failed to read storage directory", goerr.V("dir", s.root))
	}

	ids := make([]types.MeetingID, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := types.MeetingID(entry.Name())
		if _, err := os.Stat(s.recordPath(id)); err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// Delete removes the record and cleans up the emptied meeting directory.
// OS-level deletion faults are logged and reported as false rather than
// propagated.
func (s *Store) Delete(ctx context.Context, id types.MeetingID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, nil
	}

	path := s.recordPath(id)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to stat meeting record", goerr.V("path", path))
	}

	if err := os.Remove(path); err != nil {
		logging.From(ctx).Error("failed to delete meeting record", "path", path, "error", err.Error())
		return false, nil
	}

	// Best-effort cleanup: the directory may hold unrelated files
	dir := filepath.Dir(path)
	if entries, err := os.ReadDir(dir); err == nil && len(entries) == 0 {
		if err := os.Remove(dir); err != nil {
			logging.From(ctx).Warn("failed to remove empty meeting directory", "dir", dir, "error", err.Error())
		}
	}

	return true, nil
}
