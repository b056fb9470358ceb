package config

import (
	"context"

	"github.com/huddle-lab/standup/pkg/domain/interfaces"
	"github.com/huddle-lab/standup/pkg/repository/filesystem"
	"github.com/huddle-lab/standup/pkg/repository/memory"
	"github.com/huddle-lab/standup/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Storage holds CLI flags for the meeting store backend
type Storage struct {
	backend string
	dir     string
}

// Flags returns CLI flags for storage configuration
func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-backend",
			Usage:       "Meeting store backend (filesystem or memory)",
			Category:    "Storage",
			Value:       "filesystem",
			Sources:     cli.EnvVars("STANDUP_STORAGE_BACKEND"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "storage-dir",
			Usage:       "Directory holding meeting records (required for filesystem backend)",
			Category:    "Storage",
			Value:       "meetings",
			Sources:     cli.EnvVars("STANDUP_STORAGE_DIR"),
			Destination: &x.dir,
		},
	}
}

// Configure initializes the meeting store based on the configured backend
func (x *Storage) Configure(ctx context.Context) (interfaces.MeetingStore, error) {
	switch x.backend {
	case "filesystem":
		store, err := filesystem.New(x.dir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize filesystem store")
		}
		logging.Default().Info("Using filesystem meeting store", "dir", x.dir)
		return store, nil

	case "memory":
		logging.Default().Info("Using in-memory meeting store (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid storage backend", goerr.V("backend", x.backend))
	}
}
