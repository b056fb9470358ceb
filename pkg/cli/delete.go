package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/huddle-lab/standup/pkg/cli/config"
	"github.com/huddle-lab/standup/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdDelete() *cli.Command {
	var storageCfg config.Storage

	return &cli.Command{
		Name:      "delete",
		Usage:     "Remove a meeting record from the store",
		ArgsUsage: "<meeting-id>",
		Flags:     storageCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one meeting ID is required")
			}
			id := types.MeetingID(c.Args().First())
			if err := id.Validate(); err != nil {
				return goerr.Wrap(err, "invalid meeting ID")
			}

			store, err := storageCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize meeting store")
			}

			deleted, err := store.Delete(ctx, id)
			if err != nil {
				return goerr.Wrap(err, "failed to delete meeting", goerr.V("id", id))
			}
			if !deleted {
				return goerr.New("meeting not found", goerr.V("id", id))
			}

			fmt.Printf("Deleted meeting %s\n", id)
			return nil
		},
	}
}
