package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/huddle-lab/standup/pkg/cli/config"
	"github.com/huddle-lab/standup/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdShow() *cli.Command {
	var storageCfg config.Storage

	return &cli.Command{
		Name:      "show",
		Usage:     "Print a meeting record as JSON",
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

			meeting, err := store.Load(ctx, id)
			if err != nil {
				return goerr.Wrap(err, "failed to load meeting", goerr.V("id", id))
			}
			if meeting == nil {
				return goerr.New("meeting not found", goerr.V("id", id))
			}

			data, err := json.MarshalIndent(meeting, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to encode meeting")
			}
			fmt.Println(string(data))
			return nil
		},
	}
}
