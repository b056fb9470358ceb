package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/huddle-lab/standup/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdList() *cli.Command {
	var storageCfg config.Storage

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List meeting records in the store",
		Flags:   storageCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := storageCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize meeting store")
			}

			ids, err := store.List(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to list meetings")
			}

			if len(ids) == 0 {
				fmt.Println("No meetings found")
				return nil
			}

			open := color.New(color.FgGreen).SprintFunc()
			closed := color.New(color.FgHiBlack).SprintFunc()

			for _, id := range ids {
				meeting, err := store.Load(ctx, id)
				if err != nil {
					return goerr.Wrap(err, "failed to load meeting", goerr.V("id", id))
				}
				if meeting == nil {
					continue
				}

				status := open("open")
				if meeting.IsClosed {
					status = closed("closed")
				}
				fmt.Printf("%s  %-6s  %2d update(s)  created by %s at %s\n",
					meeting.ID, status, len(meeting.Updates),
					meeting.CreatedBy, meeting.CreatedAt.Format("2006-01-02 15:04"))
			}

			return nil
		},
	}
}
