package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"

	"github.com/huddle-lab/standup/pkg/domain/model"
	"github.com/huddle-lab/standup/pkg/service/report"
	"github.com/urfave/cli/v3"
)

func cmdRender() *cli.Command {
	var templateDir string
	var output string

	return &cli.Command{
		Name:      "render",
		Usage:     "Render an HTML report from a meeting JSON file (local preview)",
		ArgsUsage: "<meeting.json>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "template-dir",
				Usage:       "Directory holding the report template (meeting_report.html)",
				Value:       "templates",
				Sources:     cli.EnvVars("STANDUP_TEMPLATE_DIR"),
				Destination: &templateDir,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output HTML file path",
				Value:       "report.html",
				Destination: &output,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one meeting JSON file is required")
			}
			input := c.Args().First()

			// #nosec G304 - path is expected to be provided by CLI argument
			data, err := os.ReadFile(input)
			if err != nil {
				return goerr.Wrap(err, "failed to read meeting file", goerr.V("path", input))
			}

			var meeting model.Meeting
			if err := json.Unmarshal(data, &meeting); err != nil {
				return goerr.Wrap(err, "failed to parse meeting file", goerr.V("path", input))
			}
			if err := meeting.Validate(); err != nil {
				return goerr.Wrap(err, "invalid meeting record", goerr.V("path", input))
			}

			renderer := report.New(templateDir)
			if !renderer.Available() {
				return goerr.New("report template not found", goerr.V("template_dir", templateDir))
			}

			html, err := renderer.Render(&meeting)
			if err != nil {
				return goerr.Wrap(err, "failed to render report")
			}

			if err := os.WriteFile(output, html, 0o644); err != nil {
				return goerr.Wrap(err, "failed to write report", goerr.V("path", output))
			}

			fmt.Printf("Wrote %s (%d bytes)\n", output, len(html))
			return nil
		},
	}
}
