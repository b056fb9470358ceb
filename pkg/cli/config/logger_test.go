package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/huddle-lab/standup/pkg/cli/config"
	"github.com/huddle-lab/standup/pkg/utils/logging"
	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"
)

func configureLogger(t *testing.T, args ...string) error {
	t.Helper()

	prev := logging.Default()
	t.Cleanup(func() { logging.SetDefault(prev) })

	var loggerCfg config.Logger
	var configureErr error
	cmd := &cli.Command{
		Name:  "test",
		Flags: loggerCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			closer, err := loggerCfg.Configure()
			if err != nil {
				configureErr = err
				return nil
			}
			t.Cleanup(closer)
			return nil
		},
	}
	gt.NoError(t, cmd.Run(t.Context(), append([]string{"test"}, args...))).Required()
	return configureErr
}

func TestLoggerConfigure(t *testing.T) {
	t.Run("invalid level is rejected", func(t *testing.T) {
		gt.Error(t, configureLogger(t, "--log-level", "verbose"))
	})

	t.Run("invalid format is rejected", func(t *testing.T) {
		gt.Error(t, configureLogger(t, "--log-format", "xml"))
	})

	t.Run("file output writes JSON logs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		gt.NoError(t, configureLogger(t,
			"--log-format", "json",
			"--log-level", "debug",
			"--log-output", path,
		)).Required()

		logging.Default().Info("hello from test")

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.String(t, string(data)).Contains("hello from test")
	})
}
