package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/huddle-lab/standup/pkg/cli/config"
	httpctrl "github.com/huddle-lab/standup/pkg/controller/http"
	domainConfig "github.com/huddle-lab/standup/pkg/domain/model/config"
	"github.com/huddle-lab/standup/pkg/service/report"
	"github.com/huddle-lab/standup/pkg/usecase"
	"github.com/huddle-lab/standup/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var configPath string
	var templateDir string
	var storageCfg config.Storage
	var archiveCfg config.Archive
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("STANDUP_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to a TOML file customizing the modal form texts",
			Sources:     cli.EnvVars("STANDUP_CONFIG"),
			Destination: &configPath,
		},
		&cli.StringFlag{
			Name:        "template-dir",
			Usage:       "Directory holding the report template (meeting_report.html)",
			Value:       "templates",
			Sources:     cli.EnvVars("STANDUP_TEMPLATE_DIR"),
			Destination: &templateDir,
		},
	}

	// Add shared config flags
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, archiveCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server handling Slack commands and interactions",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Load form text overrides if a config file is given
			formCfg := domainConfig.DefaultFormConfig()
			if configPath != "" {
				appCfg, err := config.LoadAppConfiguration(configPath)
				if err != nil {
					return goerr.Wrap(err, "failed to load configuration")
				}
				formCfg, err = appCfg.ToFormConfig()
				if err != nil {
					return goerr.Wrap(err, "invalid form configuration")
				}
				logging.Default().Info("Loaded form configuration", "path", configPath)
			}

			// Initialize the meeting store
			store, err := storageCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize meeting store")
			}

			// Initialize the archive (disabled when not configured)
			archiveSvc, err := archiveCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize archive")
			}

			renderer := report.New(templateDir)
			if !renderer.Available() {
				logging.Default().Warn("Report template not found, archived meetings will have no HTML report",
					"template_dir", templateDir)
			}

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack client")
			}

			uc := usecase.New(store,
				usecase.WithArchive(archiveSvc),
				usecase.WithRenderer(renderer),
			)

			// Create HTTP server
			handler, err := httpctrl.New(slackCfg.SigningSecret(),
				httpctrl.WithCommandHandler(httpctrl.NewCommandHandler(uc.Meeting, slackSvc, formCfg)),
				httpctrl.WithInteractionHandler(httpctrl.NewInteractionHandler(uc.Meeting, slackSvc)),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"archive", archiveCfg.IsConfigured(),
					"slack", slackCfg,
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
