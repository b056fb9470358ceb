package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/huddle-lab/standup/pkg/domain/interfaces"
	"github.com/huddle-lab/standup/pkg/service/archive"
	"github.com/huddle-lab/standup/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Archive holds CLI flags for the S3-compatible archive backend. All flags
// are optional; when no endpoint is given the archive is disabled and
// meetings close without uploading artifacts.
type Archive struct {
	endpoint   string
	bucket     string
	accessKey  string
	secretKey  string
	useSSL     bool
	presignTTL time.Duration
}

func (x *Archive) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "archive-endpoint",
			Usage:       "S3-compatible object store endpoint (e.g. s3.amazonaws.com). Empty disables archiving",
			Category:    "Archive",
			Sources:     cli.EnvVars("STANDUP_ARCHIVE_ENDPOINT"),
			Destination: &x.endpoint,
		},
		&cli.StringFlag{
			Name:        "archive-bucket",
			Usage:       "Bucket receiving archived meeting reports",
			Category:    "Archive",
			Sources:     cli.EnvVars("STANDUP_ARCHIVE_BUCKET"),
			Destination: &x.bucket,
		},
		&cli.StringFlag{
			Name:        "archive-access-key",
			Usage:       "Object store access key",
			Category:    "Archive",
			Sources:     cli.EnvVars("STANDUP_ARCHIVE_ACCESS_KEY"),
			Destination: &x.accessKey,
		},
		&cli.StringFlag{
			Name:        "archive-secret-key",
			Usage:       "Object store secret key",
			Category:    "Archive",
			Sources:     cli.EnvVars("STANDUP_ARCHIVE_SECRET_KEY"),
			Destination: &x.secretKey,
		},
		&cli.BoolFlag{
			Name:        "archive-ssl",
			Usage:       "Use TLS for object store connections",
			Category:    "Archive",
			Value:       true,
			Sources:     cli.EnvVars("STANDUP_ARCHIVE_SSL"),
			Destination: &x.useSSL,
		},
		&cli.DurationFlag{
			Name:        "archive-presign-ttl",
			Usage:       "Validity period of generated report links",
			Category:    "Archive",
			Value:       archive.DefaultPresignTTL,
			Sources:     cli.EnvVars("STANDUP_ARCHIVE_PRESIGN_TTL"),
			Destination: &x.presignTTL,
		},
	}
}

func (x Archive) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("endpoint", x.endpoint),
		slog.String("bucket", x.bucket),
		slog.Int("access-key.len", len(x.accessKey)),
		slog.Int("secret-key.len", len(x.secretKey)),
		slog.Bool("ssl", x.useSSL),
		slog.Duration("presign-ttl", x.presignTTL),
	)
}

// IsConfigured reports whether an archive endpoint was given
func (x *Archive) IsConfigured() bool {
	return x.endpoint != ""
}

// Configure builds the archive client, or a disabled archive when no
// endpoint is configured. When the client is built, the bucket is probed so
// misconfiguration surfaces at startup rather than on the first close.
func (x *Archive) Configure(ctx context.Context) (interfaces.Archive, error) {
	if !x.IsConfigured() {
		logging.Default().Info("Archive not configured, meeting reports will not be uploaded")
		return archive.Unavailable{}, nil
	}

	client, err := archive.New(x.endpoint, x.bucket, x.accessKey, x.secretKey, x.useSSL,
		archive.WithPresignTTL(x.presignTTL),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize archive client")
	}

	if err := client.TestConnection(ctx); err != nil {
		return nil, goerr.Wrap(err, "archive connection check failed",
			goerr.V("endpoint", x.endpoint), goerr.V("bucket", x.bucket))
	}

	logging.Default().Info("Archive enabled", "config", x)
	return client, nil
}
