package archive

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/huddle-lab/standup/pkg/domain/interfaces"
	"github.com/huddle-lab/standup/pkg/domain/model"
	"github.com/huddle-lab/standup/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DefaultPresignTTL is how long a generated report URL stays valid
const DefaultPresignTTL = 7 * 24 * time.Hour

// Client archives meeting artifacts to an S3-compatible object store under
// meetings/<id>/meeting.json and meetings/<id>/index.html.
type Client struct {
	mc         *minio.Client
	bucket     string
	presignTTL time.Duration
}

var _ interfaces.Archive = &Client{}

// Option is a functional option for client configuration
type Option func(*Client)

// WithPresignTTL sets the validity period of presigned report URLs
func WithPresignTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.presignTTL = ttl
	}
}

// New creates an archive client for the given S3-compatible endpoint
func New(endpoint, bucket, accessKey, secretKey string, useSSL bool, opts ...Option) (*Client, error) {
	if endpoint == "" || bucket == "" || accessKey == "" || secretKey == "" {
		return nil, goerr.New("archive endpoint, bucket and credentials are all required")
	}

	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create object storage client", goerr.V("endpoint", endpoint))
	}

	c := &Client{
		mc:         mc,
		bucket:     bucket,
		presignTTL: DefaultPresignTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) IsAvailable() bool {
	return true
}

func jsonKey(id types.MeetingID) string {
	return fmt.Sprintf("meetings/%s/meeting.json", id)
}

func htmlKey(id types.MeetingID) string {
	return fmt.Sprintf("meetings/%s/index.html", id)
}

func (c *Client) put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := c.mc.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return goerr.Wrap(err, "failed to upload object",
			goerr.V("bucket", c.bucket), goerr.V("key", key))
	}
	return nil
}

// UploadMeetingJSON stores the serialized meeting document
func (c *Client) UploadMeetingJSON(ctx context.Context, id types.MeetingID, data []byte) error {
	if err := c.put(ctx, jsonKey(id), data, "application/json"); err != nil {
		return goerr.Wrap(err, "failed to upload meeting JSON", goerr.V(model.MeetingIDKey, id))
	}
	return nil
}

// UploadHTMLReport stores the rendered HTML report
func (c *Client) UploadHTMLReport(ctx context.Context, id types.MeetingID, html []byte) error {
	if err := c.put(ctx, htmlKey(id), html, "text/html"); err != nil {
		return goerr.Wrap(err, "failed to upload HTML report", goerr.V(model.MeetingIDKey, id))
	}
	return nil
}

// PresignReportURL generates a time-limited GET URL for the HTML report
func (c *Client) PresignReportURL(ctx context.Context, id types.MeetingID) (string, error) {
	presigned, err := c.mc.PresignedGetObject(ctx, c.bucket, htmlKey(id), c.presignTTL, url.Values{})
	if err != nil {
		return "", goerr.Wrap(err, "failed to presign report URL", goerr.V(model.MeetingIDKey, id))
	}
	return presigned.String(), nil
}

// TestConnection verifies the bucket is reachable with the configured credentials
func (c *Client) TestConnection(ctx context.Context) error {
	exists, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil {
		return goerr.Wrap(err, "failed to reach object storage", goerr.V("bucket", c.bucket))
	}
	if !exists {
		return goerr.New("archive bucket does not exist", goerr.V("bucket", c.bucket))
	}
	return nil
}
