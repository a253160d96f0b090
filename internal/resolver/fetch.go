package resolver

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const (
	fetchTimeout = 30 * time.Second

	// maxDocumentSize bounds how much of a response we read. Task
	// documents are small; anything bigger is not one.
	maxDocumentSize = 1 << 20
)

// ErrNotFound reports that the remote source has no document at the
// requested URL.
var ErrNotFound = stderrors.New("task document not found")

// Fetcher retrieves the raw bytes of a remote task document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ForURL picks a fetcher for a task source URL by scheme.
func ForURL(rawURL string) (Fetcher, error) {
	switch {
	case strings.HasPrefix(rawURL, "s3://"):
		return &S3Fetcher{}, nil
	case strings.HasPrefix(rawURL, "http://"), strings.HasPrefix(rawURL, "https://"):
		return &HTTPFetcher{}, nil
	default:
		return nil, fmt.Errorf("unsupported task source URL %q (want http, https, or s3)", rawURL)
	}
}

// HTTPFetcher fetches task documents over HTTP(S).
type HTTPFetcher struct {
	// Client overrides the default client, for tests.
	Client *http.Client
}

// Fetch retrieves the document at url. A 404 maps to ErrNotFound so the
// resolver can report the missing task rather than a transport error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "outfitter-cli")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

// S3Fetcher fetches task documents from s3://bucket/prefix URLs using
// the ambient AWS credentials.
type S3Fetcher struct {
	// API overrides the S3 client, for tests.
	API s3iface.S3API
}

// Fetch retrieves the object named by an s3:// URL. A missing key maps
// to ErrNotFound.
func (f *S3Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	bucket, key, err := splitS3URL(rawURL)
	if err != nil {
		return nil, err
	}

	api := f.API
	if api == nil {
		sess, err := session.NewSessionWithOptions(session.Options{
			SharedConfigState: session.SharedConfigEnable,
		})
		if err != nil {
			return nil, fmt.Errorf("creating AWS session: %w", err)
		}
		api = s3.New(sess)
	}

	out, err := api.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if stderrors.As(err, &aerr) {
			switch aerr.Code() {
			case s3.ErrCodeNoSuchKey, "NotFound":
				return nil, ErrNotFound
			}
		}
		return nil, fmt.Errorf("fetching s3 object %s/%s: %w", bucket, key, err)
	}
	defer func() { _ = out.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(out.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("reading s3 object body: %w", err)
	}
	return body, nil
}

func splitS3URL(rawURL string) (bucket, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 URL %q: %w", rawURL, err)
	}
	if u.Host == "" || strings.TrimPrefix(u.Path, "/") == "" {
		return "", "", fmt.Errorf("invalid s3 URL %q: want s3://bucket/key", rawURL)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}
