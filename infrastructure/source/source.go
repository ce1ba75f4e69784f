// Package source opens almanac inputs from a local path, standard input or
// an S3 object.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/helixml/almanac/internal/config"
)

// StdinLocation reads the input from standard input.
const StdinLocation = "-"

const s3Scheme = "s3://"

// ErrInvalidLocation is returned for locations that cannot be opened.
var ErrInvalidLocation = errors.New("source: invalid location")

// Kind is the kind of a Location.
type Kind int

// Kind values.
const (
	KindFile Kind = iota
	KindStdin
	KindS3
)

// Location is a parsed input location.
type Location struct {
	Kind   Kind
	Path   string
	Bucket string
	Key    string
}

// String returns the location in the form it was given.
func (l Location) String() string {
	switch l.Kind {
	case KindStdin:
		return StdinLocation
	case KindS3:
		return s3Scheme + l.Bucket + "/" + l.Key
	default:
		return l.Path
	}
}

// ParseLocation parses "-", "s3://bucket/key" or a file path.
func ParseLocation(location string) (Location, error) {
	switch {
	case location == "":
		return Location{}, fmt.Errorf("%w: empty", ErrInvalidLocation)
	case location == StdinLocation:
		return Location{Kind: KindStdin}, nil
	case strings.HasPrefix(location, s3Scheme):
		bucket, key, ok := strings.Cut(strings.TrimPrefix(location, s3Scheme), "/")
		if !ok || bucket == "" || key == "" {
			return Location{}, fmt.Errorf("%w: %q needs s3://bucket/key", ErrInvalidLocation, location)
		}
		return Location{Kind: KindS3, Bucket: bucket, Key: key}, nil
	default:
		return Location{Kind: KindFile, Path: location}, nil
	}
}

// Opener opens input locations. The S3 client is created on first use.
type Opener struct {
	s3cfg      config.S3Config
	stdin      io.Reader
	httpClient *http.Client
	creds      aws.CredentialsProvider

	mu     sync.Mutex
	client *s3.Client
}

// Option configures an Opener.
type Option func(*Opener)

// WithStdin replaces standard input.
func WithStdin(r io.Reader) Option {
	return func(o *Opener) { o.stdin = r }
}

// WithHTTPClient sets the HTTP client used for S3 requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Opener) { o.httpClient = c }
}

// WithStaticCredentials uses fixed S3 credentials instead of the default
// credential chain.
func WithStaticCredentials(accessKeyID, secretAccessKey, sessionToken string) Option {
	return func(o *Opener) {
		o.creds = credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, sessionToken)
	}
}

// NewOpener creates an Opener.
func NewOpener(cfg config.S3Config, opts ...Option) *Opener {
	o := &Opener{s3cfg: cfg, stdin: os.Stdin}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Open opens location for reading. The caller closes the result.
func (o *Opener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}

	switch loc.Kind {
	case KindStdin:
		return io.NopCloser(o.stdin), nil
	case KindS3:
		return o.openS3(ctx, loc)
	default:
		f, err := os.Open(loc.Path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		return f, nil
	}
}

func (o *Opener) openS3(ctx context.Context, loc Location) (io.ReadCloser, error) {
	client, err := o.s3Client(ctx)
	if err != nil {
		return nil, err
	}
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", loc, err)
	}
	return out.Body, nil
}

func (o *Opener) s3Client(ctx context.Context) (*s3.Client, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.client != nil {
		return o.client, nil
	}

	region := o.s3cfg.Region()
	if region == "" {
		region = config.DefaultS3Region
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if o.creds != nil {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(o.creds))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	o.client = s3.NewFromConfig(awsCfg, func(opts *s3.Options) {
		if o.s3cfg.PathStyle() {
			opts.UsePathStyle = true
		}
		if endpoint := o.s3cfg.Endpoint(); endpoint != "" {
			opts.BaseEndpoint = aws.String(endpoint)
		}
		if o.httpClient != nil {
			opts.HTTPClient = o.httpClient
		}
	})
	return o.client, nil
}
