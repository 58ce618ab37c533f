// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

// Package s3blob exposes objects stored in Amazon S3 as [sniff.Blob] values,
// so their format can be detected with ranged GET requests instead of
// downloading them.
package s3blob

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrNotExist is returned by [Open] if the object does not exist.
var ErrNotExist = errors.New("object does not exist")

// API is the subset of the S3 client used by this package.
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Object is a read-only view on an S3 object. It implements [io.ReaderAt] with
// ranged GET requests. The context given to [Open] is used for all requests,
// because ReadAt cannot take one.
type Object struct {
	ctx     context.Context
	client  API
	bucket  string
	key     string
	version *string
	etag    *string
	size    int64
}

// Open looks up the object and returns a handle to it. Subsequent reads are
// pinned to the version and ETag seen by Open, so a concurrent overwrite
// surfaces as a read error instead of mixing two objects.
func Open(ctx context.Context, client API, bucket, key string) (*Object, error) {
	resp, err := client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, mapS3Error("head", bucket, key, err)
	}
	return &Object{
		ctx:     ctx,
		client:  client,
		bucket:  bucket,
		key:     key,
		version: resp.VersionId,
		etag:    resp.ETag,
		size:    aws.ToInt64(resp.ContentLength),
	}, nil
}

// Size returns the size of the object in bytes.
func (o *Object) Size() int64 {
	return o.size
}

// Key returns the key of the object.
func (o *Object) Key() string {
	return o.key
}

// ReadAt reads len(p) bytes starting at off with a single ranged GET request.
// It returns io.EOF if fewer bytes are available.
func (o *Object) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset: %d", off)
	}
	if len(p) == 0 {
		return 0, nil
	}
	if off >= o.size {
		return 0, io.EOF
	}

	want := int64(len(p))
	if off+want > o.size {
		want = o.size - off
	}

	resp, err := o.client.GetObject(o.ctx, &s3.GetObjectInput{
		Bucket:    aws.String(o.bucket),
		Key:       aws.String(o.key),
		Range:     aws.String(fmt.Sprintf("bytes=%d-%d", off, off+want-1)),
		VersionId: o.version,
		IfMatch:   o.etag,
	})
	if err != nil {
		return 0, mapS3Error("get", o.bucket, o.key, err)
	}
	defer resp.Body.Close()

	n, err := io.ReadFull(resp.Body, p[:want])
	if err != nil {
		return n, fmt.Errorf("cannot read object %s/%s: %w", o.bucket, o.key, err)
	}
	if int64(n) < int64(len(p)) {
		return n, io.EOF
	}
	return n, nil
}

// ClientOptions configures the client returned by [NewClient].
type ClientOptions struct {
	// Region is the AWS region, empty to use the default chain.
	Region string

	// Endpoint overrides the S3 endpoint, e.g. for S3 compatible stores.
	Endpoint string

	// UsePathStyle forces path style addressing.
	UsePathStyle bool
}

// NewClient creates an S3 client from the default AWS configuration chain.
func NewClient(ctx context.Context, opts ClientOptions) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("cannot load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	}), nil
}

// mapS3Error maps missing objects to [ErrNotExist] and adds the operation and
// object to all errors.
func mapS3Error(op, bucket, key string, err error) error {
	var nsk *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &nsk) || errors.As(err, &notFound) {
		return fmt.Errorf("%s %s/%s: %w", op, bucket, key, ErrNotExist)
	}
	return fmt.Errorf("%s %s/%s: %w", op, bucket, key, err)
}
