// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package s3 provides an object-storage-backed implementation of the
// storage.MapStore contract over an S3 bucket, one object per key. It
// satisfies the same four-operation contract and failure taxonomy as the
// other backends; callers consume it as an opaque MapStore[string,string].
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/chaptervault/chaptervault/pkg/result"
	"github.com/chaptervault/chaptervault/pkg/storage"
)

// Client is the subset of the S3 API the store uses. *awss3.Client
// satisfies it; tests substitute a fake.
type Client interface {
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *awss3.DeleteObjectInput, optFns ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error)
	HeadObject(ctx context.Context, params *awss3.HeadObjectInput, optFns ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *awss3.ListObjectsV2Input, optFns ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
}

// Store is an S3-backed implementation of storage.MapStore over string
// keys and string values, one object per key. A non-empty prefix scopes
// List to the objects under it; when several logical stores share one
// bucket, each must carry its own prefix or listings will leak foreign
// keys.
type Store struct {
	client Client
	bucket string
	prefix string
}

// New creates a Store from the given configuration, building an S3 client
// with the configured region, optional static credentials, and optional
// endpoint override (path-style addressing is enabled when an endpoint is
// set, for MinIO and LocalStack compatibility). prefix scopes listings;
// pass "" for a store that owns the whole bucket.
func New(ctx context.Context, cfg *storage.S3Config, prefix string) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("s3 storage: config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("s3 storage: %w", err)
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3 storage: failed to load AWS config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewWithClient(client, cfg.Bucket, prefix), nil
}

// NewWithClient creates a Store over an existing client. Used by tests and
// by callers that manage their own AWS configuration.
func NewWithClient(client Client, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

var _ storage.MapStore[string, string] = (*Store)(nil)

// List returns every object key under the store's prefix (the whole
// bucket when the prefix is empty), following continuation tokens across
// pages. Keys are returned in full, prefix included.
func (s *Store) List(ctx context.Context) result.Result[[]string] {
	var keys []string
	var continuationToken *string

	var prefix *string
	if s.prefix != "" {
		prefix = aws.String(s.prefix)
	}

	for {
		out, err := s.client.ListObjectsV2(ctx, &awss3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            prefix,
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return result.Fail[[]string](result.Internalf("s3 storage: failed to list bucket %q: %w", s.bucket, err))
		}
		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		continuationToken = out.NextContinuationToken
	}

	if keys == nil {
		keys = []string{}
	}
	return result.Succeed(keys)
}

// Read fetches the object for key. A missing object maps to not-found.
func (s *Store) Read(ctx context.Context, key string) result.Result[string] {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return result.Fail[string](result.NotFound())
		}
		return result.Fail[string](result.Internalf("s3 storage: failed to read key %q: %w", key, err))
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return result.Fail[string](result.Internalf("s3 storage: failed to read body of key %q: %w", key, err))
	}
	return result.Succeed(string(data))
}

// Write uploads the value as the object for key, overwriting any existing
// object.
func (s *Store) Write(ctx context.Context, key, value string) result.Result[result.Unit] {
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   strings.NewReader(value),
	})
	if err != nil {
		return result.Fail[result.Unit](result.Internalf("s3 storage: failed to write key %q: %w", key, err))
	}
	return result.OK()
}

// Destroy removes the object for key. S3 deletes are idempotent and would
// succeed on absent keys, so existence is checked first to honor the
// not-found contract.
func (s *Store) Destroy(ctx context.Context, key string) result.Result[result.Unit] {
	_, err := s.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return result.Fail[result.Unit](result.NotFound())
		}
		return result.Fail[result.Unit](result.Internalf("s3 storage: failed to stat key %q: %w", key, err))
	}

	_, err = s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return result.Fail[result.Unit](result.Internalf("s3 storage: failed to delete key %q: %w", key, err))
	}
	return result.OK()
}
