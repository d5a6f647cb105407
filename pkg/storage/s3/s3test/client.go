// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package s3test provides an in-memory fake of the S3 client surface for
// tests that exercise object-storage-backed stores without a network.
package s3test

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Client is an in-memory stand-in for the S3 API with configurable error
// injection and a small default page size so pagination paths run in
// every listing test. It honors the ListObjectsV2 Prefix parameter the
// way S3 does.
type Client struct {
	mu       sync.Mutex
	objects  map[string]string
	PageSize int

	GetErr    error
	PutErr    error
	DeleteErr error
	HeadErr   error
	ListErr   error
}

// NewClient returns an empty fake with a page size of 2.
func NewClient() *Client {
	return &Client{
		objects:  make(map[string]string),
		PageSize: 2,
	}
}

// Object returns the stored value for key and whether it exists.
func (c *Client) Object(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.objects[key]
	return v, ok
}

// SetObject stores a value directly, bypassing the API surface.
func (c *Client) SetObject(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects[key] = value
}

// Keys returns all stored keys, sorted.
func (c *Client) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.objects))
	for k := range c.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *Client) GetObject(_ context.Context, params *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	if c.GetErr != nil {
		return nil, c.GetErr
	}
	value, ok := c.Object(aws.ToString(params.Key))
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &awss3.GetObjectOutput{
		Body: io.NopCloser(strings.NewReader(value)),
	}, nil
}

func (c *Client) PutObject(_ context.Context, params *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	if c.PutErr != nil {
		return nil, c.PutErr
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	c.SetObject(aws.ToString(params.Key), string(data))
	return &awss3.PutObjectOutput{}, nil
}

func (c *Client) DeleteObject(_ context.Context, params *awss3.DeleteObjectInput, _ ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error) {
	if c.DeleteErr != nil {
		return nil, c.DeleteErr
	}
	// S3 semantics: deleting an absent key succeeds.
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.objects, aws.ToString(params.Key))
	return &awss3.DeleteObjectOutput{}, nil
}

func (c *Client) HeadObject(_ context.Context, params *awss3.HeadObjectInput, _ ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error) {
	if c.HeadErr != nil {
		return nil, c.HeadErr
	}
	if _, ok := c.Object(aws.ToString(params.Key)); !ok {
		return nil, &types.NotFound{}
	}
	return &awss3.HeadObjectOutput{}, nil
}

func (c *Client) ListObjectsV2(_ context.Context, params *awss3.ListObjectsV2Input, _ ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error) {
	if c.ListErr != nil {
		return nil, c.ListErr
	}

	prefix := aws.ToString(params.Prefix)
	var keys []string
	for _, k := range c.Keys() {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}

	start := 0
	if token := aws.ToString(params.ContinuationToken); token != "" {
		start, _ = strconv.Atoi(token)
	}
	end := start + c.PageSize
	if end > len(keys) {
		end = len(keys)
	}

	out := &awss3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(strconv.Itoa(end))
	}
	return out, nil
}
