// Package gcscheck verifies that a Google Cloud service-account credentials
// file grants access to Cloud Storage, by listing the project's buckets.
package gcscheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/ferrolab/mcp-mockserver/internal/version"
)

// maxBuckets bounds the listing; the check only needs proof of access.
const maxBuckets = 10

// Result reports what the verification saw.
type Result struct {
	ProjectID string
	Buckets   []string
	Truncated bool
}

// credentialsFile is the subset of the service-account JSON we read.
type credentialsFile struct {
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	Type        string `json:"type"`
}

// ProjectID extracts the project id from a credentials file.
func ProjectID(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read credentials file: %w", err)
	}
	var creds credentialsFile
	if err := json.Unmarshal(raw, &creds); err != nil {
		return "", fmt.Errorf("parse credentials file: %w", err)
	}
	if creds.ProjectID == "" {
		return "", errors.New("credentials file has no project_id")
	}
	return creds.ProjectID, nil
}

// Verify lists buckets with the given credentials file. Any API failure is
// returned as-is; the caller decides fatality.
func Verify(ctx context.Context, credsPath string) (Result, error) {
	projectID, err := ProjectID(credsPath)
	if err != nil {
		return Result{}, err
	}

	client, err := storage.NewClient(ctx,
		option.WithCredentialsFile(credsPath),
		option.WithUserAgent(version.UserAgent("credcheck")),
	)
	if err != nil {
		return Result{}, fmt.Errorf("create storage client: %w", err)
	}
	defer func() { _ = client.Close() }()

	res := Result{ProjectID: projectID}
	it := client.Buckets(ctx, projectID)
	for len(res.Buckets) < maxBuckets {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return res, nil
		}
		if err != nil {
			return Result{}, fmt.Errorf("list buckets: %w", err)
		}
		res.Buckets = append(res.Buckets, attrs.Name)
	}

	if _, err := it.Next(); err == nil {
		res.Truncated = true
	}
	return res, nil
}
