package core

import (
	"context"
	"io"
	"net/url"
)

type (
	// Upload describes a file streamed to the backend as multipart/form-data.
	Upload struct {
		Filename    string
		ContentType string
		Size        int64
		Body        io.Reader
	}

	// ProgressFunc receives fractional upload progress in [0, 1].
	ProgressFunc func(progress float64)

	// APIClient is any client that can reach the backend REST API.
	// Calls decode the response envelope's `data` payload into out
	// (when non-nil) and return a normalized error on failure; failures
	// are terminal; no call is ever retried by the client.
	APIClient interface {
		Get(ctx context.Context, path string, params url.Values, out interface{}) error
		Post(ctx context.Context, path string, body, out interface{}) error
		Put(ctx context.Context, path string, body, out interface{}) error
		Patch(ctx context.Context, path string, body, out interface{}) error
		Delete(ctx context.Context, path string, out interface{}) error
		UploadFile(ctx context.Context, path string, file Upload, extra map[string]string, out interface{}, onProgress ProgressFunc) error
		DownloadFile(ctx context.Context, path, dest string) error
	}
)
