// Package storage uploads files to the backend's cloud storage.
package storage

import (
	"context"
	"io"
	"net/url"

	"github.com/jrsteele09/schoolgest-client/api"
	"github.com/pkg/errors"
)

// DefaultFolder is used when no destination folder is given
const DefaultFolder = "general"

var EmptyURLErr = errors.New("[storage Upload] backend returned no url")

type uploadResponse struct {
	URL string `json:"url"`
}

type Client struct {
	api *api.Client
}

func NewClient(c *api.Client) *Client {
	return &Client{api: c}
}

// Upload stores content under folder and returns its public URL
func (c *Client) Upload(ctx context.Context, folder, filename, contentType string, content io.Reader) (string, error) {
	if folder == "" {
		folder = DefaultFolder
	}
	var out uploadResponse
	err := c.api.Upload(ctx, api.RouteStorageUpload, url.Values{"dossier": {folder}}, nil, []api.File{{
		Field:       "file",
		Name:        filename,
		ContentType: contentType,
		Content:     content,
	}}, &out)
	if err != nil {
		return "", errors.Wrapf(err, "[storage Upload] %s", filename)
	}
	if out.URL == "" {
		return "", EmptyURLErr
	}
	return out.URL, nil
}
