// Package api is the JSON client for the SchoolGest backend. Authentication is
// the job of the http.Client's transport; this package only encodes requests
// and turns non-2xx responses into *apierror.HTTPError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/jrsteele09/schoolgest-client/apierror"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MaxErrorBody caps how much of an error response is kept
const MaxErrorBody = 1 << 20

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     zerolog.Logger
}

type Option func(*Client)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, httpClient *http.Client, options ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("[api New] invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("[api New] base URL %q must be absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &Client{
		baseURL:    u,
		httpClient: httpClient,
		logger:     log.Logger,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// URL resolves an endpoint path against the base URL
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do sends body as JSON (when non-nil) and decodes the response into out
// (when non-nil).
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path, query), reader)
	if err != nil {
		return fmt.Errorf("failed to create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decode(req, resp, out)
}

// File is one part of a multipart upload
type File struct {
	Field       string
	Name        string
	ContentType string
	Content     io.Reader
}

// Upload posts a multipart form made of fields and files
func (c *Client) Upload(ctx context.Context, path string, query url.Values, fields map[string]string, files []File, out any) error {
	return c.DoMultipart(ctx, http.MethodPost, path, query, fields, files, out)
}

// DoMultipart sends a multipart form with the given method
func (c *Client) DoMultipart(ctx context.Context, method, path string, query url.Values, fields map[string]string, files []File, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	for _, f := range files {
		if err := writeFile(mw, f); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path, query), &buf)
	if err != nil {
		return fmt.Errorf("failed to create %s %s upload request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decode(req, resp, out)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFile(mw *multipart.Writer, f File) error {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(f.Field), quoteEscaper.Replace(f.Name)))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create part for %s: %w", f.Name, err)
	}
	if _, err := io.Copy(part, f.Content); err != nil {
		return fmt.Errorf("failed to copy %s: %w", f.Name, err)
	}
	return nil
}

// Blob is a downloaded binary payload
type Blob struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Download fetches a binary resource such as a CSV export or a PDF
func (c *Client) Download(ctx context.Context, path string, query url.Values) (*Blob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path, query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	blob := &Blob{Data: data, ContentType: resp.Header.Get("Content-Type")}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		blob.Filename = params["filename"]
	}
	return blob, nil
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBody))
	httpErr := &apierror.HTTPError{
		StatusCode:  resp.StatusCode,
		Method:      req.Method,
		URL:         req.URL.String(),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}
	c.logger.Debug().Str("method", req.Method).Str("url", httpErr.URL).Int("status", resp.StatusCode).Msg("request failed")
	return nil, httpErr
}

func decode(req *http.Request, resp *http.Response, out any) error {
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if !json.Valid(data) {
		// A 2xx page that is not JSON means a proxy or a misrouted URL answered
		return &apierror.HTTPError{
			StatusCode:  resp.StatusCode,
			Method:      req.Method,
			URL:         req.URL.String(),
			ContentType: resp.Header.Get("Content-Type"),
			Body:        truncate(data),
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func truncate(data []byte) []byte {
	if len(data) > MaxErrorBody {
		return data[:MaxErrorBody]
	}
	return data
}
