// Package resources wraps the ressources endpoints: course documents shared
// with a subject or a class.
package resources

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"strconv"

	"github.com/jrsteele09/schoolgest-client/api"
	"github.com/pkg/errors"
)

type Resource struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	FileURL     string `json:"fileUrl,omitempty"`
	Type        string `json:"type,omitempty"`
	SubjectID   int64  `json:"subjectId,omitempty"`
	SubjectName string `json:"subjectName,omitempty"`
	TeacherID   int64  `json:"teacherId,omitempty"`
	TeacherName string `json:"teacherName,omitempty"`
	ClassID     int64  `json:"classeId,omitempty"`
	ClassName   string `json:"classeName,omitempty"`
	Published   bool   `json:"published"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

type Document struct {
	Name        string
	ContentType string
	Content     io.Reader
}

type Client struct {
	api *api.Client
}

func NewClient(c *api.Client) *Client {
	return &Client{api: c}
}

func (c *Client) List(ctx context.Context) ([]Resource, error) {
	var out []Resource
	err := c.api.Get(ctx, api.RouteResources, nil, &out)
	return out, err
}

// Create shares a resource, with or without a document
func (c *Client) Create(ctx context.Context, r Resource, doc *Document) (*Resource, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "[resources Create] encoding resource")
	}
	var files []api.File
	if doc != nil {
		files = append(files, api.File{Field: "file", Name: doc.Name, ContentType: doc.ContentType, Content: doc.Content})
	}
	var out Resource
	if err := c.api.Upload(ctx, api.RouteResources, nil, map[string]string{"resource": string(payload)}, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) BySubject(ctx context.Context, subjectID int64) ([]Resource, error) {
	var out []Resource
	err := c.api.Get(ctx, api.RouteSubjectResources(subjectID), nil, &out)
	return out, err
}

// ByClass lists what a class can see. studentID narrows the list to one
// student's view when non-zero.
func (c *Client) ByClass(ctx context.Context, classID, studentID int64) ([]Resource, error) {
	var q url.Values
	if studentID != 0 {
		q = url.Values{"studentId": {strconv.FormatInt(studentID, 10)}}
	}
	var out []Resource
	err := c.api.Get(ctx, api.RouteClassResources(classID), q, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, api.RouteResource(id), nil)
}
