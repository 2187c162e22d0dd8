package users

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/jrsteele09/schoolgest-client/api"
	apperrors "github.com/jrsteele09/schoolgest-client/internal/errors"
)

// Filter narrows a user search. Zero fields are not sent.
type Filter struct {
	Query  string
	Role   Role
	Active *bool
}

func (f Filter) values() url.Values {
	q := url.Values{}
	if f.Query != "" {
		q.Set("query", f.Query)
	}
	if f.Role != "" {
		q.Set("role", string(f.Role))
	}
	if f.Active != nil {
		q.Set("active", strconv.FormatBool(*f.Active))
	}
	return q
}

// Client wraps the users and user administration endpoints
type Client struct {
	api *api.Client
}

func NewClient(c *api.Client) *Client {
	return &Client{api: c}
}

func (c *Client) Search(ctx context.Context, filter Filter) ([]User, error) {
	var out []User
	err := c.api.Get(ctx, api.RouteUsers, filter.values(), &out)
	return out, err
}

func (c *Client) Get(ctx context.Context, id int64) (*User, error) {
	var out User
	if err := c.api.Get(ctx, api.RouteUser(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create registers a user on behalf of an administrator
func (c *Client) Create(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	var out User
	if err := c.api.Post(ctx, api.RouteUsers, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id int64, update ProfileUpdate) (*User, error) {
	if err := Validate(update); err != nil {
		return nil, err
	}
	var out User
	if err := c.api.Put(ctx, api.RouteUser(id), update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, api.RouteUser(id), nil)
}

func (c *Client) UpdateStatus(ctx context.Context, id int64, active bool) (*User, error) {
	var out User
	if err := c.api.Patch(ctx, api.RouteUserStatus(id), map[string]bool{"active": active}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRole(ctx context.Context, id int64, role Role) (*User, error) {
	role = NormalizeRole(role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role: valeur non autorisée", apperrors.ErrValidation)
	}
	var out User
	if err := c.api.Patch(ctx, api.RouteUserRole(id), map[string]Role{"role": role}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type batchRequest struct {
	IDs    []int64 `json:"ids"`
	Active *bool   `json:"active,omitempty"`
}

func (c *Client) BatchStatus(ctx context.Context, ids []int64, active bool) error {
	return c.api.Post(ctx, api.RouteUsersBatchStatus, batchRequest{IDs: ids, Active: &active}, nil)
}

func (c *Client) BatchDelete(ctx context.Context, ids []int64) error {
	return c.api.Post(ctx, api.RouteUsersBatchDelete, batchRequest{IDs: ids}, nil)
}

func (c *Client) Teachers(ctx context.Context) ([]Teacher, error) {
	var out []Teacher
	err := c.api.Get(ctx, api.RouteUsersTeachers, nil, &out)
	return out, err
}

// ExportCSV downloads every user as a CSV file
func (c *Client) ExportCSV(ctx context.Context) (*api.Blob, error) {
	return c.api.Download(ctx, api.RouteAdminExportUsers, nil)
}

// Import uploads a CSV of users and returns the created accounts
func (c *Client) Import(ctx context.Context, filename string, content io.Reader) ([]User, error) {
	var out []User
	err := c.api.Upload(ctx, api.RouteAdminImportUsers, nil, nil, []api.File{{
		Field:       "file",
		Name:        filename,
		ContentType: "text/csv",
		Content:     content,
	}}, &out)
	return out, err
}
