// Package admin wraps the administrator dashboard endpoints.
package admin

import (
	"context"

	"github.com/jrsteele09/schoolgest-client/api"
)

type DashboardStats struct {
	TotalStudents        int     `json:"totalStudents"`
	TotalTeachers        int     `json:"totalTeachers"`
	TotalClasses         int     `json:"totalClasses"`
	TotalSubjects        int     `json:"totalSubjects"`
	GlobalAttendanceRate float64 `json:"globalAttendanceRate"`
	ReportCardsGenerated int     `json:"reportCardsGenerated"`
	DatabaseStatus       string  `json:"databaseStatus,omitempty"`
	ServerTime           string  `json:"serverTime,omitempty"`
	Version              string  `json:"version,omitempty"`
	Mode                 string  `json:"mode,omitempty"`
}

// SystemStatus is passed through untyped
type SystemStatus map[string]any

type Client struct {
	api *api.Client
}

func NewClient(c *api.Client) *Client {
	return &Client{api: c}
}

func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := c.api.Get(ctx, api.RouteAdminDashboard, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SystemStatus(ctx context.Context) (SystemStatus, error) {
	var out SystemStatus
	err := c.api.Get(ctx, api.RouteAdminSystemStatus, nil, &out)
	return out, err
}
