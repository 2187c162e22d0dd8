// Package attendance wraps the presences endpoints: marking, absence
// justification and per-student statistics.
package attendance

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/schoolgest-client/api"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusLate    Status = "RETARD"
	StatusExcused Status = "EXCUSE"
)

type JustificationStatus string

const (
	JustificationNone     JustificationStatus = "NONE"
	JustificationPending  JustificationStatus = "PENDING"
	JustificationAccepted JustificationStatus = "ACCEPTED"
	JustificationRejected JustificationStatus = "REJECTED"
)

type Attendance struct {
	ID                   int64               `json:"id"`
	StudentID            int64               `json:"studentId"`
	StudentName          string              `json:"studentName,omitempty"`
	PlanningID           int64               `json:"planningId"`
	SubjectName          string              `json:"subjectName,omitempty"`
	Date                 string              `json:"date"`
	Status               Status              `json:"status"`
	Notes                string              `json:"notes,omitempty"`
	JustificationReason  string              `json:"justificationReason,omitempty"`
	JustificationFileURL string              `json:"justificationFileUrl,omitempty"`
	JustificationStatus  JustificationStatus `json:"justificationStatus"`
	ValidatedByName      string              `json:"validatedByName,omitempty"`
	ValidatedAt          string              `json:"validatedAt,omitempty"`
}

type Mark struct {
	StudentID  int64  `json:"studentId"`
	PlanningID int64  `json:"planningId"`
	Status     Status `json:"status"`
	Notes      string `json:"notes,omitempty"`
}

type batchRequest struct {
	PlanningID  int64  `json:"planningId"`
	Attendances []Mark `json:"attendances"`
}

// Stats is returned as-is by the backend, its shape is not fixed
type Stats map[string]any

// Proof is an optional document attached to a justification
type Proof struct {
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

func (c *Client) Mark(ctx context.Context, m Mark) (*Attendance, error) {
	var out Attendance
	if err := c.api.Post(ctx, api.RouteAttendanceMark, m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkBatch records a whole session at once. Marks keep their own planning
// ID, missing ones inherit planningID.
func (c *Client) MarkBatch(ctx context.Context, planningID int64, marks []Mark) ([]Attendance, error) {
	req := batchRequest{PlanningID: planningID, Attendances: make([]Mark, len(marks))}
	for i, m := range marks {
		if m.PlanningID == 0 {
			m.PlanningID = planningID
		}
		req.Attendances[i] = m
	}
	var out []Attendance
	err := c.api.Post(ctx, api.RouteAttendanceMarkBatch, req, &out)
	return out, err
}

func (c *Client) Justify(ctx context.Context, id int64, reason string, proof *Proof) (*Attendance, error) {
	var files []api.File
	if proof != nil {
		files = append(files, api.File{Field: "file", Name: proof.Name, ContentType: proof.ContentType, Content: proof.Content})
	}
	var out Attendance
	if err := c.api.Upload(ctx, api.RouteAttendanceJustify(id), nil, map[string]string{"reason": reason}, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ValidateJustification(ctx context.Context, id int64, accepted bool) (*Attendance, error) {
	var out Attendance
	q := url.Values{"accepted": {strconv.FormatBool(accepted)}}
	if err := c.api.Do(ctx, http.MethodPatch, api.RouteAttendanceValidate(id), q, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) StudentStats(ctx context.Context, studentID int64) (Stats, error) {
	var out Stats
	err := c.api.Get(ctx, api.RouteAttendanceStudentStats(studentID), nil, &out)
	return out, err
}

func (c *Client) StudentHistory(ctx context.Context, studentID int64) ([]Attendance, error) {
	var out []Attendance
	err := c.api.Get(ctx, api.RouteAttendanceStudentHistory(studentID), nil, &out)
	return out, err
}
