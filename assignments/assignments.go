// Package assignments wraps the travaux endpoints: homework publication,
// student submissions and their grading.
package assignments

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/jrsteele09/schoolgest-client/api"
	"github.com/pkg/errors"
)

type Assignment struct {
	ID              int64   `json:"id,omitempty"`
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	Deadline        string  `json:"deadline,omitempty"`
	MaxNote         float64 `json:"maxNote,omitempty"`
	AttachedFileURL string  `json:"attachedFileUrl,omitempty"`
	SolutionFileURL string  `json:"solutionFileUrl,omitempty"`
	Published       bool    `json:"published"`
	CreatedAt       string  `json:"createdAt,omitempty"`
	SubjectID       int64   `json:"subjectId,omitempty"`
	SubjectName     string  `json:"subjectName,omitempty"`
	TeacherID       int64   `json:"teacherId,omitempty"`
	TeacherName     string  `json:"teacherName,omitempty"`
	ClassID         int64   `json:"classeId,omitempty"`
	ClassName       string  `json:"classeName,omitempty"`
	SubmissionCount int     `json:"submissionCount,omitempty"`
}

type Submission struct {
	ID               int64    `json:"id"`
	AssignmentID     int64    `json:"assignmentId"`
	AssignmentTitle  string   `json:"assignmentTitle,omitempty"`
	StudentID        int64    `json:"studentId"`
	StudentName      string   `json:"studentName,omitempty"`
	SubmissionDate   string   `json:"submissionDate,omitempty"`
	SubmittedFileURL string   `json:"submittedFileUrl,omitempty"`
	SubmissionText   string   `json:"submissionText,omitempty"`
	Late             bool     `json:"late"`
	Grade            *float64 `json:"grade,omitempty"`
	Feedback         string   `json:"feedback,omitempty"`
}

// Attachment is a file sent along with an assignment, a solution or a submission
type Attachment struct {
	Name        string
	ContentType string
	Content     io.Reader
}

func (a *Attachment) files() []api.File {
	if a == nil {
		return nil
	}
	return []api.File{{Field: "file", Name: a.Name, ContentType: a.ContentType, Content: a.Content}}
}

type Client struct {
	api *api.Client
}

func NewClient(c *api.Client) *Client {
	return &Client{api: c}
}

// Create publishes an assignment. The assignment travels as a JSON form field
// next to the optional attachment.
func (c *Client) Create(ctx context.Context, a Assignment, attachment *Attachment) (*Assignment, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, errors.Wrap(err, "[assignments Create] encoding assignment")
	}
	var out Assignment
	fields := map[string]string{"assignment": string(payload)}
	if err := c.api.Upload(ctx, api.RouteAssignments, nil, fields, attachment.files(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Submissions(ctx context.Context, assignmentID int64) ([]Submission, error) {
	var out []Submission
	err := c.api.Get(ctx, api.RouteAssignmentSubmissions(assignmentID), nil, &out)
	return out, err
}

func (c *Client) GradeSubmission(ctx context.Context, submissionID int64, grade float64, feedback string) (*Submission, error) {
	body := struct {
		Grade    float64 `json:"grade"`
		Feedback string  `json:"feedback"`
	}{grade, feedback}
	var out Submission
	if err := c.api.Patch(ctx, api.RouteSubmissionGrade(submissionID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AttachSolution uploads the correction once the deadline has passed
func (c *Client) AttachSolution(ctx context.Context, assignmentID int64, solution Attachment) (*Assignment, error) {
	var out Assignment
	err := c.api.DoMultipart(ctx, http.MethodPatch, api.RouteAssignmentSolution(assignmentID), nil, nil, solution.files(), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Submit hands in a student's work as text, a file or both
func (c *Client) Submit(ctx context.Context, assignmentID, studentID int64, text string, work *Attachment) (*Submission, error) {
	fields := map[string]string{"studentId": strconv.FormatInt(studentID, 10)}
	if text != "" {
		fields["text"] = text
	}
	var out Submission
	if err := c.api.Upload(ctx, api.RouteAssignmentSubmit(assignmentID), nil, fields, work.files(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForStudent(ctx context.Context, studentID int64) ([]Assignment, error) {
	var out []Assignment
	err := c.api.Get(ctx, api.RouteStudentAssignments(studentID), nil, &out)
	return out, err
}
