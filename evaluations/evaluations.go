// Package evaluations wraps the grading endpoints: exams, grade entry,
// publication, validation and averages.
package evaluations

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/schoolgest-client/api"
	"github.com/jrsteele09/schoolgest-client/users"
)

type Type string

const (
	TypeHomework      Type = "DEVOIR"
	TypeFinalExam     Type = "EXAMEN_FINAL"
	TypeMidterm       Type = "EXAMEN_PARTIEL"
	TypeContinuous    Type = "CONTROLE_CONTINU"
	TypeProject       Type = "PROJET"
	TypeParticipation Type = "PARTICIPATION"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusGrading   Status = "GRADING"
	StatusValidated Status = "VALIDATED"
	StatusArchived  Status = "ARCHIVED"
)

type Grade struct {
	ID             int64   `json:"id"`
	StudentID      int64   `json:"studentId,omitempty"`
	StudentName    string  `json:"studentName,omitempty"`
	SubjectID      int64   `json:"subjectId,omitempty"`
	SubjectName    string  `json:"subjectName,omitempty"`
	EvaluationType Type    `json:"evaluationType"`
	Score          float64 `json:"score"`
	MaxScore       float64 `json:"maxScore"`
	Weight         float64 `json:"weight"`
	WeightedScore  float64 `json:"weightedScore,omitempty"`
	Feedback       string  `json:"feedback,omitempty"`
	Status         Status  `json:"status,omitempty"`
	ReferenceID    int64   `json:"referenceId,omitempty"`
	CreatedAt      string  `json:"createdAt,omitempty"`
	PublishedAt    string  `json:"publishedAt,omitempty"`
}

// Entry is a grade as a teacher submits it
type Entry struct {
	StudentID      int64   `json:"studentId" validate:"required"`
	SubjectID      int64   `json:"subjectId" validate:"required"`
	EvaluationType Type    `json:"evaluationType" validate:"required,oneof=DEVOIR EXAMEN_FINAL EXAMEN_PARTIEL CONTROLE_CONTINU PROJET PARTICIPATION"`
	Score          float64 `json:"score" validate:"gte=0,ltefield=MaxScore"`
	MaxScore       float64 `json:"maxScore" validate:"gt=0"`
	Weight         float64 `json:"weight" validate:"gte=0"`
	Feedback       string  `json:"feedback,omitempty"`
	ReferenceID    int64   `json:"referenceId,omitempty"`
}

type Exam struct {
	ID              int64   `json:"id,omitempty"`
	Name            string  `json:"name"`
	SubjectID       int64   `json:"subjectId,omitempty"`
	SubjectName     string  `json:"subjectName,omitempty"`
	ExamDate        string  `json:"examDate"`
	ExamType        string  `json:"examType"`
	Coefficient     float64 `json:"coefficient"`
	Room            string  `json:"room,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Instructions    string  `json:"instructions,omitempty"`
}

// Stats is returned as-is by the backend, its shape is not fixed
type Stats map[string]any

type Client struct {
	api *api.Client
}

func NewClient(c *api.Client) *Client {
	return &Client{api: c}
}

func (c *Client) CreateExam(ctx context.Context, exam Exam) (*Exam, error) {
	var out Exam
	if err := c.api.Post(ctx, api.RouteExams, exam, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitGrade records one grade. Entries are checked before they are sent.
func (c *Client) SubmitGrade(ctx context.Context, entry Entry) (*Grade, error) {
	if err := users.Validate(entry); err != nil {
		return nil, err
	}
	var out Grade
	if err := c.api.Post(ctx, api.RouteGrades, entry, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitGrades records a batch. Nothing is sent when one entry is invalid.
func (c *Client) SubmitGrades(ctx context.Context, entries []Entry) ([]Grade, error) {
	for _, e := range entries {
		if err := users.Validate(e); err != nil {
			return nil, err
		}
	}
	var out []Grade
	err := c.api.Post(ctx, api.RouteGradesBatch, entries, &out)
	return out, err
}

// Publish makes a subject's grades of one type visible to students
func (c *Client) Publish(ctx context.Context, subjectID int64, t Type) error {
	q := url.Values{"subjectId": {strconv.FormatInt(subjectID, 10)}, "type": {string(t)}}
	return c.api.Do(ctx, http.MethodPatch, api.RouteGradesPublish, q, struct{}{}, nil)
}

// Validate locks a subject's grades for report cards
func (c *Client) Validate(ctx context.Context, subjectID int64) error {
	q := url.Values{"subjectId": {strconv.FormatInt(subjectID, 10)}}
	return c.api.Do(ctx, http.MethodPatch, api.RouteGradesValidate, q, struct{}{}, nil)
}

func (c *Client) StudentAverage(ctx context.Context, studentID, subjectID int64) (float64, error) {
	var out float64
	q := url.Values{"subjectId": {strconv.FormatInt(subjectID, 10)}}
	err := c.api.Get(ctx, api.RouteStudentAverage(studentID), q, &out)
	return out, err
}

func (c *Client) SubjectStats(ctx context.Context, subjectID int64) (Stats, error) {
	var out Stats
	err := c.api.Get(ctx, api.RouteSubjectGradeStats(subjectID), nil, &out)
	return out, err
}

func (c *Client) StudentGrades(ctx context.Context, studentID int64) ([]Grade, error) {
	var out []Grade
	err := c.api.Get(ctx, api.RouteStudentGrades(studentID), nil, &out)
	return out, err
}
