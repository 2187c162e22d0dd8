// Package bulletins wraps report card generation, ranking and PDF export.
package bulletins

import (
	"context"

	"github.com/jrsteele09/schoolgest-client/api"
)

type SubjectResult struct {
	ID                  int64   `json:"id"`
	SubjectID           int64   `json:"subjectId"`
	SubjectName         string  `json:"subjectName,omitempty"`
	CCAverage           float64 `json:"ccAverage"`
	ExamGrade           float64 `json:"examGrade"`
	FinalAverage        float64 `json:"finalAverage"`
	TeacherAppreciation string  `json:"teacherAppreciation,omitempty"`
}

type ModuleResult struct {
	ID             int64           `json:"id"`
	ModuleID       int64           `json:"moduleId"`
	ModuleName     string          `json:"moduleName,omitempty"`
	Average        float64         `json:"average"`
	TotalCredits   float64         `json:"totalCredits"`
	SubjectResults []SubjectResult `json:"subjectResults,omitempty"`
}

type ReportCard struct {
	ID            int64          `json:"id"`
	StudentID     int64          `json:"studentId"`
	StudentName   string         `json:"studentName,omitempty"`
	SemesterID    int64          `json:"semesterId"`
	SemesterName  string         `json:"semesterName,omitempty"`
	AcademicYear  string         `json:"academicYear,omitempty"`
	Average       float64        `json:"average"`
	Rank          int            `json:"rank"`
	Appreciation  string         `json:"appreciation,omitempty"`
	Validated     bool           `json:"validated"`
	CreatedAt     string         `json:"createdAt,omitempty"`
	ModuleResults []ModuleResult `json:"moduleResults,omitempty"`
}

type generateRequest struct {
	StudentID    int64  `json:"studentId,omitempty"`
	SemesterID   int64  `json:"semesterId"`
	AcademicYear string `json:"academicYear"`
}

type Client struct {
	api *api.Client
}

func NewClient(c *api.Client) *Client {
	return &Client{api: c}
}

func (c *Client) Generate(ctx context.Context, studentID, semesterID int64, academicYear string) (*ReportCard, error) {
	var out ReportCard
	req := generateRequest{StudentID: studentID, SemesterID: semesterID, AcademicYear: academicYear}
	if err := c.api.Post(ctx, api.RouteBulletinsGenerate, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CalculateRanks ranks every report card of a semester
func (c *Client) CalculateRanks(ctx context.Context, semesterID int64, academicYear string) error {
	return c.api.Post(ctx, api.RouteBulletinsCalculateRanks, generateRequest{SemesterID: semesterID, AcademicYear: academicYear}, nil)
}

func (c *Client) ByStudent(ctx context.Context, studentID int64) ([]ReportCard, error) {
	var out []ReportCard
	err := c.api.Get(ctx, api.RouteBulletinsByStudent(studentID), nil, &out)
	return out, err
}

func (c *Client) DownloadPDF(ctx context.Context, reportCardID int64) (*api.Blob, error) {
	return c.api.Download(ctx, api.RouteBulletinPDF(reportCardID), nil)
}
