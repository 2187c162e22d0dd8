// Package logbook wraps the cahier-texte endpoints: the per-class record of
// what each session covered and the homework it set.
package logbook

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/schoolgest-client/api"
	"github.com/pkg/errors"
)

// DateErr is returned when a date lookup has no date
var DateErr = errors.New("[logbook ByClassOn] date is required")

// Entry is one session as the teacher writes it
type Entry struct {
	Date         string `json:"date"`
	StartTime    string `json:"heureDebut"`
	EndTime      string `json:"heureFin"`
	LogbookID    int64  `json:"cahierDeTexteId,omitempty"`
	SubjectID    int64  `json:"matiereId"`
	TeacherID    int64  `json:"enseignantId"`
	Objectives   string `json:"objectifs,omitempty"`
	Content      string `json:"contenuCours,omitempty"`
	Homework     string `json:"devoirs,omitempty"`
	HomeworkDue  string `json:"dateLimiteDevoir,omitempty"`
	FileURL      string `json:"fichierCloudUrl,omitempty"`
	Observations string `json:"observations,omitempty"`
	PlanningID   int64  `json:"planningId,omitempty"`
	AssignmentID int64  `json:"assignmentId,omitempty"`
}

// Session is an entry as the backend returns it
type Session struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	StartTime    string `json:"heureDebut"`
	EndTime      string `json:"heureFin"`
	SubjectID    int64  `json:"matiereId"`
	SubjectName  string `json:"matiereNom,omitempty"`
	SubjectCode  string `json:"matiereCode,omitempty"`
	TeacherID    int64  `json:"enseignantId"`
	TeacherName  string `json:"enseignantNomComplet,omitempty"`
	Objectives   string `json:"objectifs,omitempty"`
	Content      string `json:"contenuCours,omitempty"`
	Homework     string `json:"devoirs,omitempty"`
	HomeworkDue  string `json:"dateLimiteDevoir,omitempty"`
	FileURL      string `json:"fichierCloudUrl,omitempty"`
	Observations string `json:"observations,omitempty"`
	PlanningID   int64  `json:"planningId,omitempty"`
	AssignmentID int64  `json:"assignmentId,omitempty"`
}

type Client struct {
	api *api.Client
}

func NewClient(c *api.Client) *Client {
	return &Client{api: c}
}

func (c *Client) ByClass(ctx context.Context, classID int64) ([]Session, error) {
	var out []Session
	err := c.api.Get(ctx, api.RouteClassLogbook(classID), nil, &out)
	return out, err
}

func (c *Client) ByClassOn(ctx context.Context, classID int64, date string) ([]Session, error) {
	if date == "" {
		return nil, DateErr
	}
	var out []Session
	err := c.api.Get(ctx, api.RouteClassLogbookOn(classID, date), nil, &out)
	return out, err
}

func (c *Client) ByTeacher(ctx context.Context, teacherID int64) ([]Session, error) {
	var out []Session
	err := c.api.Get(ctx, api.RouteTeacherLogbook(teacherID), nil, &out)
	return out, err
}

func (c *Client) Record(ctx context.Context, e Entry) (*Session, error) {
	var out Session
	if err := c.api.Post(ctx, api.RouteLogbookSessions, e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update rewrites a session. Only the teacher who recorded it may do so, the
// backend checks teacherID against the entry's author.
func (c *Client) Update(ctx context.Context, sessionID, teacherID int64, e Entry) (*Session, error) {
	q := url.Values{"teacherId": {strconv.FormatInt(teacherID, 10)}}
	var out Session
	if err := c.api.Do(ctx, http.MethodPut, api.RouteLogbookSession(sessionID), q, e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Archive closes a class logbook at the end of the year
func (c *Client) Archive(ctx context.Context, logbookID int64) error {
	return c.api.Put(ctx, api.RouteLogbookArchive(logbookID), struct{}{}, nil)
}
