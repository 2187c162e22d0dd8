// Package schedule wraps the emploidutemps endpoints: time slots, course
// plannings and their cancellation or postponement.
package schedule

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jrsteele09/schoolgest-client/api"
	"github.com/pkg/errors"
)

// RangeErr is returned when a schedule query has no date range
var RangeErr = errors.New("[schedule] from and to dates are required")

type CourseType string

const (
	CourseLecture  CourseType = "CM"
	CourseTutorial CourseType = "TD"
	CoursePractice CourseType = "TP"
)

// TimeSlot is a bell-schedule period. Times are "HH:MM[:SS]".
type TimeSlot struct {
	ID        int64  `json:"id,omitempty"`
	Label     string `json:"label"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Position  int    `json:"position,omitempty"`
	Active    bool   `json:"active"`
	Pause     bool   `json:"pause"`
}

type Planning struct {
	ID                 int64      `json:"id,omitempty"`
	SubjectID          int64      `json:"subjectId,omitempty"`
	SubjectName        string     `json:"subjectName,omitempty"`
	TeacherID          int64      `json:"teacherId,omitempty"`
	TeacherName        string     `json:"teacherName,omitempty"`
	ClassID            int64      `json:"classeId,omitempty"`
	ClassName          string     `json:"classeName,omitempty"`
	RoomID             int64      `json:"roomId,omitempty"`
	RoomName           string     `json:"roomName,omitempty"`
	Date               string     `json:"date"`
	TimeSlotID         int64      `json:"timeSlotId,omitempty"`
	TimeSlotLabel      string     `json:"timeSlotLabel,omitempty"`
	CourseType         CourseType `json:"courseType,omitempty"`
	Cancelled          bool       `json:"cancelled"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
	Rescheduled        bool       `json:"rescheduled"`
	OriginalPlanningID int64      `json:"originalPlanningId,omitempty"`
	Passed             bool       `json:"passed,omitempty"`
}

type Client struct {
	api *api.Client
}

func NewClient(c *api.Client) *Client {
	return &Client{api: c}
}

func (c *Client) TimeSlots(ctx context.Context) ([]TimeSlot, error) {
	var out []TimeSlot
	err := c.api.Get(ctx, api.RouteTimeSlots, nil, &out)
	return out, err
}

func (c *Client) CreateTimeSlot(ctx context.Context, slot TimeSlot) (*TimeSlot, error) {
	var out TimeSlot
	if err := c.api.Post(ctx, api.RouteTimeSlots, slot, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTimeSlot(ctx context.Context, id int64, slot TimeSlot) (*TimeSlot, error) {
	var out TimeSlot
	if err := c.api.Put(ctx, api.RouteTimeSlot(id), slot, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTimeSlot(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, api.RouteTimeSlot(id), nil)
}

// Plan schedules a course
func (c *Client) Plan(ctx context.Context, p Planning) (*Planning, error) {
	var out Planning
	if err := c.api.Post(ctx, api.RoutePlannings, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePlanning(ctx context.Context, id int64, p Planning) (*Planning, error) {
	var out Planning
	if err := c.api.Put(ctx, api.RoutePlanning(id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePlanning(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, api.RoutePlanning(id), nil)
}

// ByClass lists a class's courses between from and to (ISO dates, inclusive)
func (c *Client) ByClass(ctx context.Context, classID int64, from, to string) ([]Planning, error) {
	return c.between(ctx, api.RouteClassSchedule(classID), from, to)
}

// ByTeacher lists a teacher's courses between from and to (ISO dates, inclusive)
func (c *Client) ByTeacher(ctx context.Context, teacherID int64, from, to string) ([]Planning, error) {
	return c.between(ctx, api.RouteTeacherSchedule(teacherID), from, to)
}

func (c *Client) between(ctx context.Context, path, from, to string) ([]Planning, error) {
	if from == "" || to == "" {
		return nil, RangeErr
	}
	var out []Planning
	err := c.api.Get(ctx, path, url.Values{"debut": {from}, "fin": {to}}, &out)
	return out, err
}

// Cancel marks a course as cancelled with a reason shown to students
func (c *Client) Cancel(ctx context.Context, id int64, reason string) (*Planning, error) {
	var out Planning
	body := map[string]string{"motif": reason}
	if err := c.api.Do(ctx, http.MethodPatch, api.RoutePlanningCancel(id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Postpone moves a course to another date and time slot. The backend answers
// with the new planning.
func (c *Client) Postpone(ctx context.Context, id int64, date string, timeSlotID int64) (*Planning, error) {
	var out Planning
	body := struct {
		Date       string `json:"date"`
		TimeSlotID int64  `json:"timeSlotId"`
	}{date, timeSlotID}
	if err := c.api.Post(ctx, api.RoutePlanningPostpone(id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
