package academic

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/schoolgest-client/api"
)

// Client wraps the structure/* and room endpoints
type Client struct {
	api *api.Client
}

func NewClient(c *api.Client) *Client {
	return &Client{api: c}
}

func list[T any](ctx context.Context, c *api.Client, path string) ([]T, error) {
	var out []T
	err := c.Get(ctx, path, nil, &out)
	return out, err
}

func one[T any](ctx context.Context, c *api.Client, method, path string, body any) (*T, error) {
	var out T
	if err := c.Do(ctx, method, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Establishments

func (c *Client) Establishments(ctx context.Context) ([]Establishment, error) {
	return list[Establishment](ctx, c.api, api.RouteEstablishments)
}

func (c *Client) Establishment(ctx context.Context, id int64) (*Establishment, error) {
	return one[Establishment](ctx, c.api, http.MethodGet, api.RouteEstablishment(id), nil)
}

func (c *Client) CreateEstablishment(ctx context.Context, e Establishment) (*Establishment, error) {
	return one[Establishment](ctx, c.api, http.MethodPost, api.RouteEstablishments, e)
}

func (c *Client) UpdateEstablishment(ctx context.Context, id int64, e Establishment) (*Establishment, error) {
	return one[Establishment](ctx, c.api, http.MethodPut, api.RouteEstablishment(id), e)
}

func (c *Client) DeleteEstablishment(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, api.RouteEstablishment(id), nil)
}

// Classes

func (c *Client) Classes(ctx context.Context) ([]Class, error) {
	return list[Class](ctx, c.api, api.RouteClasses)
}

func (c *Client) Class(ctx context.Context, id int64) (*Class, error) {
	return one[Class](ctx, c.api, http.MethodGet, api.RouteClass(id), nil)
}

func (c *Client) CreateClass(ctx context.Context, cl Class) (*Class, error) {
	return one[Class](ctx, c.api, http.MethodPost, api.RouteClasses, cl)
}

func (c *Client) UpdateClass(ctx context.Context, id int64, cl Class) (*Class, error) {
	return one[Class](ctx, c.api, http.MethodPut, api.RouteClass(id), cl)
}

func (c *Client) DeleteClass(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, api.RouteClass(id), nil)
}

func (c *Client) ClassStudents(ctx context.Context, classID int64) ([]Student, error) {
	return list[Student](ctx, c.api, api.RouteClassStudents(classID))
}

func enrollQuery(studentID, classID int64) url.Values {
	return url.Values{
		"studentId": {strconv.FormatInt(studentID, 10)},
		"classeId":  {strconv.FormatInt(classID, 10)},
	}
}

func (c *Client) Enroll(ctx context.Context, studentID, classID int64) error {
	return c.api.Do(ctx, http.MethodPost, api.RouteEnroll, enrollQuery(studentID, classID), nil, nil)
}

func (c *Client) Unenroll(ctx context.Context, studentID, classID int64) error {
	return c.api.Do(ctx, http.MethodDelete, api.RouteEnroll, enrollQuery(studentID, classID), nil, nil)
}

// Modules

func (c *Client) Modules(ctx context.Context) ([]Module, error) {
	return list[Module](ctx, c.api, api.RouteModules)
}

func (c *Client) ClassModules(ctx context.Context, classID int64) ([]Module, error) {
	return list[Module](ctx, c.api, api.RouteClassModules(classID))
}

func (c *Client) Module(ctx context.Context, id int64) (*Module, error) {
	return one[Module](ctx, c.api, http.MethodGet, api.RouteModule(id), nil)
}

func (c *Client) CreateModule(ctx context.Context, m Module) (*Module, error) {
	return one[Module](ctx, c.api, http.MethodPost, api.RouteModules, m)
}

func (c *Client) UpdateModule(ctx context.Context, id int64, m Module) (*Module, error) {
	return one[Module](ctx, c.api, http.MethodPut, api.RouteModule(id), m)
}

func (c *Client) DeleteModule(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, api.RouteModule(id), nil)
}

// Subjects

func (c *Client) Subjects(ctx context.Context) ([]Subject, error) {
	return list[Subject](ctx, c.api, api.RouteSubjects)
}

func (c *Client) ClassSubjects(ctx context.Context, classID int64) ([]Subject, error) {
	return list[Subject](ctx, c.api, api.RouteClassSubjects(classID))
}

func (c *Client) ModuleSubjects(ctx context.Context, moduleID int64) ([]Subject, error) {
	return list[Subject](ctx, c.api, api.RouteModuleSubjects(moduleID))
}

func (c *Client) Subject(ctx context.Context, id int64) (*Subject, error) {
	return one[Subject](ctx, c.api, http.MethodGet, api.RouteSubject(id), nil)
}

func (c *Client) CreateSubject(ctx context.Context, s Subject) (*Subject, error) {
	return one[Subject](ctx, c.api, http.MethodPost, api.RouteSubjects, s)
}

func (c *Client) UpdateSubject(ctx context.Context, id int64, s Subject) (*Subject, error) {
	return one[Subject](ctx, c.api, http.MethodPut, api.RouteSubject(id), s)
}

func (c *Client) DeleteSubject(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, api.RouteSubject(id), nil)
}

// AssignModule attaches a subject to a module
func (c *Client) AssignModule(ctx context.Context, subjectID, moduleID int64) (*Subject, error) {
	var out Subject
	q := url.Values{"moduleId": {strconv.FormatInt(moduleID, 10)}}
	if err := c.api.Do(ctx, http.MethodPut, api.RouteSubjectModule(subjectID), q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UnassignModule(ctx context.Context, subjectID int64) error {
	return c.api.Delete(ctx, api.RouteSubjectModule(subjectID), nil)
}

// Semesters

func (c *Client) Semesters(ctx context.Context) ([]Semester, error) {
	return list[Semester](ctx, c.api, api.RouteSemesters)
}

func (c *Client) Semester(ctx context.Context, id int64) (*Semester, error) {
	return one[Semester](ctx, c.api, http.MethodGet, api.RouteSemester(id), nil)
}

func (c *Client) CreateSemester(ctx context.Context, s Semester) (*Semester, error) {
	return one[Semester](ctx, c.api, http.MethodPost, api.RouteSemesters, s)
}

func (c *Client) UpdateSemester(ctx context.Context, id int64, s Semester) (*Semester, error) {
	return one[Semester](ctx, c.api, http.MethodPut, api.RouteSemester(id), s)
}

func (c *Client) DeleteSemester(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, api.RouteSemester(id), nil)
}

// Rooms

func (c *Client) Rooms(ctx context.Context) ([]Room, error) {
	return list[Room](ctx, c.api, api.RouteRooms)
}

func (c *Client) CreateRoom(ctx context.Context, r Room) (*Room, error) {
	return one[Room](ctx, c.api, http.MethodPost, api.RouteRooms, r)
}
