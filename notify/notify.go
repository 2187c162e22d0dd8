// Package notify defines the collaborators the client reports to: a toast-style
// notification surface and a navigator for redirects.
package notify

import (
	"sync"

	"github.com/rs/zerolog"
)

// Level is the presentation style of a notification
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Navigation targets used by the client
const (
	RouteLogin        = "/login"
	RouteAccessDenied = "/access-denied"
)

// Notifier receives user-facing messages. Presentation, timing and dismissal
// belong to the implementation.
type Notifier interface {
	Notify(message string, level Level)
}

// Navigator moves the user to another surface
type Navigator interface {
	Navigate(route string)
}

// LogNotifier writes notifications through zerolog
type LogNotifier struct {
	logger zerolog.Logger
}

var _ Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(message string, level Level) {
	var event *zerolog.Event
	switch level {
	case LevelError:
		event = n.logger.Error()
	case LevelWarning:
		event = n.logger.Warn()
	default:
		event = n.logger.Info()
	}
	event.Str("notification", string(level)).Msg(message)
}

// Notification is a recorded Notify call
type Notification struct {
	Message string
	Level   Level
}

// Recorder captures notifications and navigations. It is safe for concurrent use.
type Recorder struct {
	lock          sync.Mutex
	notifications []Notification
	routes        []string
}

var (
	_ Notifier  = (*Recorder)(nil)
	_ Navigator = (*Recorder)(nil)
)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(message string, level Level) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.notifications = append(r.notifications, Notification{Message: message, Level: level})
}

func (r *Recorder) Navigate(route string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.routes = append(r.routes, route)
}

func (r *Recorder) Notifications() []Notification {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Notification(nil), r.notifications...)
}

func (r *Recorder) Routes() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.routes...)
}

// Discard drops everything
type Discard struct{}

func (Discard) Notify(string, Level) {}
func (Discard) Navigate(string)      {}
