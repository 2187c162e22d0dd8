package apierror

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// HTTPError is a non-2xx response from the backend
type HTTPError struct {
	StatusCode  int
	Method      string
	URL         string
	ContentType string
	Body        []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
}

type bodyKind int

const (
	bodyEmpty bodyKind = iota
	bodyJSON
	bodyText
	bodyMarkup
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// payload is the union of error bodies the backend produces
type payload struct {
	Message     string            `json:"message"`
	Error       string            `json:"error"`
	Errors      []json.RawMessage `json:"errors"`
	FieldErrors []fieldError      `json:"fieldErrors"`
}

// decodeBody sorts a response body into one of the shapes the classifier
// understands. A JSON string body is treated as text.
func (e *HTTPError) decodeBody() (bodyKind, payload, string) {
	trimmed := bytes.TrimSpace(e.Body)
	if len(trimmed) == 0 {
		return bodyEmpty, payload{}, ""
	}
	if looksLikeMarkup(string(trimmed)) || strings.HasPrefix(strings.ToLower(e.ContentType), "text/html") {
		return bodyMarkup, payload{}, ""
	}

	var p payload
	if trimmed[0] == '{' && json.Unmarshal(trimmed, &p) == nil {
		if p.Message == "" && len(p.Errors) == 0 && len(p.FieldErrors) == 0 {
			p.Message = p.Error
		}
		return bodyJSON, p, ""
	}

	var s string
	if trimmed[0] == '"' && json.Unmarshal(trimmed, &s) == nil {
		return bodyText, payload{}, strings.TrimSpace(s)
	}
	return bodyText, payload{}, string(trimmed)
}

func looksLikeMarkup(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "<!doctype") || strings.HasPrefix(s, "<html") ||
		(strings.HasPrefix(s, "<") && strings.Contains(s, "</"))
}

// errorsList renders the errors[] array: plain strings, {message} objects or
// {field, message} objects. Blank entries are dropped.
func (p payload) errorsList() []string {
	msgs := make([]string, 0, len(p.Errors))
	for _, raw := range p.Errors {
		if string(bytes.TrimSpace(raw)) == "null" {
			continue
		}
		var s string
		if json.Unmarshal(raw, &s) == nil {
			if s = strings.TrimSpace(s); s != "" {
				msgs = append(msgs, s)
			}
			continue
		}
		var fe fieldError
		if json.Unmarshal(raw, &fe) == nil && strings.TrimSpace(fe.Message) != "" {
			msgs = append(msgs, fe.render())
			continue
		}
		msgs = append(msgs, "Erreur de validation")
	}
	return msgs
}

func (p payload) fieldErrorsList() []string {
	msgs := make([]string, 0, len(p.FieldErrors))
	for _, fe := range p.FieldErrors {
		if strings.TrimSpace(fe.Field) == "" && strings.TrimSpace(fe.Message) == "" {
			continue
		}
		if strings.TrimSpace(fe.Message) == "" {
			fe.Message = "Erreur"
		}
		msgs = append(msgs, fe.render())
	}
	return msgs
}

func (fe fieldError) render() string {
	msg := strings.TrimSpace(fe.Message)
	if field := strings.TrimSpace(fe.Field); field != "" {
		return field + ": " + msg
	}
	return msg
}
