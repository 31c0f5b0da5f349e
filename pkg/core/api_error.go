package core

import "fmt"

// APIError is a structured error returned by a SystemLink service. For
// bulk operations the top-level error summarizes the failure and
// InnerErrors carries the per-resource detail.
type APIError struct {
	// StatusCode is the HTTP status of the response that carried the
	// error. Zero for errors nested inside InnerErrors.
	StatusCode int `json:"-"`

	Name         string     `json:"name,omitempty"`
	Code         int        `json:"code,omitempty"`
	Message      string     `json:"message,omitempty"`
	Args         []string   `json:"args,omitempty"`
	ResourceType string     `json:"resourceType,omitempty"`
	ResourceID   string     `json:"resourceId,omitempty"`
	InnerErrors  []APIError `json:"innerErrors,omitempty"`
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
	case e.Message != "":
		return e.Message
	case e.Name != "":
		return e.Name
	default:
		return fmt.Sprintf("server responded with %d", e.StatusCode)
	}
}

// errorResponse is the body shape that carries an APIError.
type errorResponse struct {
	Error *APIError `json:"error"`
}
