package topmart

import (
	"net/url"
	"strings"
)

// Endpoints holds the API paths used by the console, relative to the base URL.
// "{id}" is replaced with the escaped request id.
type Endpoints struct {
	Pending string `yaml:"pending"`
	Approve string `yaml:"approve"`
	Reject  string `yaml:"reject"`
	Login   string `yaml:"login"`
	Logout  string `yaml:"logout"`
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		Pending: "/pending-users",
		Approve: "/approval/{id}/approve",
		Reject:  "/deposit/{id}/reject",
		Login:   "/auth/login",
		Logout:  "/auth/logout",
	}
}

// WithDefaults fills any empty path from DefaultEndpoints
func (e Endpoints) WithDefaults() Endpoints {
	d := DefaultEndpoints()
	if e.Pending == "" {
		e.Pending = d.Pending
	}
	if e.Approve == "" {
		e.Approve = d.Approve
	}
	if e.Reject == "" {
		e.Reject = d.Reject
	}
	if e.Login == "" {
		e.Login = d.Login
	}
	if e.Logout == "" {
		e.Logout = d.Logout
	}
	return e
}

func withId(path, id string) string {
	return strings.ReplaceAll(path, "{id}", url.PathEscape(id))
}
