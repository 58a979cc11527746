// Package apps manages the registered-application records served alongside
// auth: a flat list of name/path entries other services discover at runtime.
package apps

// App is a registered application entry.
type App struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

type CreateRequest struct {
	Name string `json:"name"`
	Path string `json:"path"`
}
