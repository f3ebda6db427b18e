package session

import "errors"

var (
	// ErrNotFound is returned by [Store.Get] when no value is stored under
	// the requested key.
	ErrNotFound = errors.New("session value not found")

	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a statement against the session
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")
)
