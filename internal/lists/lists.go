// Package lists implements the CRUD operations for each entity list,
// gated by the access rules in internal/access. Every operation resolves
// its rule first and applies the resulting row filter to the query, so a
// caller can never see or touch rows the rule excludes.
package lists

import "errors"

var (
	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
	ErrNotSignedIn  = errors.New("you must be signed in to do that")
)
