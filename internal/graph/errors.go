package graph

import "errors"

var (
	// ErrGraphIntegrity is returned by Build when there is nothing to build
	// from: no stems at all, or no stem for the requested base branch.
	ErrGraphIntegrity = errors.New("graph integrity")

	// ErrInvalidPagination is returned by Page for a bad page size, base
	// branch or cursor.
	ErrInvalidPagination = errors.New("invalid pagination")
)
