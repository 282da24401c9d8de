package dashboards

import (
	"strconv"
	"strings"
)

// CursorDirection indicates which way a pagination control points.
type CursorDirection string

const (
	CursorPrevious CursorDirection = "prev"
	CursorNext     CursorDirection = "next"
)

// NavigationTarget is a router destination: a path plus query values. The
// cursor key is either present or intentionally absent.
type NavigationTarget struct {
	Path  string
	Query map[string]string
}

// CursorOffset derives the zero-based offset from the second colon-delimited
// segment of an otherwise opaque cursor. Absent or unparseable segments
// count as offset 0.
func CursorOffset(cursor string) int {
	parts := strings.Split(cursor, ":")
	if len(parts) < 2 {
		return 0
	}
	offset, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return offset
}

// PaginateTarget builds the navigation target for a cursor change. Stepping
// back from the first page drops the cursor key entirely instead of
// forwarding a cursor that would address a negative offset; every other
// combination forwards the cursor verbatim.
func PaginateTarget(cursor, path string, query map[string]string, direction CursorDirection) NavigationTarget {
	next := make(map[string]string, len(query)+1)
	for k, v := range query {
		next[k] = v
	}
	delete(next, "cursor")
	if !(direction == CursorPrevious && CursorOffset(cursor) <= 0) {
		next["cursor"] = cursor
	}
	return NavigationTarget{Path: path, Query: next}
}
