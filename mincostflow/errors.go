package mincostflow

import "fmt"

// ErrNodeOutOfRange is returned when an edge endpoint does not name an
// existing node.
var ErrNodeOutOfRange = fmt.Errorf("mincostflow: %w", errNodeOutOfRange)
var errNodeOutOfRange = fmt.Errorf("node index out of range")

// ErrLowerExceedsUpper is returned when an edge's lower bound exceeds its
// upper bound.
var ErrLowerExceedsUpper = fmt.Errorf("mincostflow: %w", errLowerExceedsUpper)
var errLowerExceedsUpper = fmt.Errorf("lower bound exceeds upper bound")

// ErrEdgeNotFound is returned by GetEdge for an unknown edge id.
var ErrEdgeNotFound = fmt.Errorf("mincostflow: %w", errEdgeNotFound)
var errEdgeNotFound = fmt.Errorf("edge id not found")
