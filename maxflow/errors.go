package maxflow

import "fmt"

// ErrNodeOutOfRange is returned when an edge endpoint does not name an
// existing node.
var ErrNodeOutOfRange = fmt.Errorf("maxflow: %w", errNodeOutOfRange)
var errNodeOutOfRange = fmt.Errorf("node index out of range")

// ErrEdgeNotFound is returned by GetEdge for an unknown edge id.
var ErrEdgeNotFound = fmt.Errorf("maxflow: %w", errEdgeNotFound)
var errEdgeNotFound = fmt.Errorf("edge id not found")
