package osmprocessing

import (
	"fmt"

	"github.com/paulmach/osm"
)

// FormatError is returned when the input is not an OSM document or one of
// its required attributes cannot be read.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("not a valid osm document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("not a valid osm document: %s", e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ReferenceError is returned when a highway way points at a node the
// document does not define.
type ReferenceError struct {
	WayID  osm.WayID
	NodeID osm.NodeID
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("way %d references missing node %d", e.WayID, e.NodeID)
}
