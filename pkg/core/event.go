package core

import "fmt"

// EventKind identifies a structural event.
type EventKind int

const (
	// EventTreeBuildingFinished is sent once the whole tree has been built.
	// Containers forward it to their marginal controls and then to every child.
	EventTreeBuildingFinished EventKind = iota
	EventSetFocus
	EventKillFocus
	EventValueChanged
)

func (k EventKind) String() string {
	switch k {
	case EventTreeBuildingFinished:
		return "tree_building_finished"
	case EventSetFocus:
		return "set_focus"
	case EventKillFocus:
		return "kill_focus"
	case EventValueChanged:
		return "value_changed"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is dispatched through DoEvent. Events without a Sender are passed
// to the base behavior only.
type Event struct {
	Kind   EventKind
	Sender Widget
}
