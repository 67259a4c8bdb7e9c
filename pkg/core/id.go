package core

import "fmt"

// ID is a generation-checked handle to a widget slot in a Tree.
// The zero value, NoID, refers to nothing.
type ID uint64

// NoID is the null handle.
const NoID ID = 0

func newID(index, gen uint32) ID {
	return ID(uint64(gen)<<32 | uint64(index+1))
}

func (id ID) index() uint32 {
	return uint32(id) - 1
}

func (id ID) generation() uint32 {
	return uint32(id >> 32)
}

func (id ID) String() string {
	if id == NoID {
		return "none"
	}
	return fmt.Sprintf("%d.%d", id.index(), id.generation())
}
