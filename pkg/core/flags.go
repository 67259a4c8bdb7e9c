package core

import (
	"fmt"
	"strings"
)

// Flags is the bitset of layout flags carried by every widget.
type Flags uint32

const (
	// FlagFloating excludes a widget from flow layout; it keeps the geometry
	// its owner assigned.
	FlagFloating Flags = 1 << iota
	// FlagWidthFixed stops layout engines from overwriting the width.
	FlagWidthFixed
	// FlagHeightFixed stops layout engines from overwriting the height.
	FlagHeightFixed
	// FlagMarginal marks an edge control (for example a scrollbar) that lives
	// in one of its container's marginal slots instead of the child list.
	FlagMarginal
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagFloating, "floating"},
	{FlagWidthFixed, "width-fixed"},
	{FlagHeightFixed, "height-fixed"},
	{FlagMarginal, "marginal"},
}

// String returns the flag names joined by "|".
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseFlag returns the flag with the given name.
func ParseFlag(name string) (Flags, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, fn := range flagNames {
		if fn.name == name {
			return fn.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown flag %q", name)
}

// Side names one of the four marginal slots of a container.
type Side int

const (
	SideLeft Side = iota
	SideTop
	SideRight
	SideBottom
	sideCount
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// ParseSide returns the side with the given name.
func ParseSide(name string) (Side, error) {
	for s := SideLeft; s < sideCount; s++ {
		if s.String() == strings.ToLower(strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return SideLeft, fmt.Errorf("unknown side %q", name)
}
