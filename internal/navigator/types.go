package navigator

import (
	"context"
	"fmt"
)

// Direction is the way a navigation step moves through the filtered list.
type Direction string

const (
	// Next moves to the following declared active workspace.
	Next Direction = "next"

	// Prev moves to the preceding declared active workspace.
	Prev Direction = "prev"
)

// ParseDirection parses the command-line direction argument.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Next:
		return Next, nil
	case Prev:
		return Prev, nil
	default:
		return "", fmt.Errorf("%w: %q (want next or prev)", ErrInvalidDirection, s)
	}
}

// Workspace is one live workspace as reported by the compositor.
type Workspace struct {
	// ID is the canonical workspace identifier.
	ID string

	// Monitor is the name of the monitor the workspace is assigned to.
	Monitor string

	// Windows is the number of windows on the workspace.
	Windows int
}

// StateReader is the read side of the compositor. Each call queries live
// state; nothing is cached between calls.
type StateReader interface {
	// FocusedMonitor returns the name of the monitor holding input focus.
	FocusedMonitor(ctx context.Context) (string, error)

	// CurrentWorkspace returns the canonical identifier of the focused workspace.
	CurrentWorkspace(ctx context.Context) (string, error)

	// Workspaces returns every known workspace.
	Workspaces(ctx context.Context) ([]Workspace, error)
}

// Dispatcher is the write side of the compositor.
type Dispatcher interface {
	// FocusWorkspace switches focus to the workspace with the given identifier.
	FocusWorkspace(ctx context.Context, id string) error
}

// NoOpReason explains why a run finished without dispatching.
type NoOpReason string

const (
	// ReasonNone means a directive was dispatched.
	ReasonNone NoOpReason = ""

	// ReasonNoActiveWorkspaces means the filtered list was empty.
	ReasonNoActiveWorkspaces NoOpReason = "no-active-workspaces"

	// ReasonBoundaryReached means the step would have left the list.
	ReasonBoundaryReached NoOpReason = "boundary-reached"
)

// Outcome records what a single run observed and decided.
type Outcome struct {
	Direction      Direction
	Order          []string
	FocusedMonitor string
	Current        string
	Filtered       []string
	Index          int
	Located        bool
	Target         string
	Dispatched     bool
	Reason         NoOpReason
}
