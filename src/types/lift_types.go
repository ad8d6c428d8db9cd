package types

import "fmt"

// LiftStatus is the single source of truth for a lift's physical state.
// Direction and door state are derived from it, never stored.
type LiftStatus int

const (
	Idle LiftStatus = iota
	MovingUp
	MovingDown
	DoorsOpening
	DoorsOpen
	DoorsClosing
	OutOfService
)

func (s LiftStatus) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case MovingUp:
		return "MOVING_UP"
	case MovingDown:
		return "MOVING_DOWN"
	case DoorsOpening:
		return "DOORS_OPENING"
	case DoorsOpen:
		return "DOORS_OPEN"
	case DoorsClosing:
		return "DOORS_CLOSING"
	case OutOfService:
		return "OUT_OF_SERVICE"
	default:
		return fmt.Sprintf("LiftStatus(%d)", int(s))
	}
}

type Direction int

const (
	DirUp   Direction = 1
	DirDown Direction = -1
	DirNone Direction = 0
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "UP"
	case DirDown:
		return "DOWN"
	default:
		return "NONE"
	}
}

// ParseDirection maps the canonical text-format name to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "UP":
		return DirUp, true
	case "DOWN":
		return DirDown, true
	default:
		return DirNone, false
	}
}

// Action is what a dispatch strategy asks a lift to do on one tick.
type Action int

const (
	StayIdle Action = iota
	MoveUp
	MoveDown
	OpenDoors
	CloseDoors
)

func (a Action) String() string {
	switch a {
	case StayIdle:
		return "STAY_IDLE"
	case MoveUp:
		return "MOVE_UP"
	case MoveDown:
		return "MOVE_DOWN"
	case OpenDoors:
		return "OPEN_DOORS"
	case CloseDoors:
		return "CLOSE_DOORS"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}
