// Package lift implements the per-lift physical and door state machine.
// The machine is pure tick logic: no timers, no channels, no clock. One
// Step call advances exactly one tick.
package lift

import "liftsim/src/types"

// Timing holds the tick counts for movement and the door cycle.
type Timing struct {
	TravelTicksPerFloor   int
	DoorTransitionTicks   int
	DoorDwellTicks        int
	DoorReopenWindowTicks int
}

// Lift owns one car's floor and status. Status is the single source of
// truth; direction and door state are derived via Derive.
type Lift struct {
	ID       int
	Floor    int
	MinFloor int
	MaxFloor int
	Status   types.LiftStatus

	timing   Timing
	progress int // ticks spent in the current phase
}

// StepResult reports what happened during one tick.
type StepResult struct {
	Applied     bool // the action changed the machine's course this tick
	Arrived     bool // a floor transit completed this tick
	DoorsOpened bool // doors reached DOORS_OPEN this tick
	DoorsClosed bool // the close cycle completed this tick
}

func New(id, floor, minFloor, maxFloor int, timing Timing) *Lift {
	return &Lift{
		ID:       id,
		Floor:    floor,
		MinFloor: minFloor,
		MaxFloor: maxFloor,
		Status:   types.Idle,
		timing:   timing,
	}
}

// Derive maps a status to its derived (direction, doorsOpen) pair. The
// mapping is fixed: any door phase counts as not safely closed.
func Derive(s types.LiftStatus) (types.Direction, bool) {
	switch s {
	case types.MovingUp:
		return types.DirUp, false
	case types.MovingDown:
		return types.DirDown, false
	case types.DoorsOpening, types.DoorsOpen, types.DoorsClosing:
		return types.DirNone, true
	default: // Idle, OutOfService
		return types.DirNone, false
	}
}

func (l *Lift) Direction() types.Direction {
	dir, _ := Derive(l.Status)
	return dir
}

func (l *Lift) DoorsOpen() bool {
	_, open := Derive(l.Status)
	return open
}

// Step applies one dispatch action and advances one tick. It is a total
// function: an action that is invalid in the current status is ignored and
// the machine advances on its own.
func (l *Lift) Step(action types.Action) StepResult {
	var res StepResult

	switch l.Status {
	case types.OutOfService:
		return res

	case types.Idle:
		switch action {
		case types.MoveUp:
			if l.Floor < l.MaxFloor {
				l.Status = types.MovingUp
				l.progress = 0
				res.Applied = true
			}
		case types.MoveDown:
			if l.Floor > l.MinFloor {
				l.Status = types.MovingDown
				l.progress = 0
				res.Applied = true
			}
		case types.OpenDoors:
			l.Status = types.DoorsOpening
			l.progress = 0
			res.Applied = true
		}

	case types.DoorsOpen:
		if action == types.CloseDoors {
			// Cut the dwell short.
			l.Status = types.DoorsClosing
			l.progress = 0
			res.Applied = true
		}

	case types.DoorsClosing:
		// progress counts elapsed closing ticks; reopen is available while
		// fewer than DoorReopenWindowTicks of the close cycle have elapsed.
		if action == types.OpenDoors && l.progress < l.timing.DoorReopenWindowTicks {
			l.Status = types.DoorsOpening
			l.progress = 0
			res.Applied = true
		}
	}

	l.advance(&res)
	return res
}

// advance moves the current phase forward by one tick.
func (l *Lift) advance(res *StepResult) {
	switch l.Status {
	case types.MovingUp:
		l.progress++
		if l.progress >= l.timing.TravelTicksPerFloor {
			l.Floor++
			l.Status = types.Idle
			l.progress = 0
			res.Arrived = true
		}
	case types.MovingDown:
		l.progress++
		if l.progress >= l.timing.TravelTicksPerFloor {
			l.Floor--
			l.Status = types.Idle
			l.progress = 0
			res.Arrived = true
		}
	case types.DoorsOpening:
		l.progress++
		if l.progress >= l.timing.DoorTransitionTicks {
			l.Status = types.DoorsOpen
			l.progress = 0
			res.DoorsOpened = true
		}
	case types.DoorsOpen:
		l.progress++
		if l.progress >= l.timing.DoorDwellTicks {
			l.Status = types.DoorsClosing
			l.progress = 0
		}
	case types.DoorsClosing:
		l.progress++
		if l.progress >= l.timing.DoorTransitionTicks {
			l.Status = types.Idle
			l.progress = 0
			res.DoorsClosed = true
		}
	}
}

// SetOutOfService takes the lift out of normal dispatch. Only an explicit
// external directive enters or leaves this status.
func (l *Lift) SetOutOfService() {
	l.Status = types.OutOfService
	l.progress = 0
}

// ReturnToService puts an out-of-service lift back to idle with doors
// closed. No-op for a lift already in service.
func (l *Lift) ReturnToService() {
	if l.Status == types.OutOfService {
		l.Status = types.Idle
		l.progress = 0
	}
}

// Reset puts the lift back to its start-of-run state.
func (l *Lift) Reset(floor int) {
	l.Floor = floor
	l.Status = types.Idle
	l.progress = 0
}
