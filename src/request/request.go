// Package request tracks passenger calls from creation to a terminal
// outcome. The engine is the only caller of Transition.
package request

import (
	"fmt"

	"liftsim/src/types"
)

// Request is the unified entity for hall calls and car calls.
type Request struct {
	ID               int64
	Type             types.RequestType
	OriginFloor      int
	DestinationFloor int             // car calls only
	Direction        types.Direction // hall calls only
	State            types.RequestState
	Alias            string // scenario alias, empty for direct API calls
	CreatedTick      int
	CompletedTick    int // tick of the terminal transition, -1 until then
	AssignedLift     int // lift id, -1 until assigned
}

// InvalidTransitionError reports a request-state change outside the
// allowed table. The engine treats it as an internal bug.
type InvalidTransitionError struct {
	ID   int64
	From types.RequestState
	To   types.RequestState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("request %d: invalid transition %s -> %s", e.ID, e.From, e.To)
}

// allowedNext is the complete transition table. Terminal states have no
// entries; self-transitions are forbidden.
var allowedNext = map[types.RequestState][]types.RequestState{
	types.Created:  {types.Queued, types.Cancelled},
	types.Queued:   {types.Assigned, types.Cancelled},
	types.Assigned: {types.Serving, types.Queued, types.Cancelled},
	types.Serving:  {types.Completed, types.Cancelled},
}

// Transition moves the request to next, or fails with an
// InvalidTransitionError if next is not in the allowed set.
func (r *Request) Transition(next types.RequestState) error {
	for _, s := range allowedNext[r.State] {
		if s == next {
			r.State = next
			return nil
		}
	}
	return &InvalidTransitionError{ID: r.ID, From: r.State, To: next}
}

// TargetFloor is the floor the serving lift must reach for this request:
// the origin for hall calls, the destination for car calls.
func (r *Request) TargetFloor() int {
	if r.Type == types.CarCall {
		return r.DestinationFloor
	}
	return r.OriginFloor
}
