// Package dispatch decides, each tick, what action a lift should take
// given its state and the outstanding requests.
package dispatch

import (
	"errors"
	"fmt"

	"liftsim/src/lift"
	"liftsim/src/request"
	"liftsim/src/types"
)

var (
	ErrInvalidArgument = errors.New("invalid strategy argument")
	ErrUnsupported     = errors.New("unsupported strategy")
)

// Decision is a strategy's output for one lift on one tick. RequestID is
// the request driving the action, 0 when none does.
type Decision struct {
	Action    types.Action
	RequestID int64
}

type Strategy interface {
	Name() types.StrategyName
	Decide(l *lift.Lift, pending []*request.Request, tick int) Decision
}

// New is the single authoring point for strategy construction.
func New(name types.StrategyName, homeFloor, idleTimeoutTicks int, parkingMode types.ParkingMode) (Strategy, error) {
	switch name {
	case "":
		return nil, fmt.Errorf("%w: strategy name is required", ErrInvalidArgument)
	case types.NearestRequestRouting:
		if _, ok := types.ParseParkingMode(string(parkingMode)); !ok {
			return nil, fmt.Errorf("%w: unknown parking mode %q", ErrInvalidArgument, string(parkingMode))
		}
		return &NearestRequest{
			homeFloor:        homeFloor,
			idleTimeoutTicks: idleTimeoutTicks,
			parkingMode:      parkingMode,
			idleTicks:        make(map[int]int),
			parking:          make(map[int]bool),
		}, nil
	case types.DirectionalScan:
		return nil, fmt.Errorf("%w: %s is declared but not implemented", ErrUnsupported, name)
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidArgument, string(name))
	}
}
