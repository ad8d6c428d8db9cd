package dispatch

import (
	"liftsim/src/lift"
	"liftsim/src/request"
	"liftsim/src/types"
)

// NearestRequest serves the pending request with minimum floor distance
// from the lift's current position. Ties go to the lowest request id, so
// two runs over the same scenario always pick the same order.
type NearestRequest struct {
	homeFloor        int
	idleTimeoutTicks int
	parkingMode      types.ParkingMode

	idleTicks map[int]int  // consecutive idle ticks per lift id
	parking   map[int]bool // lift ids currently heading home
}

func (s *NearestRequest) Name() types.StrategyName {
	return types.NearestRequestRouting
}

func (s *NearestRequest) Decide(l *lift.Lift, pending []*request.Request, tick int) Decision {
	// An out-of-service lift takes no part in dispatch: no target, no
	// idle tracking, no parking run.
	if l.Status == types.OutOfService {
		s.idleTicks[l.ID] = 0
		s.parking[l.ID] = false
		return Decision{Action: types.StayIdle}
	}

	target := s.selectTarget(l, pending)
	if target == nil {
		return s.decideIdle(l)
	}

	// Any request resets idle tracking and aborts a parking run.
	s.idleTicks[l.ID] = 0
	s.parking[l.ID] = false

	floor := target.TargetFloor()
	switch {
	case floor == l.Floor:
		switch l.Status {
		case types.Idle:
			return Decision{Action: types.OpenDoors, RequestID: target.ID}
		case types.DoorsClosing:
			// Ask for a reopen; outside the window the machine ignores it.
			return Decision{Action: types.OpenDoors, RequestID: target.ID}
		default:
			return Decision{Action: types.StayIdle, RequestID: target.ID}
		}
	case floor > l.Floor:
		return Decision{Action: types.MoveUp, RequestID: target.ID}
	default:
		return Decision{Action: types.MoveDown, RequestID: target.ID}
	}
}

// selectTarget picks the nearest eligible request: anything QUEUED, or
// ASSIGNED/SERVING to this lift.
func (s *NearestRequest) selectTarget(l *lift.Lift, pending []*request.Request) *request.Request {
	var best *request.Request
	bestDist := 0
	for _, r := range pending {
		switch r.State {
		case types.Queued:
		case types.Assigned, types.Serving:
			if r.AssignedLift != l.ID {
				continue
			}
		default:
			continue
		}
		dist := abs(r.TargetFloor() - l.Floor)
		if best == nil || dist < bestDist || (dist == bestDist && r.ID < best.ID) {
			best = r
			bestDist = dist
		}
	}
	return best
}

// decideIdle applies the idle-parking policy when no request is pending.
// The idle counter advances only while the lift sits idle with doors
// closed; any other status resets it.
func (s *NearestRequest) decideIdle(l *lift.Lift) Decision {
	if l.Status != types.Idle {
		s.idleTicks[l.ID] = 0
		return Decision{Action: types.StayIdle}
	}

	if s.parking[l.ID] {
		return s.moveTowardHome(l)
	}

	s.idleTicks[l.ID]++
	if s.idleTicks[l.ID] < s.idleTimeoutTicks {
		return Decision{Action: types.StayIdle}
	}

	switch s.parkingMode {
	case types.ParkToHomeFloor:
		if l.Floor != s.homeFloor {
			s.parking[l.ID] = true
			return s.moveTowardHome(l)
		}
	}
	return Decision{Action: types.StayIdle}
}

func (s *NearestRequest) moveTowardHome(l *lift.Lift) Decision {
	switch {
	case l.Floor < s.homeFloor:
		return Decision{Action: types.MoveUp}
	case l.Floor > s.homeFloor:
		return Decision{Action: types.MoveDown}
	default:
		// Reached home: resume idle tracking from zero.
		s.parking[l.ID] = false
		s.idleTicks[l.ID] = 0
		return Decision{Action: types.StayIdle}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
