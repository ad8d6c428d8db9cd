package dispatch

import (
	"errors"
	"testing"

	"liftsim/src/lift"
	"liftsim/src/request"
	"liftsim/src/types"
)

func testLift(floor int) *lift.Lift {
	timing := lift.Timing{
		TravelTicksPerFloor:   1,
		DoorTransitionTicks:   1,
		DoorDwellTicks:        2,
		DoorReopenWindowTicks: 1,
	}
	return lift.New(0, floor, 0, 9, timing)
}

func nearest(t *testing.T, mode types.ParkingMode, home, timeout int) Strategy {
	t.Helper()
	s, err := New(types.NearestRequestRouting, home, timeout, mode)
	if err != nil {
		t.Fatalf("construct strategy: %v", err)
	}
	return s
}

func queued(t *testing.T, l *request.Ledger, floor int, dir types.Direction) *request.Request {
	t.Helper()
	r := l.HallCall(floor, dir, "", 0)
	if err := r.Transition(types.Queued); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestSelectorRequiresName(t *testing.T) {
	_, err := New("", 0, 10, types.StayAtCurrentFloor)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSelectorRejectsUnknownName(t *testing.T) {
	_, err := New("ROUND_ROBIN", 0, 10, types.StayAtCurrentFloor)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSelectorRefusesDirectionalScan(t *testing.T) {
	_, err := New(types.DirectionalScan, 0, 10, types.StayAtCurrentFloor)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestNearestPicksClosestRequest(t *testing.T) {
	s := nearest(t, types.StayAtCurrentFloor, 0, 10)
	ledger := request.NewLedger()
	far := queued(t, ledger, 9, types.DirDown)
	near := queued(t, ledger, 4, types.DirUp)

	d := s.Decide(testLift(3), ledger.Pending(), 0)
	if d.RequestID != near.ID {
		t.Errorf("expected request %d, got %d", near.ID, d.RequestID)
	}
	if d.Action != types.MoveUp {
		t.Errorf("expected MOVE_UP toward floor 4, got %s", d.Action)
	}
	_ = far
}

func TestTieBreaksOnLowestID(t *testing.T) {
	s := nearest(t, types.StayAtCurrentFloor, 0, 10)
	ledger := request.NewLedger()
	// Both are two floors away from the lift at floor 5.
	first := queued(t, ledger, 3, types.DirUp)
	second := queued(t, ledger, 7, types.DirDown)

	for i := 0; i < 3; i++ {
		d := s.Decide(testLift(5), ledger.Pending(), i)
		if d.RequestID != first.ID {
			t.Fatalf("tick %d: expected lower id %d to win the tie, got %d", i, first.ID, d.RequestID)
		}
	}
	_ = second
}

func TestOpensDoorsAtTargetFloor(t *testing.T) {
	s := nearest(t, types.StayAtCurrentFloor, 0, 10)
	ledger := request.NewLedger()
	r := queued(t, ledger, 5, types.DirUp)

	d := s.Decide(testLift(5), ledger.Pending(), 0)
	if d.Action != types.OpenDoors || d.RequestID != r.ID {
		t.Errorf("expected OPEN_DOORS for request %d, got %s for %d", r.ID, d.Action, d.RequestID)
	}
}

func TestOutOfServiceLiftGetsNoTarget(t *testing.T) {
	s := nearest(t, types.StayAtCurrentFloor, 0, 10)
	ledger := request.NewLedger()
	queued(t, ledger, 5, types.DirUp)

	l := testLift(3)
	l.SetOutOfService()
	for tick := 0; tick < 3; tick++ {
		d := s.Decide(l, ledger.Pending(), tick)
		if d.Action != types.StayIdle || d.RequestID != 0 {
			t.Fatalf("tick %d: expected no decision for an out-of-service lift, got %s for %d",
				tick, d.Action, d.RequestID)
		}
	}
}

func TestStayAtCurrentFloorNeverMoves(t *testing.T) {
	s := nearest(t, types.StayAtCurrentFloor, 0, 3)
	l := testLift(6)
	for tick := 0; tick < 20; tick++ {
		d := s.Decide(l, nil, tick)
		if d.Action != types.StayIdle {
			t.Fatalf("tick %d: expected STAY_IDLE, got %s", tick, d.Action)
		}
		l.Step(d.Action)
	}
	if l.Floor != 6 {
		t.Errorf("lift moved to floor %d with no pending requests", l.Floor)
	}
}

func TestParkToHomeFloor(t *testing.T) {
	timeout := 3
	s := nearest(t, types.ParkToHomeFloor, 1, timeout)
	l := testLift(4)

	// Before the timeout the lift stays put.
	for tick := 0; tick < timeout-1; tick++ {
		d := s.Decide(l, nil, tick)
		if d.Action != types.StayIdle {
			t.Fatalf("tick %d: expected STAY_IDLE before timeout, got %s", tick, d.Action)
		}
		l.Step(d.Action)
	}

	// Then exactly one floor per tick toward home.
	for want := 3; want >= 1; want-- {
		d := s.Decide(l, nil, 0)
		if d.Action != types.MoveDown {
			t.Fatalf("expected MOVE_DOWN toward home, got %s at floor %d", d.Action, l.Floor)
		}
		l.Step(d.Action)
		if l.Floor != want {
			t.Fatalf("expected floor %d, got %d", want, l.Floor)
		}
	}

	// At home the lift stops and stays.
	for tick := 0; tick < 10; tick++ {
		d := s.Decide(l, nil, tick)
		if d.Action != types.StayIdle {
			t.Fatalf("expected STAY_IDLE at home floor, got %s", d.Action)
		}
		l.Step(d.Action)
	}
	if l.Floor != 1 {
		t.Errorf("expected lift parked at home floor 1, got %d", l.Floor)
	}
}

func TestNewRequestResetsIdleTracking(t *testing.T) {
	s := nearest(t, types.ParkToHomeFloor, 0, 2)
	l := testLift(5)
	ledger := request.NewLedger()

	s.Decide(l, nil, 0) // one idle tick accrued
	r := queued(t, ledger, 5, types.DirUp)
	d := s.Decide(l, ledger.Pending(), 1)
	if d.RequestID != r.ID {
		t.Fatalf("expected new request to be served, got %d", d.RequestID)
	}

	// The counter restarted, so one more idle tick must not trigger parking.
	if err := r.Transition(types.Cancelled); err != nil {
		t.Fatal(err)
	}
	d = s.Decide(l, ledger.Pending(), 2)
	if d.Action != types.StayIdle {
		t.Errorf("expected STAY_IDLE on a fresh idle counter, got %s", d.Action)
	}
}
