// Package engine runs a scenario tick by tick: deliver newly-due events,
// ask the dispatch strategy for an action per lift, apply it to the lift
// state machine, advance request states. Ticks advance strictly
// sequentially and lifts are visited in index order, so two runs with the
// same input produce identical output. One Engine per run; instances share
// no mutable state.
package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"

	"liftsim/src/dispatch"
	"liftsim/src/lift"
	"liftsim/src/logger"
	"liftsim/src/request"
	"liftsim/src/scenario"
	"liftsim/src/types"
)

// ErrRunComplete is returned by Step once every tick has executed.
var ErrRunComplete = errors.New("engine: run complete")

// InvariantError reports an engine-internal state violation with full
// context. It aborts the run; it should never occur given correct
// strategy output.
type InvariantError struct {
	Tick int
	Lift int
	Err  error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("engine invariant violated at tick %d, lift %d: %v", e.Tick, e.Lift, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }

// Engine owns the tick counter and composes the lift machines, the
// request ledger and the dispatch strategy for one run. Not safe for
// concurrent use; run independent scenarios on independent instances.
type Engine struct {
	def      *scenario.Definition
	lifts    []*lift.Lift
	ledger   *request.Ledger
	strategy dispatch.Strategy

	tick      int
	nextEvent int
	cancelled bool

	// cancelCheck is polled at each tick boundary in Run. Wiring it is
	// the orchestration layer's business.
	cancelCheck func() bool

	runID string
}

// New builds an engine for one run. liftCount lifts start at the
// scenario's initial floor. Strategy construction failures (unknown or
// unsupported controller_strategy) surface here, before any tick runs.
func New(def *scenario.Definition, liftCount int) (*Engine, error) {
	if liftCount <= 0 {
		return nil, fmt.Errorf("%w: lift count must be positive", dispatch.ErrInvalidArgument)
	}
	// The definition must stay read-only for the whole run, so keep an
	// isolated copy the caller cannot reach.
	owned := new(scenario.Definition)
	if err := deepcopy.Copy(owned, def); err != nil {
		return nil, fmt.Errorf("copy scenario definition: %w", err)
	}
	def = owned
	cfg := def.Lift
	strategy, err := dispatch.New(cfg.ControllerStrategy, cfg.HomeFloor, cfg.IdleTimeoutTicks, cfg.IdleParkingMode)
	if err != nil {
		return nil, err
	}

	timing := lift.Timing{
		TravelTicksPerFloor:   cfg.TravelTicksPerFloor,
		DoorTransitionTicks:   cfg.DoorTransitionTicks,
		DoorDwellTicks:        cfg.DoorDwellTicks,
		DoorReopenWindowTicks: cfg.DoorReopenWindowTicks,
	}
	lifts := make([]*lift.Lift, liftCount)
	for i := range lifts {
		lifts[i] = lift.New(i, cfg.InitialFloor, cfg.MinFloor, cfg.MaxFloor, timing)
	}

	return &Engine{
		def:      def,
		lifts:    lifts,
		ledger:   request.NewLedger(),
		strategy: strategy,
		runID:    uuid.NewString(),
	}, nil
}

// SetCancelCheck installs the tick-boundary cancellation hook.
func (e *Engine) SetCancelCheck(check func() bool) {
	e.cancelCheck = check
}

// RunID identifies this run in externally stored reports.
func (e *Engine) RunID() string { return e.runID }

// Tick is the number of ticks executed so far.
func (e *Engine) Tick() int { return e.tick }

// AddHallCall registers a hall call directly, outside the scenario event
// list. It is delivered at the start of the next tick.
func (e *Engine) AddHallCall(floor int, dir types.Direction) (*request.Request, error) {
	if floor < e.def.Lift.MinFloor || floor > e.def.Lift.MaxFloor {
		return nil, fmt.Errorf("%w: hall call floor %d outside [%d, %d]",
			dispatch.ErrInvalidArgument, floor, e.def.Lift.MinFloor, e.def.Lift.MaxFloor)
	}
	if dir != types.DirUp && dir != types.DirDown {
		return nil, fmt.Errorf("%w: hall call needs a direction", dispatch.ErrInvalidArgument)
	}
	return e.ledger.HallCall(floor, dir, "", e.tick), nil
}

// AddCarCall registers a car call directly. It is delivered at the start
// of the next tick.
func (e *Engine) AddCarCall(origin, destination int) (*request.Request, error) {
	cfg := e.def.Lift
	if origin < cfg.MinFloor || origin > cfg.MaxFloor {
		return nil, fmt.Errorf("%w: car call origin %d outside [%d, %d]",
			dispatch.ErrInvalidArgument, origin, cfg.MinFloor, cfg.MaxFloor)
	}
	if destination < cfg.MinFloor || destination > cfg.MaxFloor {
		return nil, fmt.Errorf("%w: car call destination %d outside [%d, %d]",
			dispatch.ErrInvalidArgument, destination, cfg.MinFloor, cfg.MaxFloor)
	}
	if origin == destination {
		return nil, fmt.Errorf("%w: car call origin and destination must differ", dispatch.ErrInvalidArgument)
	}
	return e.ledger.CarCall(origin, destination, e.tick), nil
}

// SetLiftOutOfService applies the external out-of-service directive.
// Requests assigned to the lift but not yet picked up go back to the
// queue so another lift can take them over.
func (e *Engine) SetLiftOutOfService(id int, out bool) error {
	if id < 0 || id >= len(e.lifts) {
		return fmt.Errorf("%w: no lift %d", dispatch.ErrInvalidArgument, id)
	}
	if !out {
		e.lifts[id].ReturnToService()
		return nil
	}
	e.lifts[id].SetOutOfService()
	for _, r := range e.ledger.Pending() {
		if r.State != types.Assigned || r.AssignedLift != id {
			continue
		}
		if err := r.Transition(types.Queued); err != nil {
			return &InvariantError{Tick: e.tick, Lift: id, Err: err}
		}
		r.AssignedLift = -1
		logger.Get().Debug().Int("tick", e.tick).Int("lift", id).Int64("request", r.ID).Msg("request requeued")
	}
	return nil
}

// Step executes one tick and returns the snapshot observed after it.
func (e *Engine) Step() (TickSnapshot, error) {
	if e.tick >= e.def.Lift.Ticks {
		return TickSnapshot{}, ErrRunComplete
	}
	log := logger.Get()

	e.deliverDue()

	var completed, cancelled []int64
	for _, l := range e.lifts {
		decision := e.strategy.Decide(l, e.ledger.Pending(), e.tick)
		target := e.findRequest(decision.RequestID)

		if target != nil && target.State == types.Queued {
			if err := target.Transition(types.Assigned); err != nil {
				return TickSnapshot{}, &InvariantError{Tick: e.tick, Lift: l.ID, Err: err}
			}
			target.AssignedLift = l.ID
			log.Debug().Int("tick", e.tick).Int("lift", l.ID).Int64("request", target.ID).Msg("request assigned")
		}

		res := l.Step(decision.Action)

		if target != nil && target.State == types.Assigned {
			moving := res.Applied && (decision.Action == types.MoveUp || decision.Action == types.MoveDown)
			if moving || l.Floor == target.TargetFloor() {
				if err := target.Transition(types.Serving); err != nil {
					return TickSnapshot{}, &InvariantError{Tick: e.tick, Lift: l.ID, Err: err}
				}
			}
		}

		if res.DoorsOpened {
			ids, err := e.completeAtFloor(l)
			if err != nil {
				return TickSnapshot{}, err
			}
			completed = append(completed, ids...)
		}
	}

	e.tick++
	if e.tick >= e.def.Lift.Ticks {
		// Terminal tick: whatever is still pending will never be served.
		ids, err := e.cancelLeftovers()
		if err != nil {
			return TickSnapshot{}, err
		}
		cancelled = append(cancelled, ids...)
	}
	snap := TickSnapshot{
		Tick:         e.tick - 1,
		Lifts:        e.liftSnapshots(),
		CompletedIDs: completed,
		CancelledIDs: cancelled,
	}
	return snap, nil
}

// Run executes every remaining tick and returns the final report. After
// the terminal tick all still-pending requests are cancelled, so every
// request ends in a terminal state.
func (e *Engine) Run() (*FinalReport, error) {
	log := logger.Get()
	log.Info().Str("run", e.runID).Str("scenario", e.def.Lift.Name).
		Int("ticks", e.def.Lift.Ticks).Int("lifts", len(e.lifts)).
		Str("strategy", string(e.strategy.Name())).Msg("run started")

	for e.tick < e.def.Lift.Ticks {
		if e.cancelCheck != nil && e.cancelCheck() {
			e.cancelled = true
			log.Info().Str("run", e.runID).Int("tick", e.tick).Msg("run cancelled")
			break
		}
		if _, err := e.Step(); err != nil {
			return nil, err
		}
	}

	// No-op after a completed run; covers the cancellation-hook exit.
	if _, err := e.cancelLeftovers(); err != nil {
		return nil, err
	}

	report := &FinalReport{
		RunID:     e.runID,
		Name:      e.def.Lift.Name,
		Ticks:     e.tick,
		Cancelled: e.cancelled,
		Lifts:     e.liftSnapshots(),
	}
	for _, r := range e.ledger.All() {
		report.Requests = append(report.Requests, requestRecord(r))
	}
	log.Info().Str("run", e.runID).Int("requests", len(report.Requests)).Msg("run finished")
	return report, nil
}

// Reset rewinds the engine to tick zero with the same definition and
// lifts, a fresh ledger and a fresh strategy. The run keeps its identity.
func (e *Engine) Reset() {
	for _, l := range e.lifts {
		l.Reset(e.def.Lift.InitialFloor)
	}
	cfg := e.def.Lift
	// Same arguments that succeeded in New, so the error is unreachable.
	strategy, err := dispatch.New(cfg.ControllerStrategy, cfg.HomeFloor, cfg.IdleTimeoutTicks, cfg.IdleParkingMode)
	if err == nil {
		e.strategy = strategy
	}
	e.ledger = request.NewLedger()
	e.tick = 0
	e.nextEvent = 0
	e.cancelled = false
}

// deliverDue turns newly-due scenario events and freshly created direct
// calls into queued requests.
func (e *Engine) deliverDue() {
	for e.nextEvent < len(e.def.Events) && e.def.Events[e.nextEvent].Tick <= e.tick {
		ev := e.def.Events[e.nextEvent]
		e.ledger.HallCall(ev.Floor, ev.Direction, ev.Alias, e.tick)
		e.nextEvent++
		logger.Get().Debug().Int("tick", e.tick).Str("alias", ev.Alias).
			Int("floor", ev.Floor).Str("direction", ev.Direction.String()).Msg("hall call delivered")
	}
	for _, r := range e.ledger.All() {
		if r.State == types.Created {
			// Created -> Queued is always in the allowed table.
			_ = r.Transition(types.Queued)
		}
	}
}

// completeAtFloor completes every serving request this lift has brought
// to its target floor.
func (e *Engine) completeAtFloor(l *lift.Lift) ([]int64, error) {
	var ids []int64
	for _, r := range e.ledger.Pending() {
		if r.State != types.Serving || r.AssignedLift != l.ID || r.TargetFloor() != l.Floor {
			continue
		}
		if err := r.Transition(types.Completed); err != nil {
			return nil, &InvariantError{Tick: e.tick, Lift: l.ID, Err: err}
		}
		r.CompletedTick = e.tick
		ids = append(ids, r.ID)
		logger.Get().Debug().Int("tick", e.tick).Int("lift", l.ID).Int64("request", r.ID).
			Int("floor", l.Floor).Msg("request completed")
	}
	return ids, nil
}

// cancelLeftovers moves every non-terminal request to CANCELLED and
// returns their ids.
func (e *Engine) cancelLeftovers() ([]int64, error) {
	var ids []int64
	for _, r := range e.ledger.Pending() {
		if err := r.Transition(types.Cancelled); err != nil {
			return nil, &InvariantError{Tick: e.tick, Lift: -1, Err: err}
		}
		r.CompletedTick = e.tick
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func (e *Engine) findRequest(id int64) *request.Request {
	if id == 0 {
		return nil
	}
	for _, r := range e.ledger.All() {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (e *Engine) liftSnapshots() []LiftSnapshot {
	snaps := make([]LiftSnapshot, len(e.lifts))
	for i, l := range e.lifts {
		snaps[i] = LiftSnapshot{
			ID:        l.ID,
			Floor:     l.Floor,
			Status:    l.Status.String(),
			Direction: l.Direction().String(),
			DoorsOpen: l.DoorsOpen(),
		}
	}
	return snaps
}

func requestRecord(r *request.Request) RequestRecord {
	rec := RequestRecord{
		ID:            r.ID,
		Type:          r.Type.String(),
		State:         r.State.String(),
		OriginFloor:   r.OriginFloor,
		Alias:         r.Alias,
		CreatedTick:   r.CreatedTick,
		CompletedTick: r.CompletedTick,
		AssignedLift:  r.AssignedLift,
	}
	if r.Type == types.CarCall {
		rec.DestinationFloor = r.DestinationFloor
	} else {
		rec.Direction = r.Direction.String()
	}
	return rec
}
