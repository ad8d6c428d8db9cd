// Package scenario owns the stable text scenario format: the parser, its
// inverse generator, and the structured Definition both sides agree on.
// The grammar is an external contract; its bytes are pinned by golden
// tests, independent of the in-memory representation.
package scenario

import (
	"liftsim/src/config"
	"liftsim/src/types"
)

// EventKindHallCall is the only event kind in this format version.
const EventKindHallCall = "hall_call"

// Event is one timed entry of a scenario, ordered by (tick, alias).
type Event struct {
	Tick      int
	Kind      string
	Alias     string
	Floor     int
	Direction types.Direction
}

// Definition is a parsed scenario: the immutable configuration header plus
// the ordered event list. It is read-only for the lifetime of a run.
type Definition struct {
	Lift   config.LiftConfig
	Events []Event
}

// headerKeys is the fixed key order of the scenario header.
var headerKeys = []string{
	"name",
	"ticks",
	"min_floor",
	"max_floor",
	"initial_floor",
	"travel_ticks_per_floor",
	"door_transition_ticks",
	"door_dwell_ticks",
	"door_reopen_window_ticks",
	"home_floor",
	"idle_timeout_ticks",
	"controller_strategy",
	"idle_parking_mode",
}
