package scenario

import (
	"fmt"
	"sort"
	"strings"

	"liftsim/src/config"
	"liftsim/src/types"
)

// Generate converts a lift configuration plus a passenger-flow scenario
// into the exact text format Parse accepts. Each flow expands into one
// hall-call event per passenger; aliases run p1, p2, ... across the whole
// scenario and the emitted lines are sorted by tick, aliases keeping their
// assignment order within a tick. All validation happens before a single
// byte is produced.
func Generate(cfg config.LiftConfig, flows []config.PassengerFlow, name string) (string, error) {
	cfg.Name = name
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if err := validateFlows(&cfg, flows); err != nil {
		return "", err
	}

	events := expandFlows(&cfg, flows)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Tick < events[j].Tick
	})

	var b strings.Builder
	fmt.Fprintf(&b, "name: %s\n", cfg.Name)
	fmt.Fprintf(&b, "ticks: %d\n", cfg.Ticks)
	fmt.Fprintf(&b, "min_floor: %d\n", cfg.MinFloor)
	fmt.Fprintf(&b, "max_floor: %d\n", cfg.MaxFloor)
	fmt.Fprintf(&b, "initial_floor: %d\n", cfg.InitialFloor)
	fmt.Fprintf(&b, "travel_ticks_per_floor: %d\n", cfg.TravelTicksPerFloor)
	fmt.Fprintf(&b, "door_transition_ticks: %d\n", cfg.DoorTransitionTicks)
	fmt.Fprintf(&b, "door_dwell_ticks: %d\n", cfg.DoorDwellTicks)
	fmt.Fprintf(&b, "door_reopen_window_ticks: %d\n", cfg.DoorReopenWindowTicks)
	fmt.Fprintf(&b, "home_floor: %d\n", cfg.HomeFloor)
	fmt.Fprintf(&b, "idle_timeout_ticks: %d\n", cfg.IdleTimeoutTicks)
	fmt.Fprintf(&b, "controller_strategy: %s\n", cfg.ControllerStrategy)
	fmt.Fprintf(&b, "idle_parking_mode: %s\n", cfg.IdleParkingMode)
	b.WriteString("\n")
	for _, ev := range events {
		fmt.Fprintf(&b, "%d, %s, %s, %d, %s\n", ev.Tick, ev.Kind, ev.Alias, ev.Floor, ev.Direction)
	}
	return b.String(), nil
}

func validateFlows(cfg *config.LiftConfig, flows []config.PassengerFlow) error {
	for i, f := range flows {
		field := func(name string) string {
			return fmt.Sprintf("flows[%d].%s", i, name)
		}
		if f.PassengerCount <= 0 {
			return &config.FieldError{Field: field("passenger_count"), Reason: "must be positive"}
		}
		if f.StartTick < 0 || f.StartTick >= cfg.Ticks {
			return &config.FieldError{Field: field("start_tick"), Reason: fmt.Sprintf("tick %d outside [0, %d)", f.StartTick, cfg.Ticks)}
		}
		if f.OriginFloor < cfg.MinFloor || f.OriginFloor > cfg.MaxFloor {
			return &config.FieldError{Field: field("origin_floor"), Reason: fmt.Sprintf("floor %d outside [%d, %d]", f.OriginFloor, cfg.MinFloor, cfg.MaxFloor)}
		}
		if f.DestinationFloor < cfg.MinFloor || f.DestinationFloor > cfg.MaxFloor {
			return &config.FieldError{Field: field("destination_floor"), Reason: fmt.Sprintf("floor %d outside [%d, %d]", f.DestinationFloor, cfg.MinFloor, cfg.MaxFloor)}
		}
		if f.OriginFloor == f.DestinationFloor {
			return &config.FieldError{Field: field("destination_floor"), Reason: "origin and destination must differ"}
		}
	}
	return nil
}

func expandFlows(cfg *config.LiftConfig, flows []config.PassengerFlow) []Event {
	var events []Event
	alias := 0
	for _, f := range flows {
		dir := types.DirDown
		if f.DestinationFloor > f.OriginFloor {
			dir = types.DirUp
		}
		for p := 0; p < f.PassengerCount; p++ {
			alias++
			events = append(events, Event{
				Tick:      f.StartTick,
				Kind:      EventKindHallCall,
				Alias:     fmt.Sprintf("p%d", alias),
				Floor:     f.OriginFloor,
				Direction: dir,
			})
		}
	}
	return events
}
