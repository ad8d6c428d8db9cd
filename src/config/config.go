package config

import (
	"fmt"

	"liftsim/src/types"
)

const (
	DefaultTicks               = 200
	DefaultTravelTicks         = 1
	DefaultDoorTransitionTicks = 1
	DefaultDoorDwellTicks      = 2
	DefaultDoorReopenWindow    = 1
	DefaultIdleTimeoutTicks    = 10
)

// LiftConfig mirrors the header of the scenario text format.
type LiftConfig struct {
	Name                  string             `yaml:"name"`
	Ticks                 int                `yaml:"ticks"`
	MinFloor              int                `yaml:"min_floor"`
	MaxFloor              int                `yaml:"max_floor"`
	InitialFloor          int                `yaml:"initial_floor"`
	TravelTicksPerFloor   int                `yaml:"travel_ticks_per_floor"`
	DoorTransitionTicks   int                `yaml:"door_transition_ticks"`
	DoorDwellTicks        int                `yaml:"door_dwell_ticks"`
	DoorReopenWindowTicks int                `yaml:"door_reopen_window_ticks"`
	HomeFloor             int                `yaml:"home_floor"`
	IdleTimeoutTicks      int                `yaml:"idle_timeout_ticks"`
	ControllerStrategy    types.StrategyName `yaml:"controller_strategy"`
	IdleParkingMode       types.ParkingMode  `yaml:"idle_parking_mode"`
}

// PassengerFlow is one group of passengers sharing a start tick and route.
type PassengerFlow struct {
	StartTick        int `yaml:"start_tick"`
	OriginFloor      int `yaml:"origin_floor"`
	DestinationFloor int `yaml:"destination_floor"`
	PassengerCount   int `yaml:"passenger_count"`
}

// FieldError reports which input field made a configuration invalid.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the header-level invariants shared by the parser and the
// batch input generator.
func (c *LiftConfig) Validate() error {
	if c.Ticks <= 0 {
		return &FieldError{Field: "ticks", Reason: "must be positive"}
	}
	if c.MinFloor >= c.MaxFloor {
		return &FieldError{Field: "min_floor", Reason: fmt.Sprintf("min_floor %d must be below max_floor %d", c.MinFloor, c.MaxFloor)}
	}
	if c.InitialFloor < c.MinFloor || c.InitialFloor > c.MaxFloor {
		return &FieldError{Field: "initial_floor", Reason: fmt.Sprintf("floor %d outside [%d, %d]", c.InitialFloor, c.MinFloor, c.MaxFloor)}
	}
	if c.HomeFloor < c.MinFloor || c.HomeFloor > c.MaxFloor {
		return &FieldError{Field: "home_floor", Reason: fmt.Sprintf("floor %d outside [%d, %d]", c.HomeFloor, c.MinFloor, c.MaxFloor)}
	}
	if c.TravelTicksPerFloor <= 0 {
		return &FieldError{Field: "travel_ticks_per_floor", Reason: "must be positive"}
	}
	if c.DoorTransitionTicks <= 0 {
		return &FieldError{Field: "door_transition_ticks", Reason: "must be positive"}
	}
	if c.DoorDwellTicks <= 0 {
		return &FieldError{Field: "door_dwell_ticks", Reason: "must be positive"}
	}
	if c.DoorReopenWindowTicks < 0 {
		return &FieldError{Field: "door_reopen_window_ticks", Reason: "must not be negative"}
	}
	if c.DoorReopenWindowTicks > c.DoorTransitionTicks {
		return &FieldError{Field: "door_reopen_window_ticks", Reason: fmt.Sprintf("window %d exceeds door_transition_ticks %d", c.DoorReopenWindowTicks, c.DoorTransitionTicks)}
	}
	if c.IdleTimeoutTicks <= 0 {
		return &FieldError{Field: "idle_timeout_ticks", Reason: "must be positive"}
	}
	if _, ok := types.ParseStrategyName(string(c.ControllerStrategy)); !ok {
		return &FieldError{Field: "controller_strategy", Reason: fmt.Sprintf("unknown strategy %q", string(c.ControllerStrategy))}
	}
	if _, ok := types.ParseParkingMode(string(c.IdleParkingMode)); !ok {
		return &FieldError{Field: "idle_parking_mode", Reason: fmt.Sprintf("unknown parking mode %q", string(c.IdleParkingMode))}
	}
	return nil
}
