package scenario

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"liftsim/src/config"
	"liftsim/src/types"
)

// ParseError reports a malformed or out-of-range scenario text with field
// and line context. It aborts loading only; nothing has run yet.
type ParseError struct {
	Line   int
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("scenario line %d, field %s: %s", e.Line, e.Field, e.Reason)
}

// Parse reads the stable text format into a Definition. It is a pure
// function: identical text always yields an identical Definition.
func Parse(text string) (*Definition, error) {
	lines := strings.Split(text, "\n")
	def := &Definition{}

	fieldLines := make(map[string]int, len(headerKeys))
	for i, key := range headerKeys {
		if i >= len(lines) {
			return nil, &ParseError{Line: len(lines), Field: key, Reason: "missing required header field"}
		}
		lineNo := i + 1
		value, err := headerValue(lines[i], key, lineNo)
		if err != nil {
			return nil, err
		}
		fieldLines[key] = lineNo
		if err := setHeaderField(&def.Lift, key, value, lineNo); err != nil {
			return nil, err
		}
	}

	if err := validateHeader(&def.Lift, fieldLines); err != nil {
		return nil, err
	}

	sep := len(headerKeys)
	if sep >= len(lines) || strings.TrimSpace(lines[sep]) != "" {
		return nil, &ParseError{Line: sep + 1, Field: "events", Reason: "expected blank line between header and events"}
	}

	lastTick := -1
	for i := sep + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		ev, err := parseEvent(line, i+1, &def.Lift)
		if err != nil {
			return nil, err
		}
		if ev.Tick < lastTick {
			return nil, &ParseError{Line: i + 1, Field: "tick", Reason: fmt.Sprintf("event tick %d is out of order (previous %d)", ev.Tick, lastTick)}
		}
		lastTick = ev.Tick
		def.Events = append(def.Events, ev)
	}

	return def, nil
}

func headerValue(line, key string, lineNo int) (string, error) {
	k, v, found := strings.Cut(line, ":")
	if !found || strings.TrimSpace(k) != key {
		return "", &ParseError{Line: lineNo, Field: key, Reason: fmt.Sprintf("expected %q header line, got %q", key, line)}
	}
	return strings.TrimSpace(v), nil
}

func setHeaderField(cfg *config.LiftConfig, key, value string, lineNo int) error {
	atoi := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, &ParseError{Line: lineNo, Field: key, Reason: fmt.Sprintf("not an integer: %q", value)}
		}
		return n, nil
	}

	var err error
	switch key {
	case "name":
		cfg.Name = value
	case "ticks":
		cfg.Ticks, err = atoi()
	case "min_floor":
		cfg.MinFloor, err = atoi()
	case "max_floor":
		cfg.MaxFloor, err = atoi()
	case "initial_floor":
		cfg.InitialFloor, err = atoi()
	case "travel_ticks_per_floor":
		cfg.TravelTicksPerFloor, err = atoi()
	case "door_transition_ticks":
		cfg.DoorTransitionTicks, err = atoi()
	case "door_dwell_ticks":
		cfg.DoorDwellTicks, err = atoi()
	case "door_reopen_window_ticks":
		cfg.DoorReopenWindowTicks, err = atoi()
	case "home_floor":
		cfg.HomeFloor, err = atoi()
	case "idle_timeout_ticks":
		cfg.IdleTimeoutTicks, err = atoi()
	case "controller_strategy":
		name, ok := types.ParseStrategyName(value)
		if !ok {
			return &ParseError{Line: lineNo, Field: key, Reason: fmt.Sprintf("unknown strategy %q", value)}
		}
		cfg.ControllerStrategy = name
	case "idle_parking_mode":
		mode, ok := types.ParseParkingMode(value)
		if !ok {
			return &ParseError{Line: lineNo, Field: key, Reason: fmt.Sprintf("unknown parking mode %q", value)}
		}
		cfg.IdleParkingMode = mode
	}
	return err
}

// validateHeader maps cross-field violations back to the line of the
// offending field.
func validateHeader(cfg *config.LiftConfig, fieldLines map[string]int) error {
	if err := cfg.Validate(); err != nil {
		var fieldErr *config.FieldError
		if errors.As(err, &fieldErr) {
			return &ParseError{Line: fieldLines[fieldErr.Field], Field: fieldErr.Field, Reason: fieldErr.Reason}
		}
		return err
	}
	return nil
}

func parseEvent(line string, lineNo int, cfg *config.LiftConfig) (Event, error) {
	var ev Event
	parts := strings.Split(line, ",")
	if len(parts) != 5 {
		return ev, &ParseError{Line: lineNo, Field: "event", Reason: fmt.Sprintf("expected 5 comma-separated fields, got %d", len(parts))}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	tick, err := strconv.Atoi(parts[0])
	if err != nil {
		return ev, &ParseError{Line: lineNo, Field: "tick", Reason: fmt.Sprintf("not an integer: %q", parts[0])}
	}
	if tick < 0 || tick >= cfg.Ticks {
		return ev, &ParseError{Line: lineNo, Field: "tick", Reason: fmt.Sprintf("tick %d outside [0, %d)", tick, cfg.Ticks)}
	}
	if parts[1] != EventKindHallCall {
		return ev, &ParseError{Line: lineNo, Field: "kind", Reason: fmt.Sprintf("unknown event kind %q", parts[1])}
	}
	if parts[2] == "" {
		return ev, &ParseError{Line: lineNo, Field: "alias", Reason: "alias must not be empty"}
	}
	floor, err := strconv.Atoi(parts[3])
	if err != nil {
		return ev, &ParseError{Line: lineNo, Field: "floor", Reason: fmt.Sprintf("not an integer: %q", parts[3])}
	}
	if floor < cfg.MinFloor || floor > cfg.MaxFloor {
		return ev, &ParseError{Line: lineNo, Field: "floor", Reason: fmt.Sprintf("floor %d outside [%d, %d]", floor, cfg.MinFloor, cfg.MaxFloor)}
	}
	dir, ok := types.ParseDirection(parts[4])
	if !ok {
		return ev, &ParseError{Line: lineNo, Field: "direction", Reason: fmt.Sprintf("unknown direction %q", parts[4])}
	}

	ev = Event{Tick: tick, Kind: EventKindHallCall, Alias: parts[2], Floor: floor, Direction: dir}
	return ev, nil
}
