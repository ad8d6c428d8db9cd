package types

// StrategyName identifies a dispatch strategy in the scenario header.
type StrategyName string

const (
	NearestRequestRouting StrategyName = "NEAREST_REQUEST_ROUTING"
	DirectionalScan       StrategyName = "DIRECTIONAL_SCAN"
)

// ParkingMode controls what an idle lift does after the idle timeout.
type ParkingMode string

const (
	StayAtCurrentFloor ParkingMode = "STAY_AT_CURRENT_FLOOR"
	ParkToHomeFloor    ParkingMode = "PARK_TO_HOME_FLOOR"
)

func ParseStrategyName(s string) (StrategyName, bool) {
	switch StrategyName(s) {
	case NearestRequestRouting, DirectionalScan:
		return StrategyName(s), true
	default:
		return "", false
	}
}

func ParseParkingMode(s string) (ParkingMode, bool) {
	switch ParkingMode(s) {
	case StayAtCurrentFloor, ParkToHomeFloor:
		return ParkingMode(s), true
	default:
		return "", false
	}
}
