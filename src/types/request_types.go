package types

import "fmt"

type RequestType int

const (
	HallCall RequestType = iota
	CarCall
)

func (t RequestType) String() string {
	switch t {
	case HallCall:
		return "HALL_CALL"
	case CarCall:
		return "CAR_CALL"
	default:
		return fmt.Sprintf("RequestType(%d)", int(t))
	}
}

type RequestState int

const (
	Created RequestState = iota
	Queued
	Assigned
	Serving
	Completed
	Cancelled
)

func (s RequestState) String() string {
	switch s {
	case Created:
		return "CREATED"
	case Queued:
		return "QUEUED"
	case Assigned:
		return "ASSIGNED"
	case Serving:
		return "SERVING"
	case Completed:
		return "COMPLETED"
	case Cancelled:
		return "CANCELLED"
	default:
		return fmt.Sprintf("RequestState(%d)", int(s))
	}
}

// Terminal reports whether a request state accepts no further transitions.
func (s RequestState) Terminal() bool {
	return s == Completed || s == Cancelled
}
