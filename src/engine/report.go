package engine

// LiftSnapshot is one lift's externally visible state.
type LiftSnapshot struct {
	ID        int    `json:"id"`
	Floor     int    `json:"floor"`
	Status    string `json:"status"`
	Direction string `json:"direction"`
	DoorsOpen bool   `json:"doors_open"`
}

// TickSnapshot is the engine's per-tick output: lift states plus the
// requests that reached a terminal state during the tick. The terminal
// tick lists every still-pending request under CancelledIDs.
type TickSnapshot struct {
	Tick         int            `json:"tick"`
	Lifts        []LiftSnapshot `json:"lifts"`
	CompletedIDs []int64        `json:"completed_ids,omitempty"`
	CancelledIDs []int64        `json:"cancelled_ids,omitempty"`
}

// RequestRecord is one request's full history entry in the final report.
type RequestRecord struct {
	ID               int64  `json:"id"`
	Type             string `json:"type"`
	State            string `json:"state"`
	OriginFloor      int    `json:"origin_floor"`
	DestinationFloor int    `json:"destination_floor,omitempty"`
	Direction        string `json:"direction,omitempty"`
	Alias            string `json:"alias,omitempty"`
	CreatedTick      int    `json:"created_tick"`
	CompletedTick    int    `json:"completed_tick"`
	AssignedLift     int    `json:"assigned_lift"`
}

// FinalReport is the only contract the core owes the external
// results-aggregation layer.
type FinalReport struct {
	RunID     string          `json:"run_id"`
	Name      string          `json:"name"`
	Ticks     int             `json:"ticks"`
	Cancelled bool            `json:"cancelled"`
	Lifts     []LiftSnapshot  `json:"lifts"`
	Requests  []RequestRecord `json:"requests"`
}
