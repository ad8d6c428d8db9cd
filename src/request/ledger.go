package request

import "liftsim/src/types"

// Ledger owns the id counter and every request of one engine instance.
// It is not shared between runs, so concurrent engines never collide.
type Ledger struct {
	nextID int64
	all    []*Request
}

func NewLedger() *Ledger {
	return &Ledger{nextID: 1}
}

// HallCall creates a hall call in CREATED with a fresh monotonic id.
func (l *Ledger) HallCall(floor int, dir types.Direction, alias string, tick int) *Request {
	r := &Request{
		ID:            l.nextID,
		Type:          types.HallCall,
		OriginFloor:   floor,
		Direction:     dir,
		State:         types.Created,
		Alias:         alias,
		CreatedTick:   tick,
		CompletedTick: -1,
		AssignedLift:  -1,
	}
	l.nextID++
	l.all = append(l.all, r)
	return r
}

// CarCall creates a car call in CREATED with a fresh monotonic id.
func (l *Ledger) CarCall(origin, destination int, tick int) *Request {
	r := &Request{
		ID:               l.nextID,
		Type:             types.CarCall,
		OriginFloor:      origin,
		DestinationFloor: destination,
		State:            types.Created,
		CreatedTick:      tick,
		CompletedTick:    -1,
		AssignedLift:     -1,
	}
	l.nextID++
	l.all = append(l.all, r)
	return r
}

// All returns every request ever created, in id order.
func (l *Ledger) All() []*Request {
	return l.all
}

// Pending returns the requests still in a non-terminal state, in id order.
func (l *Ledger) Pending() []*Request {
	var pending []*Request
	for _, r := range l.all {
		if !r.State.Terminal() {
			pending = append(pending, r)
		}
	}
	return pending
}
