package order

import "time"

// Status is the lifecycle state of a submitted order.
//
//	Initial -> Accepted -> {Completed, Cancelled, Expired, Rejected}
type Status int

const (
	Initial Status = iota
	Accepted
	Completed
	Cancelled
	Expired
	Rejected
)

// Closed reports whether the status is terminal.
func (s Status) Closed() bool { return s >= Completed }

// Open reports whether the order can still fill.
func (s Status) Open() bool { return !s.Closed() }

func (s Status) String() string {
	switch s {
	case Initial:
		return "INITIAL"
	case Accepted:
		return "ACCEPTED"
	case Completed:
		return "COMPLETED"
	case Cancelled:
		return "CANCELLED"
	case Expired:
		return "EXPIRED"
	case Rejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// State is the reported lifecycle of one order. It is a value: Update
// returns a new State rather than mutating in place.
type State struct {
	Order    Order
	Status   Status
	OpenedAt time.Time
	ClosedAt time.Time
}

func NewState(o Order) State {
	return State{Order: o, Status: Initial}
}

// Update advances the state to the given status at time t. Terminal states
// are final: once closed, further updates are ignored. OpenedAt is recorded
// on the first transition out of Initial and never changes again; ClosedAt
// is set exactly when the status becomes terminal.
func (s State) Update(t time.Time, status Status) State {
	if s.Status.Closed() {
		return s
	}
	if s.Status == Initial {
		s.OpenedAt = t
	}
	s.Status = status
	if status.Closed() {
		s.ClosedAt = t
	}
	return s
}
