package model

// Status is the workflow state of a build request.
type Status string

// Request statuses, in forward order.
const (
	StatusPending        Status = "pending"
	StatusScheduled      Status = "scheduled"
	StatusInBuild        Status = "in-build"
	StatusReadyForPickup Status = "ready-for-pickup"
)

var statusOrder = []Status{
	StatusPending,
	StatusScheduled,
	StatusInBuild,
	StatusReadyForPickup,
}

var statusLabels = map[Status]string{
	StatusPending:        "Pending",
	StatusScheduled:      "Scheduled",
	StatusInBuild:        "In Build",
	StatusReadyForPickup: "Ready for Pickup",
}

// Statuses returns all statuses in workflow order.
func Statuses() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// Valid reports whether s is one of the four workflow states.
func (s Status) Valid() bool {
	return s.index() >= 0
}

// Label returns the human readable column title.
func (s Status) Label() string {
	return statusLabels[s]
}

// IsTerminal reports whether no further transition exists from s.
func (s Status) IsTerminal() bool {
	return s == StatusReadyForPickup
}

// Next returns the state following s. ok is false for the terminal state and
// for unknown values.
func (s Status) Next() (next Status, ok bool) {
	i := s.index()
	if i < 0 || i == len(statusOrder)-1 {
		return "", false
	}
	return statusOrder[i+1], true
}

// CanAdvanceTo reports whether target is the single forward step from s.
func (s Status) CanAdvanceTo(target Status) bool {
	next, ok := s.Next()
	return ok && next == target
}

func (s Status) index() int {
	for i, st := range statusOrder {
		if st == s {
			return i
		}
	}
	return -1
}
