package domain

// Status is the closed vocabulary of order states.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// ParseStatus maps a raw string onto the vocabulary. The historical
// "canceled" spelling is accepted and normalized.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusWaiting, StatusDelivered, StatusCancelled:
		return Status(s), true
	}
	if s == "canceled" {
		return StatusCancelled, true
	}
	return "", false
}

func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanFollow reports whether to is a defined next state after s. The intended
// flow is waiting to a terminal state; rewriting an already terminal order is
// an unresolved business rule and is not rejected at the persistence layer.
func (s Status) CanFollow(to Status) bool {
	return s == StatusWaiting && to.Terminal()
}

// Display renders the status for operator-facing messages.
func (s Status) Display() string {
	switch s {
	case StatusWaiting:
		return "Waiting"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}
