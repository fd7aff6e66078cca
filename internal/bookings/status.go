package bookings

type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusApproved   Status = "APPROVED"
	StatusFailed     Status = "FAILED"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid checks if the booking status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusProcessing, StatusApproved, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further transitions.
// APPROVED and the failure states never move again through this subsystem;
// in particular an approved booking cannot become failed or cancelled here.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status machine permits moving from s
// to next. Only PROCESSING moves; nothing ever returns to PROCESSING.
func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusProcessing {
		return false
	}
	switch next {
	case StatusApproved, StatusFailed, StatusCancelled:
		return true
	}
	return false
}
