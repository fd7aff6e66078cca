package events

// Status is the event lifecycle status.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusEnded    Status = "ENDED"
)

// IsValid checks if the event status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusEnded:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsBookable reports whether seat holds may be taken against the event.
func (s Status) IsBookable() bool {
	return s == StatusActive
}
