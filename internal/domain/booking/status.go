package booking

// Status is the persisted lifecycle state of a booking. WAITING is the
// only non-terminal status; a booking is decided exactly once.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Settled() bool {
	return s == StatusApproved || s == StatusRejected
}

func (s Status) String() string {
	return string(s)
}
