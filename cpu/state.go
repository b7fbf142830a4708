package cpu

// State is the phase of the instruction cycle.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_FETCH   = State(0) // fetch
	STATE_EXECUTE = State(1) // execute
)

// PULSE_COUNT is the number of clock pulses in each phase.
const PULSE_COUNT = 8

// Status is the outcome of a pulse or cycle.
type Status int

//go:generate go tool stringer -linecomment -type=Status
const (
	STATUS_CONTINUING      = Status(0) // continuing
	STATUS_HALTED          = Status(1) // halted
	STATUS_BREAKPOINT      = Status(2) // breakpoint
	STATUS_AWAITING_INPUT  = Status(3) // awaiting-input
	STATUS_AWAITING_OUTPUT = Status(4) // awaiting-output
)

// Awaiting returns true if the status is an I/O handshake stall.
func (status Status) Awaiting() bool {
	return status == STATUS_AWAITING_INPUT || status == STATUS_AWAITING_OUTPUT
}
