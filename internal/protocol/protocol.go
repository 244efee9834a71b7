package protocol

import "fmt"

// Request bytes sent by the HMI node.
const (
	// RequestVerify starts a verification: five digit bytes follow.
	RequestVerify byte = 'F'
	// RequestStore starts a credential write: five digit bytes follow.
	RequestStore byte = 'S'
	// RequestOpen announces a door-open request from the menu.
	RequestOpen byte = '+'
	// RequestChange announces a credential change request from the menu.
	RequestChange byte = '-'
)

// Outcome bytes sent by the Control node in reply to RequestVerify.
const (
	// OutcomeMatch means the submitted digits equal the stored credential.
	OutcomeMatch byte = 'X'
	// OutcomeMismatch means the digits differ and the attempt was counted.
	OutcomeMismatch byte = 'Z'
	// OutcomeAlarm means the mismatch reached the lockout threshold.
	OutcomeAlarm byte = StatusAlarm
)

// Status bytes pushed by the Control node while it runs the door cycle.
const (
	// StatusOpening is sent when the door starts opening.
	// The alarm phase reuses it to announce that the lockout has ended.
	StatusOpening byte = 'a'
	// StatusWaiting is sent while the door is held open for occupancy to clear.
	StatusWaiting byte = 'b'
	// StatusClosing is sent when the door starts closing.
	StatusClosing byte = 'c'
	// StatusAlarm is sent when the lockout starts.
	StatusAlarm byte = 'd'
	// StatusCycleComplete is sent once the door is closed again.
	StatusCycleComplete byte = 0x03
	// StatusAlarmCleared marks the end of the lockout window.
	StatusAlarmCleared = StatusOpening
)

// Blank is a filler byte that receivers skip while collecting digits.
const Blank byte = ' '

// IsDigit reports whether b is a raw digit value.
func IsDigit(b byte) bool {
	return b <= 9
}

// IsOutcome reports whether b is one of the replies to RequestVerify.
func IsOutcome(b byte) bool {
	switch b {
	case OutcomeMatch, OutcomeMismatch, OutcomeAlarm:
		return true
	default:
		return false
	}
}

// Describe renders a protocol byte for logs.
func Describe(b byte) string {
	switch b {
	case RequestVerify:
		return "verify-request"
	case RequestStore:
		return "store-request"
	case RequestOpen:
		return "open-request"
	case RequestChange:
		return "change-request"
	case OutcomeMatch:
		return "match"
	case OutcomeMismatch:
		return "mismatch"
	case StatusOpening:
		return "opening"
	case StatusWaiting:
		return "waiting"
	case StatusClosing:
		return "closing"
	case StatusAlarm:
		return "alarm"
	case StatusCycleComplete:
		return "cycle-complete"
	case Blank:
		return "blank"
	}

	if IsDigit(b) {
		return fmt.Sprintf("digit(%d)", b)
	}

	return fmt.Sprintf("0x%02X", b)
}
