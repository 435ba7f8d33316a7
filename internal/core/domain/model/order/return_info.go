package order

import (
	"time"

	"fulfillment/internal/pkg/errs"
)

// ReturnInfo is the audit annotation written when final check sends an order
// back to an earlier stage. It is set together with the order's isSentBack
// flag and only on a transition from a final check origin to a kitchen or
// design queue.
type ReturnInfo struct {
	fromFinalCheck bool
	reason         string
	destination    Leg
	returnedAt     time.Time
}

// NewReturnInfo creates the annotation for a send-back happening now.
// The destination must be a valid leg and the reason must not be empty:
// a rework order without an explanation is useless to the receiving station.
func NewReturnInfo(destination Leg, reason string, returnedAt time.Time) (ReturnInfo, error) {
	if err := destination.Validate(); err != nil {
		return ReturnInfo{}, err
	}
	if reason == "" {
		return ReturnInfo{}, errs.NewValueIsRequiredError("return reason")
	}
	if returnedAt.IsZero() {
		return ReturnInfo{}, errs.NewValueIsRequiredError("returned at")
	}
	return ReturnInfo{
		fromFinalCheck: true,
		reason:         reason,
		destination:    destination,
		returnedAt:     returnedAt,
	}, nil
}

// RestoreReturnInfo reconstructs an annotation from persisted data.
func RestoreReturnInfo(fromFinalCheck bool, destination Leg, reason string, returnedAt time.Time) (ReturnInfo, error) {
	if err := destination.Validate(); err != nil {
		return ReturnInfo{}, err
	}
	return ReturnInfo{
		fromFinalCheck: fromFinalCheck,
		reason:         reason,
		destination:    destination,
		returnedAt:     returnedAt,
	}, nil
}

// FromFinalCheck reports whether the return originated at final check.
func (r ReturnInfo) FromFinalCheck() bool {
	return r.fromFinalCheck
}

// Reason returns the reviewer's explanation for the return.
func (r ReturnInfo) Reason() string {
	return r.reason
}

// Destination returns the leg the order was returned to.
func (r ReturnInfo) Destination() Leg {
	return r.destination
}

// ReturnedAt returns the instant the send-back was applied.
func (r ReturnInfo) ReturnedAt() time.Time {
	return r.returnedAt
}
