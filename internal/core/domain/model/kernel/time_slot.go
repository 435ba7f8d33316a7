package kernel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
)

// ErrTimeSlotIsNotConstructed indicates that a TimeSlot was not created through
// ParseTimeSlot. This error is returned when validating a zero-value TimeSlot.
var ErrTimeSlotIsNotConstructed = errs.NewValueIsRequiredError("TimeSlot must be created via ParseTimeSlot")

// timeSlotPattern matches a single 12-hour clock reading with an explicit
// AM/PM marker, e.g. "9:05 AM" or "12:30pm". Anything else fails closed:
// a slot string the parser cannot understand must not be guessed at, the
// caller falls back to the order's creation time instead.
var timeSlotPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])$`)

// TimeSlot is a value object representing the committed start bound of a
// pickup or delivery time slot. Slot strings arrive from the order store in
// 12-hour clock form; range strings like "10:00 AM - 11:00 AM" are reduced
// to their start bound.
//
// TimeSlot carries only a time of day. Combine it with the committed
// fulfillment date via At to obtain the sort instant used by the queue
// projection.
//
// Example:
//
//	slot, err := kernel.ParseTimeSlot("10:00 AM - 11:00 AM")
//	if err != nil {
//	    // ambiguous or malformed slot: fall back to createdAt
//	}
//	due := slot.At(pickupDate)
type TimeSlot struct {
	hour   int
	minute int

	isConstructed bool
}

// ParseTimeSlot parses a slot string into its start bound.
//
// Accepted forms:
//   - "H:MM AM" / "H:MM PM" (case-insensitive, optional space before the marker)
//   - "start - end" ranges of the above, reduced to start
//
// Any other form — including 12-hour readings without an explicit AM/PM
// marker — returns an error so callers can fail closed to creation time.
func ParseTimeSlot(s string) (TimeSlot, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return TimeSlot{}, errs.NewValueIsRequiredError("time slot")
	}

	// Range strings reduce to their start bound.
	if start, _, found := strings.Cut(raw, " - "); found {
		raw = strings.TrimSpace(start)
	}

	match := timeSlotPattern.FindStringSubmatch(raw)
	if match == nil {
		return TimeSlot{}, errs.NewValueIsInvalidErrorWithCause(
			"time slot",
			fmt.Errorf("%q is not in H:MM AM/PM form", s),
		)
	}

	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return TimeSlot{}, errs.NewValueIsInvalidErrorWithCause(
			"time slot",
			fmt.Errorf("%q is not a valid 12-hour clock reading", s),
		)
	}

	// Convert to 24-hour form: 12 AM is midnight, 12 PM is noon.
	if hour == 12 {
		hour = 0
	}
	if strings.EqualFold(match[3], "PM") {
		hour += 12
	}

	return TimeSlot{hour: hour, minute: minute, isConstructed: true}, nil
}

// Hour returns the start hour in 24-hour form.
func (t TimeSlot) Hour() int {
	return t.hour
}

// Minute returns the start minute.
func (t TimeSlot) Minute() int {
	return t.minute
}

// At anchors the slot's start bound on the given date, preserving the date's
// location.
func (t TimeSlot) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.hour, t.minute, 0, 0, date.Location())
}

// Validate checks that the TimeSlot was properly constructed.
// Returns ErrTimeSlotIsNotConstructed for a zero value.
func (t TimeSlot) Validate() error {
	if !t.isConstructed {
		return ErrTimeSlotIsNotConstructed
	}
	return nil
}
