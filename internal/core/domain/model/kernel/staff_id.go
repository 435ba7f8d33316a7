package kernel

import (
	"fulfillment/internal/pkg/errs"
)

// ErrStaffIDIsNotConstructed indicates that a StaffID was not created through
// NewStaffID. This error is returned when validating a zero-value StaffID.
var ErrStaffIDIsNotConstructed = errs.NewValueIsRequiredError("StaffID must be created via NewStaffID")

// StaffID is a value object that represents the opaque identifier of a staff
// member, as issued by the authentication collaborator. It is used for claim
// semantics (who owns an order leg) and for visibility checks.
//
// A nil *StaffID in predicate and transition signatures means the viewer has
// not been resolved yet (auth still loading); owner checks are skipped in
// that case so work is never hidden because of a transient auth race.
type StaffID struct {
	value string
}

// NewStaffID creates a StaffID from its string form.
// Returns an error when the string is empty.
func NewStaffID(value string) (StaffID, error) {
	if value == "" {
		return StaffID{}, errs.NewValueIsRequiredError("staff id")
	}
	return StaffID{value: value}, nil
}

// String returns the identifier in its issued string form.
func (id StaffID) String() string {
	return id.value
}

// IsEqual compares two staff identifiers for equality.
func (id StaffID) IsEqual(other StaffID) bool {
	return id.value == other.value
}

// Validate checks that the StaffID was properly constructed.
// Returns ErrStaffIDIsNotConstructed for a zero value.
func (id StaffID) Validate() error {
	if id.value == "" {
		return ErrStaffIDIsNotConstructed
	}
	return nil
}
