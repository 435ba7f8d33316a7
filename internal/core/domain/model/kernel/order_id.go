package kernel

import (
	"fulfillment/internal/pkg/errs"
)

// ErrOrderIDIsNotConstructed indicates that an OrderID was not created through
// NewOrderID. This error is returned when validating a zero-value OrderID.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError("OrderID must be created via NewOrderID")

// OrderID is a value object that represents the opaque, stable identifier the
// order store assigns to an order. The core never interprets its contents;
// it only compares identifiers and uses them as lookup keys.
//
// The zero value of OrderID is invalid and must be constructed via NewOrderID.
//
// Example:
//
//	id, err := kernel.NewOrderID("ord_8271")
//	if err != nil {
//	    // handle missing identifier
//	}
type OrderID struct {
	value string
}

// NewOrderID creates an OrderID from its store-issued string form.
// Returns an error when the string is empty.
func NewOrderID(value string) (OrderID, error) {
	if value == "" {
		return OrderID{}, errs.NewValueIsRequiredError("order id")
	}
	return OrderID{value: value}, nil
}

// String returns the identifier in its store-issued string form.
func (id OrderID) String() string {
	return id.value
}

// IsEqual compares two order identifiers for equality.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

// Validate checks that the OrderID was properly constructed.
// Returns ErrOrderIDIsNotConstructed for a zero value.
func (id OrderID) Validate() error {
	if id.value == "" {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}
