package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// DeliveryMethod says how the customer receives the finished order. It
// selects which date/time-slot pair carries the committed fulfillment
// deadline.
type DeliveryMethod int

const (
	// DeliveryMethodUnknown represents an invalid or undefined method.
	DeliveryMethodUnknown DeliveryMethod = iota

	// Pickup means the customer collects the order in store.
	Pickup

	// Delivery means the order is delivered to the customer.
	Delivery
)

// getDeliveryMethodStrings returns a map of DeliveryMethod values to their
// wire representations.
func getDeliveryMethodStrings() map[DeliveryMethod]string {
	return map[DeliveryMethod]string{
		DeliveryMethodUnknown: "UNKNOWN",
		Pickup:                "PICKUP",
		Delivery:              "DELIVERY",
	}
}

// DeliveryMethodFromString parses the wire representation of a delivery method.
func DeliveryMethodFromString(s string) (DeliveryMethod, error) {
	for method, str := range getDeliveryMethodStrings() {
		if str == s && method != DeliveryMethodUnknown {
			return method, nil
		}
	}
	return DeliveryMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"delivery method",
		fmt.Errorf("%q is not a known delivery method", s),
	)
}

// Validate checks if the DeliveryMethod value is valid.
func (m DeliveryMethod) Validate() error {
	if m != Pickup && m != Delivery {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery method",
			fmt.Errorf("%d is not a valid delivery method", m),
		)
	}
	return nil
}

// String returns the wire representation of the delivery method.
func (m DeliveryMethod) String() string {
	if str, ok := getDeliveryMethodStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}
