// Package kernel provides core domain primitives for the fulfillment system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - OrderID: an opaque, store-issued order identifier
//   - StaffID: an opaque staff member identifier used for claim and visibility rules
//   - TimeSlot: a parsed pickup/delivery time slot reduced to its start bound
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
