// Package order provides the domain model for order fulfillment: the Order
// aggregate root, its status state machine, and the per-leg parallel
// sub-state used when an order needs both the kitchen and the design track.
//
// The package includes:
//   - Order: the aggregate root carrying the canonical record shape
//   - Status: the fulfillment state machine with its wire representation
//   - Station and Leg: where work happens and which track it belongs to
//   - ParallelState: the fork/join record for orders requiring both legs
//   - ReturnInfo: the audit annotation written by a final check send-back
//   - Patch: a typed partial update merged in by the live reconciler
//
// Key business rules:
//   - an order advances to final check only when every required leg is ready
//   - claims (kitchenBy and friends) are advisory and never cleared by later
//     stages; the order store is the final arbiter of concurrent claims
//   - a send-back is only legal from final check and always records why
//   - all state changes are copy-on-write: mutators return a new *Order
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are
// enforced.
package order
