package services

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// VisibilityPolicy is a domain service deciding whether an order belongs in a
// station's queue for a particular viewer. It is pure: it reads the order and
// never modifies anything.
//
// Key responsibilities:
//   - Keeping both legs of a parallel order visible until both finish
//   - Restricting returned orders to the staff member who worked them
//   - Hiding claimed mid-flight orders from everyone but their owner
//
// Business rules, checked in priority order:
//  1. An order with both legs in flight is visible to both the kitchen and
//     the design station unconditionally.
//  2. A queued order that was never sent back is visible to its matching
//     station for anyone (first-come claim model).
//  3. A queued order that was sent back is visible to its matching station
//     only for the staff member recorded as its previous owner; with no
//     recorded owner it degrades to visible for anyone.
//  4. A processing or ready order is visible to its matching station only
//     for the owner (exclusive working set); unset owner degrades the same
//     way.
//  5. Everything else is invisible to the station.
//
// An unresolved viewer (nil) skips every owner check and fails open: work is
// never hidden because of a transient auth race.
type VisibilityPolicy struct{}

// NewVisibilityPolicy creates a new VisibilityPolicy instance.
func NewVisibilityPolicy() VisibilityPolicy {
	return VisibilityPolicy{}
}

// ShouldShow reports whether the order appears in the station's queue for the
// given viewer. A nil viewer means auth has not resolved yet and all owner
// checks are skipped.
func (v VisibilityPolicy) ShouldShow(o *order.Order, station order.Station, viewer *kernel.StaffID) bool {
	if o == nil || o.Validate() != nil {
		return false
	}
	if station.Validate() != nil {
		return false
	}

	if station == order.StationFinalCheck {
		return v.showAtFinalCheck(o, viewer)
	}

	// Rule 1: both legs open, both stations watch.
	if o.Status() == order.ParallelProcessing {
		return true
	}

	leg, ok := station.Leg()
	if !ok {
		return false
	}
	status := o.StationStatus(station)

	switch {
	case status == leg.QueueStatus():
		if !o.IsSentBack() {
			// Rule 2: anyone at the station may pick it up.
			return true
		}
		// Rule 3: a returned order goes back to whoever worked it.
		return v.ownerAllows(o.OwnerFor(station), viewer)
	case status == station.ProcessingStatus() || status == leg.ReadyStatus():
		// Rule 4: exclusive working set.
		return v.ownerAllows(o.OwnerFor(station), viewer)
	default:
		// Rule 5: final check and terminal statuses belong elsewhere.
		return false
	}
}

// showAtFinalCheck applies the working-set rules to the final check station:
// the queue is open to anyone, processing is exclusive to the claiming
// reviewer, and completed orders drop off.
func (v VisibilityPolicy) showAtFinalCheck(o *order.Order, viewer *kernel.StaffID) bool {
	switch o.Status() {
	case order.FinalCheckQueue:
		return true
	case order.FinalCheckProcessing:
		return v.ownerAllows(o.FinalCheckBy(), viewer)
	default:
		return false
	}
}

// ownerAllows implements the shared owner check: unset owner or unresolved
// viewer fails open, otherwise the viewer must be the recorded owner.
func (v VisibilityPolicy) ownerAllows(owner, viewer *kernel.StaffID) bool {
	if owner == nil || viewer == nil {
		return true
	}
	return owner.IsEqual(*viewer)
}
