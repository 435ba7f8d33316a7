package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrNotOrderOwner is returned when a staff member attempts an action on
	// an order leg that another staff member has claimed.
	ErrNotOrderOwner = errors.New("order is claimed by another staff member")

	// ErrNoLegRequired is returned when an order requires neither leg.
	ErrNoLegRequired = errors.New("order must require at least one fulfillment leg")
)

// Order is the aggregate root for one customer order as seen by a fulfillment
// station. It carries the canonical record shape: identity, line items, the
// status machine (including the parallel per-leg sub-state), staff claims,
// send-back annotations and per-stage team notes.
//
// Order follows these invariants:
//   - it must have a valid store-issued identifier
//   - it must require at least one fulfillment leg
//   - the parallel sub-state exists only while both legs are required
//   - status transitions follow the rules of the Status state machine
//
// Every mutating method is copy-on-write: it validates the request against
// the receiver, then returns a new *Order with the change applied. The
// receiver is never modified, so snapshots handed to concurrent readers stay
// consistent. An illegal request returns an error and no new value.
type Order struct {
	id           kernel.OrderID
	orderNumber  string
	customerName string
	createdAt    time.Time
	items        []LineItem

	status         Status
	parallel       *ParallelState
	deliveryMethod DeliveryMethod

	pickupDate       *time.Time
	pickupTimeSlot   string
	deliveryDate     *time.Time
	deliveryTimeSlot string

	requiresKitchen bool
	requiresDesign  bool

	// kitchenBy is set when the kitchen leg enters processing and is never
	// cleared by a later stage; it persists for audit and visibility.
	// designBy and finalCheckBy follow the same rule for their stages.
	kitchenBy    *kernel.StaffID
	designBy     *kernel.StaffID
	finalCheckBy *kernel.StaffID

	isSentBack bool
	returnInfo *ReturnInfo

	kitchenNotes    string
	designNotes     string
	finalCheckNotes string

	guard guard.ConstructorGuard
}

// NewOrder creates an order in its checkout shape. The initial status is
// derived from the required legs: kitchen-only orders start in KitchenQueue,
// design-only orders in DesignQueue, and orders requiring both legs start in
// the ParallelProcessing macro-status with both legs queued.
func NewOrder(
	id kernel.OrderID,
	orderNumber string,
	customerName string,
	createdAt time.Time,
	requiresKitchen bool,
	requiresDesign bool,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if !requiresKitchen && !requiresDesign {
		return nil, ErrNoLegRequired
	}

	o := &Order{
		id:              id,
		orderNumber:     orderNumber,
		customerName:    customerName,
		createdAt:       createdAt,
		requiresKitchen: requiresKitchen,
		requiresDesign:  requiresDesign,
		guard:           guard.NewConstructorGuard(),
	}

	switch {
	case requiresKitchen && requiresDesign:
		parallel, err := NewParallelState(KitchenQueue, DesignQueue)
		if err != nil {
			return nil, err
		}
		o.status = ParallelProcessing
		o.parallel = &parallel
	case requiresKitchen:
		o.status = KitchenQueue
	default:
		o.status = DesignQueue
	}

	return o, nil
}

// RestoreOrderParams carries the full persisted shape of an order for
// reconstruction from the store or the event transport.
type RestoreOrderParams struct {
	ID           kernel.OrderID
	OrderNumber  string
	CustomerName string
	CreatedAt    time.Time
	Items        []LineItem

	Status         Status
	Parallel       *ParallelState
	DeliveryMethod DeliveryMethod

	PickupDate       *time.Time
	PickupTimeSlot   string
	DeliveryDate     *time.Time
	DeliveryTimeSlot string

	RequiresKitchen bool
	RequiresDesign  bool

	KitchenBy    *kernel.StaffID
	DesignBy     *kernel.StaffID
	FinalCheckBy *kernel.StaffID

	IsSentBack bool
	ReturnInfo *ReturnInfo

	KitchenNotes    string
	DesignNotes     string
	FinalCheckNotes string
}

// RestoreOrder reconstructs an order aggregate from persisted data,
// re-validating the invariants the store is supposed to uphold.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if !p.RequiresKitchen && !p.RequiresDesign {
		return nil, ErrNoLegRequired
	}
	if p.Parallel != nil {
		if !p.RequiresKitchen || !p.RequiresDesign {
			return nil, errs.NewValueIsInvalidError("parallel state on an order not requiring both legs")
		}
		if err := p.Parallel.Validate(); err != nil {
			return nil, err
		}
	}
	for _, owner := range []*kernel.StaffID{p.KitchenBy, p.DesignBy, p.FinalCheckBy} {
		if owner == nil {
			continue
		}
		if err := owner.Validate(); err != nil {
			return nil, err
		}
	}

	o := &Order{
		id:               p.ID,
		orderNumber:      p.OrderNumber,
		customerName:     p.CustomerName,
		createdAt:        p.CreatedAt,
		items:            cloneLineItems(p.Items),
		status:           p.Status,
		deliveryMethod:   p.DeliveryMethod,
		pickupDate:       p.PickupDate,
		pickupTimeSlot:   p.PickupTimeSlot,
		deliveryDate:     p.DeliveryDate,
		deliveryTimeSlot: p.DeliveryTimeSlot,
		requiresKitchen:  p.RequiresKitchen,
		requiresDesign:   p.RequiresDesign,
		kitchenBy:        p.KitchenBy,
		designBy:         p.DesignBy,
		finalCheckBy:     p.FinalCheckBy,
		isSentBack:       p.IsSentBack,
		kitchenNotes:     p.KitchenNotes,
		designNotes:      p.DesignNotes,
		finalCheckNotes:  p.FinalCheckNotes,
		guard:            guard.NewConstructorGuard(),
	}
	if p.Parallel != nil {
		parallel := *p.Parallel
		o.parallel = &parallel
	}
	if p.ReturnInfo != nil {
		returnInfo := *p.ReturnInfo
		o.returnInfo = &returnInfo
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their store-issued identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's store-issued identifier.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// OrderNumber returns the human-facing order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerName returns the customer the order belongs to.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CreatedAt returns the instant the order was created at checkout.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Items returns the order's line items. The slice is owned by the aggregate
// and must be treated as read-only.
func (o *Order) Items() []LineItem {
	return o.items
}

// Status returns the order's macro status. For orders with both legs in
// flight this is the ParallelProcessing projection; the per-leg truth lives
// in Parallel().
func (o *Order) Status() Status {
	return o.status
}

// Parallel returns the per-leg state record, or nil for single-leg orders.
func (o *Order) Parallel() *ParallelState {
	return o.parallel
}

// DeliveryMethod returns how the customer receives the order.
func (o *Order) DeliveryMethod() DeliveryMethod {
	return o.deliveryMethod
}

// PickupDate returns the committed pickup date, if any.
func (o *Order) PickupDate() *time.Time {
	return o.pickupDate
}

// PickupTimeSlot returns the raw pickup time-slot string from the store.
func (o *Order) PickupTimeSlot() string {
	return o.pickupTimeSlot
}

// DeliveryDate returns the committed delivery date, if any.
func (o *Order) DeliveryDate() *time.Time {
	return o.deliveryDate
}

// DeliveryTimeSlot returns the raw delivery time-slot string from the store.
func (o *Order) DeliveryTimeSlot() string {
	return o.deliveryTimeSlot
}

// RequiresKitchen reports whether the order needs the kitchen leg.
func (o *Order) RequiresKitchen() bool {
	return o.requiresKitchen
}

// RequiresDesign reports whether the order needs the design leg.
func (o *Order) RequiresDesign() bool {
	return o.requiresDesign
}

// KitchenBy returns the staff member who claimed the kitchen leg, if any.
func (o *Order) KitchenBy() *kernel.StaffID {
	return o.kitchenBy
}

// DesignBy returns the staff member who claimed the design leg, if any.
func (o *Order) DesignBy() *kernel.StaffID {
	return o.designBy
}

// FinalCheckBy returns the reviewer who claimed the final check, if any.
func (o *Order) FinalCheckBy() *kernel.StaffID {
	return o.finalCheckBy
}

// IsSentBack reports whether final check has ever returned the order.
func (o *Order) IsSentBack() bool {
	return o.isSentBack
}

// ReturnInfo returns the send-back audit annotation, if any.
func (o *Order) ReturnInfo() *ReturnInfo {
	return o.returnInfo
}

// KitchenNotes returns the kitchen team notes.
func (o *Order) KitchenNotes() string {
	return o.kitchenNotes
}

// DesignNotes returns the design team notes.
func (o *Order) DesignNotes() string {
	return o.designNotes
}

// FinalCheckNotes returns the final check team notes.
func (o *Order) FinalCheckNotes() string {
	return o.finalCheckNotes
}

// StationStatus returns the order's effective status as seen from a station.
// For an order with both legs in flight the kitchen and design stations see
// their own leg's status; everyone else sees the macro status.
func (o *Order) StationStatus(station Station) Status {
	if o.status == ParallelProcessing && o.parallel != nil {
		if leg, ok := station.Leg(); ok {
			return o.parallel.Leg(leg)
		}
	}
	return o.status
}

// OwnerFor returns the staff member who claimed the order's work at the given
// station, or nil if unclaimed.
func (o *Order) OwnerFor(station Station) *kernel.StaffID {
	switch station {
	case StationKitchen:
		return o.kitchenBy
	case StationDesign:
		return o.designBy
	case StationFinalCheck:
		return o.finalCheckBy
	default:
		return nil
	}
}

// DueAt returns the committed fulfillment instant used to sort station
// queues: the pickup or delivery date combined with the start bound of the
// time slot. Orders lacking a date, or carrying a slot string the parser
// cannot understand, fall back to their creation instant so they never
// collapse onto a sentinel value.
func (o *Order) DueAt() time.Time {
	var (
		date *time.Time
		slot string
	)
	switch o.deliveryMethod {
	case Pickup:
		date, slot = o.pickupDate, o.pickupTimeSlot
	case Delivery:
		date, slot = o.deliveryDate, o.deliveryTimeSlot
	default:
		return o.createdAt
	}

	if date == nil {
		return o.createdAt
	}
	timeSlot, err := kernel.ParseTimeSlot(slot)
	if err != nil {
		// Fail closed: never guess at an ambiguous slot string.
		return o.createdAt
	}
	return timeSlot.At(*date)
}

// StartProcessing claims the order's work at the given station for the given
// staff member and moves it to the matching processing status.
//
// Legal origins are the station's queue status — including FinalCheckQueue,
// so an order that came back from a send-back round trip can be re-reviewed —
// and, for orders carrying a parallel sub-state, the station's leg queue
// inside that record. The leg path covers rework too: after a send-back the
// macro status is the destination leg's queue status, but the per-leg record
// stays authoritative and the macro mirrors the reworked leg.
//
// Claim semantics are advisory: the first staff member to reach the store
// wins; a concurrent loser's optimistic copy is rolled back upstream.
func (o *Order) StartProcessing(station Station, staff kernel.StaffID) (*Order, error) {
	if err := errors.Join(station.Validate(), staff.Validate()); err != nil {
		return nil, err
	}

	if o.parallel != nil {
		if leg, ok := station.Leg(); ok {
			next, err := o.parallel.Leg(leg).StartProcessing()
			if err != nil {
				return nil, err
			}
			c := o.clone()
			parallel := o.parallel.withLeg(leg, next)
			c.parallel = &parallel
			if c.status != ParallelProcessing {
				c.status = next
			}
			c.setOwner(station, staff)
			return c, nil
		}
	}

	if o.status != station.QueueStatus() {
		return nil, newInvalidTransitionError("start processing", o.status)
	}
	next, err := o.status.StartProcessing()
	if err != nil {
		return nil, err
	}

	c := o.clone()
	c.status = next
	c.setOwner(station, staff)
	return c, nil
}

// MarkReady finishes the staff member's work at the given station. Only the
// claiming staff member may mark their leg ready; an unset owner degrades to
// allowing anyone.
//
// For an order carrying a parallel sub-state the leg is marked ready inside
// that record and the join condition is checked: when both legs are ready the
// order advances to FinalCheckQueue in the same step. That includes the
// send-back rework path — a returned leg that reaches ready again rejoins
// against the other leg's standing ready state. The join fires only on the
// transition itself; a duplicate ready tap on a leg that is already ready is
// a no-op, so the join cannot double-fire.
//
// At final check MarkReady completes the order.
func (o *Order) MarkReady(station Station, staff kernel.StaffID, notes string) (*Order, error) {
	if err := errors.Join(station.Validate(), staff.Validate()); err != nil {
		return nil, err
	}
	if owner := o.OwnerFor(station); owner != nil && !owner.IsEqual(staff) {
		return nil, ErrNotOrderOwner
	}

	if o.parallel != nil {
		if leg, ok := station.Leg(); ok {
			current := o.parallel.Leg(leg)
			if current == leg.ReadyStatus() {
				return o, nil
			}
			next, err := current.MarkReady()
			if err != nil {
				return nil, err
			}
			c := o.clone()
			parallel := o.parallel.withLeg(leg, next)
			c.parallel = &parallel
			c.setStationNotes(station, notes)
			switch {
			case parallel.BothReady():
				c.status = FinalCheckQueue
			case c.status != ParallelProcessing:
				c.status = next
			}
			return c, nil
		}
	}

	if o.status != station.ProcessingStatus() {
		return nil, newInvalidTransitionError("mark ready", o.status)
	}
	next, err := o.status.MarkReady()
	if err != nil {
		return nil, err
	}

	c := o.clone()
	c.status = next
	c.setStationNotes(station, notes)
	return c, nil
}

// SendToDesign hands a finished kitchen leg over to the design stage on an
// order that works its legs sequentially. It is legal only from KitchenReady
// on an order that also requires design and has no parallel sub-state (a
// parallel order's design leg runs on its own and joins instead).
// The notes carry forward as kitchen team notes.
func (o *Order) SendToDesign(notes string) (*Order, error) {
	if o.status != KitchenReady || !o.requiresDesign || o.parallel != nil {
		return nil, newInvalidTransitionError("send to design", o.status)
	}

	c := o.clone()
	c.status = DesignQueue
	c.setStationNotes(StationKitchen, notes)
	return c, nil
}

// SendToFinalCheck advances a finished order into the final check queue. It
// is legal from DesignReady, and from KitchenReady when the order does not
// require design (a sequential order with an open design leg must go through
// SendToDesign; a parallel order joins on its own). The notes carry forward
// as the finishing station's team notes.
func (o *Order) SendToFinalCheck(notes string) (*Order, error) {
	switch {
	case o.status == DesignReady:
		c := o.clone()
		c.status = FinalCheckQueue
		c.setStationNotes(StationDesign, notes)
		return c, nil
	case o.status == KitchenReady && !o.requiresDesign:
		c := o.clone()
		c.status = FinalCheckQueue
		c.setStationNotes(StationKitchen, notes)
		return c, nil
	default:
		return nil, newInvalidTransitionError("send to final check", o.status)
	}
}

// SendBack returns an order from final check to the given leg's queue for
// rework, recording the audit annotation. It is legal only from
// FinalCheckQueue or FinalCheckProcessing.
//
// Existing claims are preserved: the visibility rules use the recorded owner
// to restrict who may pick the returned order back up. For an order with a
// parallel sub-state only the destination leg is re-opened; the other leg's
// ready state stands.
func (o *Order) SendBack(destination Leg, reason string, returnedAt time.Time) (*Order, error) {
	if !o.status.IsFinalCheck() {
		return nil, newInvalidTransitionError("send back", o.status)
	}
	returnInfo, err := NewReturnInfo(destination, reason, returnedAt)
	if err != nil {
		return nil, err
	}

	c := o.clone()
	c.status = destination.QueueStatus()
	c.isSentBack = true
	c.returnInfo = &returnInfo
	if o.parallel != nil {
		parallel := o.parallel.withLeg(destination, destination.QueueStatus())
		c.parallel = &parallel
	}
	return c, nil
}

// clone returns a deep copy of the order. Line items are copied so that no
// two snapshots alias mutable data; value-object pointers are re-boxed.
func (o *Order) clone() *Order {
	c := *o
	c.items = cloneLineItems(o.items)
	if o.parallel != nil {
		parallel := *o.parallel
		c.parallel = &parallel
	}
	if o.returnInfo != nil {
		returnInfo := *o.returnInfo
		c.returnInfo = &returnInfo
	}
	return &c
}

// setOwner records the claim for the station's stage. Claims are never
// cleared by later stages.
func (o *Order) setOwner(station Station, staff kernel.StaffID) {
	switch station {
	case StationKitchen:
		o.kitchenBy = &staff
	case StationDesign:
		o.designBy = &staff
	case StationFinalCheck:
		o.finalCheckBy = &staff
	}
}

// setStationNotes stores team notes for the station's stage, keeping the
// existing notes when the new value is empty.
func (o *Order) setStationNotes(station Station, notes string) {
	if notes == "" {
		return
	}
	switch station {
	case StationKitchen:
		o.kitchenNotes = notes
	case StationDesign:
		o.designNotes = notes
	case StationFinalCheck:
		o.finalCheckNotes = notes
	}
}
