package order

import (
	"fulfillment/internal/core/domain/model/kernel"
)

// Patch is a typed partial update delivered by an ORDER_STATUS_UPDATE event.
// Nil fields are absent from the update and leave the local record untouched;
// set fields overwrite. Patches carry only the mutable fulfillment sub-state:
// identity, line items and checkout attributes never change after creation
// and are refreshed by full snapshots instead.
//
// Applying the same patch twice yields the same record as applying it once.
type Patch struct {
	Status   *Status
	Parallel *ParallelState

	KitchenBy    *kernel.StaffID
	DesignBy     *kernel.StaffID
	FinalCheckBy *kernel.StaffID

	IsSentBack *bool
	ReturnInfo *ReturnInfo

	KitchenNotes    *string
	DesignNotes     *string
	FinalCheckNotes *string
}

// Validate checks the set fields of the patch.
func (p Patch) Validate() error {
	if p.Status != nil {
		if err := p.Status.Validate(); err != nil {
			return err
		}
	}
	if p.Parallel != nil {
		if err := p.Parallel.Validate(); err != nil {
			return err
		}
	}
	for _, owner := range []*kernel.StaffID{p.KitchenBy, p.DesignBy, p.FinalCheckBy} {
		if owner == nil {
			continue
		}
		if err := owner.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsEmpty reports whether the patch carries no fields at all.
func (p Patch) IsEmpty() bool {
	return p.Status == nil && p.Parallel == nil &&
		p.KitchenBy == nil && p.DesignBy == nil && p.FinalCheckBy == nil &&
		p.IsSentBack == nil && p.ReturnInfo == nil &&
		p.KitchenNotes == nil && p.DesignNotes == nil && p.FinalCheckNotes == nil
}

// ApplyPatch merges a partial update into the order, returning a new *Order.
// The receiver is never modified. The store is authoritative for the merged
// values: no local join or transition logic re-runs here.
func (o *Order) ApplyPatch(p Patch) (*Order, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c := o.clone()
	if p.Status != nil {
		c.status = *p.Status
	}
	if p.Parallel != nil {
		parallel := *p.Parallel
		c.parallel = &parallel
	}
	if p.KitchenBy != nil {
		owner := *p.KitchenBy
		c.kitchenBy = &owner
	}
	if p.DesignBy != nil {
		owner := *p.DesignBy
		c.designBy = &owner
	}
	if p.FinalCheckBy != nil {
		owner := *p.FinalCheckBy
		c.finalCheckBy = &owner
	}
	if p.IsSentBack != nil {
		c.isSentBack = *p.IsSentBack
	}
	if p.ReturnInfo != nil {
		returnInfo := *p.ReturnInfo
		c.returnInfo = &returnInfo
	}
	if p.KitchenNotes != nil {
		c.kitchenNotes = *p.KitchenNotes
	}
	if p.DesignNotes != nil {
		c.designNotes = *p.DesignNotes
	}
	if p.FinalCheckNotes != nil {
		c.finalCheckNotes = *p.FinalCheckNotes
	}
	return c, nil
}
