package amqp

import (
	"fulfillment/internal/adapters/out/orderstore"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// NewOrderEvent is the payload of a NEW_ORDER message: the full order record
// in the order store's wire shape.
type NewOrderEvent struct {
	Order orderstore.OrderDTO `json:"order"`
}

// OrderUpdateEvent is the payload of an ORDER_STATUS_UPDATE message. All
// mutable fields are pointers: absent fields leave the local record
// untouched when the patch is merged.
type OrderUpdateEvent struct {
	OrderID string `json:"orderId"`

	Status             *string                      `json:"status,omitempty"`
	ParallelProcessing *orderstore.ParallelStateDTO `json:"parallelProcessing,omitempty"`

	KitchenByID    *string `json:"kitchenById,omitempty"`
	DesignByID     *string `json:"designById,omitempty"`
	FinalCheckByID *string `json:"finalCheckById,omitempty"`

	IsSentBack *bool                     `json:"isSentBack,omitempty"`
	ReturnInfo *orderstore.ReturnInfoDTO `json:"returnInfo,omitempty"`

	KitchenNotes    *string `json:"kitchenNotes,omitempty"`
	DesignNotes     *string `json:"designNotes,omitempty"`
	FinalCheckNotes *string `json:"finalCheckNotes,omitempty"`
}

// ToPatch converts the event's set fields into a domain patch.
func (e OrderUpdateEvent) ToPatch() (order.Patch, error) {
	var patch order.Patch

	if e.Status != nil {
		status, err := order.StatusFromString(*e.Status)
		if err != nil {
			return order.Patch{}, err
		}
		patch.Status = &status
	}
	if e.ParallelProcessing != nil {
		parallel, err := e.ParallelProcessing.ToDomain()
		if err != nil {
			return order.Patch{}, err
		}
		patch.Parallel = &parallel
	}

	var err error
	if patch.KitchenBy, err = staffID(e.KitchenByID); err != nil {
		return order.Patch{}, err
	}
	if patch.DesignBy, err = staffID(e.DesignByID); err != nil {
		return order.Patch{}, err
	}
	if patch.FinalCheckBy, err = staffID(e.FinalCheckByID); err != nil {
		return order.Patch{}, err
	}

	patch.IsSentBack = e.IsSentBack
	if e.ReturnInfo != nil {
		returnInfo, retErr := e.ReturnInfo.ToDomain()
		if retErr != nil {
			return order.Patch{}, retErr
		}
		patch.ReturnInfo = &returnInfo
	}

	patch.KitchenNotes = e.KitchenNotes
	patch.DesignNotes = e.DesignNotes
	patch.FinalCheckNotes = e.FinalCheckNotes
	return patch, nil
}

func staffID(raw *string) (*kernel.StaffID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := kernel.NewStaffID(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
