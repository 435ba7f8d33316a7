package orderstore

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// OrderDTO is the full order record as the order store serializes it. The
// same shape rides on NEW_ORDER transport events, so the event adapter reuses
// these types.
type OrderDTO struct {
	ID           string        `json:"id"`
	OrderNumber  string        `json:"orderNumber"`
	CustomerName string        `json:"customerName"`
	CreatedAt    time.Time     `json:"createdAt"`
	Items        []LineItemDTO `json:"items,omitempty"`

	Status             string            `json:"status"`
	ParallelProcessing *ParallelStateDTO `json:"parallelProcessing,omitempty"`
	DeliveryMethod     string            `json:"deliveryMethod"`

	PickupDate       *time.Time `json:"pickupDate,omitempty"`
	PickupTimeSlot   string     `json:"pickupTimeSlot,omitempty"`
	DeliveryDate     *time.Time `json:"deliveryDate,omitempty"`
	DeliveryTimeSlot string     `json:"deliveryTimeSlot,omitempty"`

	RequiresKitchen bool `json:"requiresKitchen"`
	RequiresDesign  bool `json:"requiresDesign"`

	KitchenByID    *string `json:"kitchenById,omitempty"`
	DesignByID     *string `json:"designById,omitempty"`
	FinalCheckByID *string `json:"finalCheckById,omitempty"`

	IsSentBack bool           `json:"isSentBack"`
	ReturnInfo *ReturnInfoDTO `json:"returnInfo,omitempty"`

	KitchenNotes    string `json:"kitchenNotes,omitempty"`
	DesignNotes     string `json:"designNotes,omitempty"`
	FinalCheckNotes string `json:"finalCheckNotes,omitempty"`
}

// LineItemDTO is one product line as the store serializes it.
type LineItemDTO struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Quantity     int                     `json:"quantity"`
	Variations   map[string]VariationDTO `json:"variations,omitempty"`
	KitchenNotes string                  `json:"kitchenNotes,omitempty"`
	DesignNotes  string                  `json:"designNotes,omitempty"`
	CustomImages []CustomImageDTO        `json:"customImages,omitempty"`
	Category     string                  `json:"category,omitempty"`
}

// VariationDTO is one selected attribute value.
type VariationDTO struct {
	Value      string `json:"value"`
	Annotation string `json:"annotation,omitempty"`
}

// CustomImageDTO is one customer-supplied reference image.
type CustomImageDTO struct {
	URL     string `json:"url"`
	Comment string `json:"comment,omitempty"`
}

// ParallelStateDTO is the per-leg sub-state of an order requiring both legs.
type ParallelStateDTO struct {
	KitchenStatus string `json:"kitchenStatus"`
	DesignStatus  string `json:"designStatus"`
}

// ReturnInfoDTO is the send-back audit annotation.
type ReturnInfoDTO struct {
	ReturnedFromFinalCheck bool      `json:"returnedFromFinalCheck"`
	ReturnReason           string    `json:"returnReason"`
	ReturnDestination      string    `json:"returnDestination"`
	ReturnedAt             time.Time `json:"returnedAt"`
}

// StatusChangeDTO is the body of a status submission to the store.
type StatusChangeDTO struct {
	Status             string            `json:"status"`
	Station            string            `json:"station"`
	ClaimedByID        *string           `json:"claimedById,omitempty"`
	TeamNotes          string            `json:"teamNotes,omitempty"`
	ReturnRequest      *ReturnRequestDTO `json:"returnToKitchenOrDesign,omitempty"`
	ParallelProcessing *ParallelStateDTO `json:"parallelProcessing,omitempty"`
}

// ReturnRequestDTO carries the send-back parameters of a status submission.
type ReturnRequestDTO struct {
	Destination string `json:"destination"`
	Reason      string `json:"reason"`
}

// ToDomain reconstructs the order aggregate from the wire record.
func (d OrderDTO) ToDomain() (*order.Order, error) {
	id, err := kernel.NewOrderID(d.ID)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(d.Status)
	if err != nil {
		return nil, err
	}
	deliveryMethod, err := order.DeliveryMethodFromString(d.DeliveryMethod)
	if err != nil {
		return nil, err
	}

	params := order.RestoreOrderParams{
		ID:               id,
		OrderNumber:      d.OrderNumber,
		CustomerName:     d.CustomerName,
		CreatedAt:        d.CreatedAt,
		Items:            lineItemsToDomain(d.Items),
		Status:           status,
		DeliveryMethod:   deliveryMethod,
		PickupDate:       d.PickupDate,
		PickupTimeSlot:   d.PickupTimeSlot,
		DeliveryDate:     d.DeliveryDate,
		DeliveryTimeSlot: d.DeliveryTimeSlot,
		RequiresKitchen:  d.RequiresKitchen,
		RequiresDesign:   d.RequiresDesign,
		IsSentBack:       d.IsSentBack,
		KitchenNotes:     d.KitchenNotes,
		DesignNotes:      d.DesignNotes,
		FinalCheckNotes:  d.FinalCheckNotes,
	}

	if params.KitchenBy, err = staffIDToDomain(d.KitchenByID); err != nil {
		return nil, err
	}
	if params.DesignBy, err = staffIDToDomain(d.DesignByID); err != nil {
		return nil, err
	}
	if params.FinalCheckBy, err = staffIDToDomain(d.FinalCheckByID); err != nil {
		return nil, err
	}
	if d.ParallelProcessing != nil {
		parallel, parErr := d.ParallelProcessing.ToDomain()
		if parErr != nil {
			return nil, parErr
		}
		params.Parallel = &parallel
	}
	if d.ReturnInfo != nil {
		returnInfo, retErr := d.ReturnInfo.ToDomain()
		if retErr != nil {
			return nil, retErr
		}
		params.ReturnInfo = &returnInfo
	}

	return order.RestoreOrder(params)
}

// ToDomain reconstructs the per-leg sub-state from the wire record.
func (d ParallelStateDTO) ToDomain() (order.ParallelState, error) {
	kitchen, err := order.StatusFromString(d.KitchenStatus)
	if err != nil {
		return order.ParallelState{}, err
	}
	design, err := order.StatusFromString(d.DesignStatus)
	if err != nil {
		return order.ParallelState{}, err
	}
	return order.NewParallelState(kitchen, design)
}

// ToDomain reconstructs the send-back annotation from the wire record.
func (d ReturnInfoDTO) ToDomain() (order.ReturnInfo, error) {
	destination, err := order.LegFromString(d.ReturnDestination)
	if err != nil {
		return order.ReturnInfo{}, err
	}
	return order.RestoreReturnInfo(d.ReturnedFromFinalCheck, destination, d.ReturnReason, d.ReturnedAt)
}

// NewStatusChangeDTO converts a status change submission to its wire shape.
func NewStatusChangeDTO(change ports.StatusChange) StatusChangeDTO {
	dto := StatusChangeDTO{
		Status:    change.Status.String(),
		Station:   change.Station.String(),
		TeamNotes: change.TeamNotes,
	}
	if change.ClaimedBy != nil {
		id := change.ClaimedBy.String()
		dto.ClaimedByID = &id
	}
	if change.Parallel != nil {
		dto.ParallelProcessing = &ParallelStateDTO{
			KitchenStatus: change.Parallel.Kitchen().String(),
			DesignStatus:  change.Parallel.Design().String(),
		}
	}
	if change.ReturnDestination != nil {
		dto.ReturnRequest = &ReturnRequestDTO{
			Destination: change.ReturnDestination.String(),
			Reason:      change.ReturnReason,
		}
	}
	return dto
}

func staffIDToDomain(raw *string) (*kernel.StaffID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := kernel.NewStaffID(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func lineItemsToDomain(items []LineItemDTO) []order.LineItem {
	if items == nil {
		return nil
	}
	domain := make([]order.LineItem, 0, len(items))
	for _, item := range items {
		domain = append(domain, item.toDomain())
	}
	return domain
}

func (d LineItemDTO) toDomain() order.LineItem {
	li := order.LineItem{
		ID:           d.ID,
		Name:         d.Name,
		Quantity:     d.Quantity,
		KitchenNotes: d.KitchenNotes,
		DesignNotes:  d.DesignNotes,
		Category:     d.Category,
	}
	if d.Variations != nil {
		li.Variations = make(map[string]order.Variation, len(d.Variations))
		for name, v := range d.Variations {
			li.Variations[name] = order.Variation{Value: v.Value, Annotation: v.Annotation}
		}
	}
	if d.CustomImages != nil {
		li.CustomImages = make([]order.CustomImage, 0, len(d.CustomImages))
		for _, img := range d.CustomImages {
			li.CustomImages = append(li.CustomImages, order.CustomImage{URL: img.URL, Comment: img.Comment})
		}
	}
	return li
}
