package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
)

// Error is the error envelope returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// QueueEntry is one order in a station's queue view.
type QueueEntry struct {
	ID           string    `json:"id"`
	OrderNumber  string    `json:"orderNumber"`
	CustomerName string    `json:"customerName"`
	Status       string    `json:"status"`
	DueAt        time.Time `json:"dueAt"`
	ClaimedByID  *string   `json:"claimedById,omitempty"`

	IsSentBack   bool   `json:"isSentBack"`
	ReturnReason string `json:"returnReason,omitempty"`

	Items []QueueEntryItem `json:"items,omitempty"`

	KitchenNotes    string `json:"kitchenNotes,omitempty"`
	DesignNotes     string `json:"designNotes,omitempty"`
	FinalCheckNotes string `json:"finalCheckNotes,omitempty"`
}

// QueueEntryItem is one product line of a queue entry.
type QueueEntryItem struct {
	ID           string                         `json:"id"`
	Name         string                         `json:"name"`
	Quantity     int                            `json:"quantity"`
	Variations   map[string]QueueEntryVariation `json:"variations,omitempty"`
	KitchenNotes string                         `json:"kitchenNotes,omitempty"`
	DesignNotes  string                         `json:"designNotes,omitempty"`
	Category     string                         `json:"category,omitempty"`
}

// QueueEntryVariation is one selected attribute value of a product line.
type QueueEntryVariation struct {
	Value      string `json:"value"`
	Annotation string `json:"annotation,omitempty"`
}

// TransitionRequest is the body of a transition submission.
type TransitionRequest struct {
	Action  string `json:"action"`
	Station string `json:"station"`
	StaffID string `json:"staffId"`
	Notes   string `json:"notes,omitempty"`

	ReturnDestination string `json:"returnDestination,omitempty"`
	ReturnReason      string `json:"returnReason,omitempty"`
}

// newQueueEntry converts a projection row to its wire shape.
func newQueueEntry(row queries.GetOrdersByStageQueryResponse) QueueEntry {
	entry := QueueEntry{
		ID:              row.ID.String(),
		OrderNumber:     row.OrderNumber,
		CustomerName:    row.CustomerName,
		Status:          row.Status.String(),
		DueAt:           row.DueAt,
		IsSentBack:      row.IsSentBack,
		ReturnReason:    row.ReturnReason,
		KitchenNotes:    row.KitchenNotes,
		DesignNotes:     row.DesignNotes,
		FinalCheckNotes: row.FinalCheckNotes,
	}
	if row.ClaimedBy != nil {
		id := row.ClaimedBy.String()
		entry.ClaimedByID = &id
	}
	for _, item := range row.Items {
		wireItem := QueueEntryItem{
			ID:           item.ID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			KitchenNotes: item.KitchenNotes,
			DesignNotes:  item.DesignNotes,
			Category:     item.Category,
		}
		if item.Variations != nil {
			wireItem.Variations = make(map[string]QueueEntryVariation, len(item.Variations))
			for name, v := range item.Variations {
				wireItem.Variations[name] = QueueEntryVariation{Value: v.Value, Annotation: v.Annotation}
			}
		}
		entry.Items = append(entry.Items, wireItem)
	}
	return entry
}
