// Package memstore provides the in-memory implementation of the station's
// working set. The set holds immutable order snapshots behind an RWMutex;
// writers replace records wholesale and readers receive copied slices, so no
// caller ever observes a half-applied update.
package memstore

import (
	"context"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var _ ports.WorkingSet = (*WorkingSet)(nil)

// WorkingSet is the station-local order set. Insertion order is preserved so
// queue projections have a deterministic tie-break for equal deadlines.
type WorkingSet struct {
	mu     sync.RWMutex
	byID   map[string]*order.Order
	idents []string
}

// NewWorkingSet creates an empty working set.
func NewWorkingSet() *WorkingSet {
	return &WorkingSet{
		byID: make(map[string]*order.Order),
	}
}

// Upsert inserts the order or replaces the stored record with the same id.
// A replacement keeps the original insertion position.
func (ws *WorkingSet) Upsert(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	key := aggregate.ID().String()
	if _, ok := ws.byID[key]; !ok {
		ws.idents = append(ws.idents, key)
	}
	ws.byID[key] = aggregate
	return nil
}

// Remove drops the order with the given id. Removing an absent id is a no-op.
func (ws *WorkingSet) Remove(_ context.Context, id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	key := id.String()
	if _, ok := ws.byID[key]; !ok {
		return nil
	}
	delete(ws.byID, key)
	for i, ident := range ws.idents {
		if ident == key {
			ws.idents = append(ws.idents[:i], ws.idents[i+1:]...)
			break
		}
	}
	return nil
}

// Get retrieves an order by id.
func (ws *WorkingSet) Get(_ context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	ws.mu.RLock()
	defer ws.mu.RUnlock()

	aggregate, ok := ws.byID[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	return aggregate, nil
}

// GetAll returns a snapshot slice of every held order in insertion order.
// The slice is owned by the caller; the stored records are immutable.
func (ws *WorkingSet) GetAll(_ context.Context) ([]*order.Order, error) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()

	aggregates := make([]*order.Order, 0, len(ws.idents))
	for _, ident := range ws.idents {
		aggregates = append(aggregates, ws.byID[ident])
	}
	return aggregates, nil
}

// ReplaceAll atomically swaps the entire set for the given orders, resetting
// insertion order to the slice order.
func (ws *WorkingSet) ReplaceAll(_ context.Context, aggregates []*order.Order) error {
	for _, aggregate := range aggregates {
		if err := aggregate.Validate(); err != nil {
			return err
		}
	}

	byID := make(map[string]*order.Order, len(aggregates))
	idents := make([]string, 0, len(aggregates))
	for _, aggregate := range aggregates {
		key := aggregate.ID().String()
		if _, ok := byID[key]; !ok {
			idents = append(idents, key)
		}
		byID[key] = aggregate
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.byID = byID
	ws.idents = idents
	return nil
}
