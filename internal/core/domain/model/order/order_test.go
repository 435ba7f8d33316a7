package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOrderID(t *testing.T, s string) kernel.OrderID {
	t.Helper()
	id, err := kernel.NewOrderID(s)
	require.NoError(t, err)
	return id
}

func mustStaffID(t *testing.T, s string) kernel.StaffID {
	t.Helper()
	id, err := kernel.NewStaffID(s)
	require.NoError(t, err)
	return id
}

func restoreOrder(t *testing.T, mutate func(*order.RestoreOrderParams)) *order.Order {
	t.Helper()
	params := order.RestoreOrderParams{
		ID:              mustOrderID(t, "ord-1"),
		OrderNumber:     "1042",
		CustomerName:    "Dana Reyes",
		CreatedAt:       time.Date(2026, time.March, 10, 8, 30, 0, 0, time.UTC),
		Status:          order.KitchenQueue,
		DeliveryMethod:  order.Pickup,
		RequiresKitchen: true,
	}
	if mutate != nil {
		mutate(&params)
	}
	o, err := order.RestoreOrder(params)
	require.NoError(t, err)
	return o
}

func parallelOrder(t *testing.T, kitchen, design order.Status) *order.Order {
	t.Helper()
	parallel, err := order.NewParallelState(kitchen, design)
	require.NoError(t, err)
	return restoreOrder(t, func(p *order.RestoreOrderParams) {
		p.Status = order.ParallelProcessing
		p.Parallel = &parallel
		p.RequiresKitchen = true
		p.RequiresDesign = true
	})
}

func TestNewOrder(t *testing.T) {
	createdAt := time.Date(2026, time.March, 10, 8, 30, 0, 0, time.UTC)

	t.Run("kitchen_only_starts_in_kitchen_queue", func(t *testing.T) {
		o, err := order.NewOrder(mustOrderID(t, "ord-1"), "1042", "Dana Reyes", createdAt, true, false)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.KitchenQueue, o.Status())
		assert.Nil(t, o.Parallel())
	})

	t.Run("design_only_starts_in_design_queue", func(t *testing.T) {
		o, err := order.NewOrder(mustOrderID(t, "ord-2"), "1043", "Sam Ho", createdAt, false, true)

		require.NoError(t, err)
		assert.Equal(t, order.DesignQueue, o.Status())
	})

	t.Run("both_legs_start_in_parallel_processing", func(t *testing.T) {
		o, err := order.NewOrder(mustOrderID(t, "ord-3"), "1044", "Kim Soto", createdAt, true, true)

		require.NoError(t, err)
		assert.Equal(t, order.ParallelProcessing, o.Status())
		require.NotNil(t, o.Parallel())
		assert.Equal(t, order.KitchenQueue, o.Parallel().Kitchen())
		assert.Equal(t, order.DesignQueue, o.Parallel().Design())
	})

	t.Run("rejects_order_requiring_no_leg", func(t *testing.T) {
		_, err := order.NewOrder(mustOrderID(t, "ord-4"), "1045", "Lee Chan", createdAt, false, false)

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrNoLegRequired)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("rejects_parallel_state_on_single_leg_order", func(t *testing.T) {
		parallel, err := order.NewParallelState(order.KitchenQueue, order.DesignQueue)
		require.NoError(t, err)

		_, err = order.RestoreOrder(order.RestoreOrderParams{
			ID:              mustOrderID(t, "ord-1"),
			CreatedAt:       time.Now(),
			Status:          order.ParallelProcessing,
			Parallel:        &parallel,
			RequiresKitchen: true,
		})

		require.Error(t, err)
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:              mustOrderID(t, "ord-1"),
			CreatedAt:       time.Now(),
			Status:          order.Unknown,
			RequiresKitchen: true,
		})

		require.Error(t, err)
	})

	t.Run("zero_value_order_fails_validation", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_StartProcessing(t *testing.T) {
	staff := "staffA"

	t.Run("claims_queue_order_for_staff", func(t *testing.T) {
		o := restoreOrder(t, nil)

		next, err := o.StartProcessing(order.StationKitchen, mustStaffID(t, staff))

		require.NoError(t, err)
		assert.Equal(t, order.KitchenProcessing, next.Status())
		require.NotNil(t, next.KitchenBy())
		assert.Equal(t, staff, next.KitchenBy().String())

		// Copy-on-write: the receiver is untouched.
		assert.Equal(t, order.KitchenQueue, o.Status())
		assert.Nil(t, o.KitchenBy())
	})

	t.Run("allows_reprocessing_from_final_check_queue", func(t *testing.T) {
		o := restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.Status = order.FinalCheckQueue
		})

		next, err := o.StartProcessing(order.StationFinalCheck, mustStaffID(t, staff))

		require.NoError(t, err)
		assert.Equal(t, order.FinalCheckProcessing, next.Status())
		require.NotNil(t, next.FinalCheckBy())
	})

	t.Run("advances_single_leg_of_parallel_order", func(t *testing.T) {
		o := parallelOrder(t, order.KitchenQueue, order.DesignQueue)

		next, err := o.StartProcessing(order.StationDesign, mustStaffID(t, staff))

		require.NoError(t, err)
		assert.Equal(t, order.ParallelProcessing, next.Status())
		assert.Equal(t, order.DesignProcessing, next.Parallel().Design())
		assert.Equal(t, order.KitchenQueue, next.Parallel().Kitchen())
		require.NotNil(t, next.DesignBy())
		assert.Nil(t, next.KitchenBy())
	})

	t.Run("rejects_wrong_station", func(t *testing.T) {
		o := restoreOrder(t, nil) // KitchenQueue

		_, err := o.StartProcessing(order.StationDesign, mustStaffID(t, staff))

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.KitchenQueue, o.Status())
	})

	t.Run("rejects_non_queue_origin", func(t *testing.T) {
		o := restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.Status = order.KitchenReady
		})

		_, err := o.StartProcessing(order.StationKitchen, mustStaffID(t, staff))

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_MarkReady(t *testing.T) {
	staffA := "staffA"

	claimed := func(t *testing.T) *order.Order {
		t.Helper()
		owner := mustStaffID(t, staffA)
		return restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.Status = order.KitchenProcessing
			p.KitchenBy = &owner
		})
	}

	t.Run("owner_finishes_their_leg", func(t *testing.T) {
		o := claimed(t)

		next, err := o.MarkReady(order.StationKitchen, mustStaffID(t, staffA), "less frosting")

		require.NoError(t, err)
		assert.Equal(t, order.KitchenReady, next.Status())
		assert.Equal(t, "less frosting", next.KitchenNotes())
		// Claims persist for audit after the leg is done.
		require.NotNil(t, next.KitchenBy())
	})

	t.Run("rejects_other_staff_on_claimed_order", func(t *testing.T) {
		o := claimed(t)

		_, err := o.MarkReady(order.StationKitchen, mustStaffID(t, "staffB"), "")

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrNotOrderOwner)
		assert.Equal(t, order.KitchenProcessing, o.Status())
	})

	t.Run("unclaimed_order_degrades_to_anyone", func(t *testing.T) {
		o := restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.Status = order.KitchenProcessing
		})

		next, err := o.MarkReady(order.StationKitchen, mustStaffID(t, "staffB"), "")

		require.NoError(t, err)
		assert.Equal(t, order.KitchenReady, next.Status())
	})

	t.Run("final_check_ready_completes_the_order", func(t *testing.T) {
		o := restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.Status = order.FinalCheckProcessing
		})

		next, err := o.MarkReady(order.StationFinalCheck, mustStaffID(t, staffA), "")

		require.NoError(t, err)
		assert.Equal(t, order.Completed, next.Status())
	})
}

func TestOrder_MarkReady_ParallelJoin(t *testing.T) {
	staff := mustStaffID(t, "staffA")

	t.Run("last_leg_ready_joins_into_final_check_queue", func(t *testing.T) {
		o := parallelOrder(t, order.KitchenReady, order.DesignProcessing)

		next, err := o.MarkReady(order.StationDesign, staff, "")

		require.NoError(t, err)
		assert.Equal(t, order.FinalCheckQueue, next.Status())
		assert.Equal(t, order.DesignReady, next.Parallel().Design())
		assert.Equal(t, order.KitchenReady, next.Parallel().Kitchen())
	})

	t.Run("join_never_fires_while_other_leg_is_open", func(t *testing.T) {
		o := parallelOrder(t, order.KitchenProcessing, order.DesignProcessing)

		next, err := o.MarkReady(order.StationDesign, staff, "")

		require.NoError(t, err)
		assert.Equal(t, order.ParallelProcessing, next.Status())
		assert.Equal(t, order.DesignReady, next.Parallel().Design())
		assert.Equal(t, order.KitchenProcessing, next.Parallel().Kitchen())
	})

	t.Run("duplicate_ready_tap_is_a_no_op", func(t *testing.T) {
		o := parallelOrder(t, order.KitchenReady, order.DesignProcessing)

		joined, err := o.MarkReady(order.StationDesign, staff, "")
		require.NoError(t, err)
		require.Equal(t, order.FinalCheckQueue, joined.Status())

		again, err := joined.MarkReady(order.StationDesign, staff, "")

		require.NoError(t, err)
		assert.Equal(t, order.FinalCheckQueue, again.Status())
		assert.Equal(t, order.DesignReady, again.Parallel().Design())
		assert.Equal(t, order.KitchenReady, again.Parallel().Kitchen())
	})
}

func TestOrder_SendToDesign(t *testing.T) {
	t.Run("hands_sequential_order_to_design", func(t *testing.T) {
		o := restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.Status = order.KitchenReady
			p.RequiresDesign = true
		})

		next, err := o.SendToDesign("fondant base done")

		require.NoError(t, err)
		assert.Equal(t, order.DesignQueue, next.Status())
		assert.Equal(t, "fondant base done", next.KitchenNotes())
	})

	t.Run("rejects_order_not_requiring_design", func(t *testing.T) {
		o := restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.Status = order.KitchenReady
		})

		_, err := o.SendToDesign("")

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("rejects_parallel_order", func(t *testing.T) {
		o := parallelOrder(t, order.KitchenReady, order.DesignProcessing)

		_, err := o.SendToDesign("")

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_SendToFinalCheck(t *testing.T) {
	t.Run("kitchen_only_order_advances", func(t *testing.T) {
		o := restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.Status = order.KitchenReady
		})

		next, err := o.SendToFinalCheck("")

		require.NoError(t, err)
		assert.Equal(t, order.FinalCheckQueue, next.Status())
	})

	t.Run("design_ready_order_advances", func(t *testing.T) {
		o := restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.Status = order.DesignReady
			p.RequiresKitchen = false
			p.RequiresDesign = true
		})

		next, err := o.SendToFinalCheck("sugar flowers attached")

		require.NoError(t, err)
		assert.Equal(t, order.FinalCheckQueue, next.Status())
		assert.Equal(t, "sugar flowers attached", next.DesignNotes())
	})

	t.Run("rejects_kitchen_ready_order_with_open_design_leg", func(t *testing.T) {
		o := restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.Status = order.KitchenReady
			p.RequiresDesign = true
		})

		_, err := o.SendToFinalCheck("")

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_SendBack(t *testing.T) {
	returnedAt := time.Date(2026, time.March, 11, 14, 0, 0, 0, time.UTC)

	t.Run("returns_order_to_kitchen_with_annotation", func(t *testing.T) {
		owner := mustStaffID(t, "staffA")
		o := restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.Status = order.FinalCheckProcessing
			p.KitchenBy = &owner
		})

		next, err := o.SendBack(order.LegKitchen, "wrong flavor", returnedAt)

		require.NoError(t, err)
		assert.Equal(t, order.KitchenQueue, next.Status())
		assert.True(t, next.IsSentBack())
		require.NotNil(t, next.ReturnInfo())
		assert.True(t, next.ReturnInfo().FromFinalCheck())
		assert.Equal(t, "wrong flavor", next.ReturnInfo().Reason())
		assert.Equal(t, order.LegKitchen, next.ReturnInfo().Destination())
		assert.Equal(t, returnedAt, next.ReturnInfo().ReturnedAt())

		// The previous claim is preserved so visibility can restrict re-claim.
		require.NotNil(t, next.KitchenBy())
		assert.Equal(t, "staffA", next.KitchenBy().String())
	})

	t.Run("reopens_only_destination_leg_of_parallel_order", func(t *testing.T) {
		o := parallelOrder(t, order.KitchenReady, order.DesignReady)
		joined, err := o.ApplyPatch(order.Patch{Status: statusPtr(order.FinalCheckQueue)})
		require.NoError(t, err)

		next, err := joined.SendBack(order.LegDesign, "smudged lettering", returnedAt)

		require.NoError(t, err)
		assert.Equal(t, order.DesignQueue, next.Status())
		assert.Equal(t, order.DesignQueue, next.Parallel().Design())
		assert.Equal(t, order.KitchenReady, next.Parallel().Kitchen())
	})

	t.Run("rejects_non_final_check_origin", func(t *testing.T) {
		o := restoreOrder(t, nil) // KitchenQueue

		_, err := o.SendBack(order.LegKitchen, "reason", returnedAt)

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.False(t, o.IsSentBack())
	})

	t.Run("rejects_empty_reason", func(t *testing.T) {
		o := restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.Status = order.FinalCheckQueue
		})

		_, err := o.SendBack(order.LegKitchen, "", returnedAt)

		require.Error(t, err)
	})
}

func TestOrder_SendBack_ReworkRoundTrip(t *testing.T) {
	returnedAt := time.Date(2026, time.March, 11, 14, 0, 0, 0, time.UTC)
	kitchenStaff := mustStaffID(t, "staffA")
	checker := mustStaffID(t, "staffB")

	t.Run("returned_kitchen_leg_of_parallel_order_rejoins", func(t *testing.T) {
		o := parallelOrder(t, order.KitchenReady, order.DesignReady)
		atFinalCheck, err := o.ApplyPatch(order.Patch{Status: statusPtr(order.FinalCheckQueue)})
		require.NoError(t, err)
		inReview, err := atFinalCheck.StartProcessing(order.StationFinalCheck, checker)
		require.NoError(t, err)

		returned, err := inReview.SendBack(order.LegKitchen, "wrong flavor", returnedAt)
		require.NoError(t, err)
		require.Equal(t, order.KitchenQueue, returned.Status())
		require.Equal(t, order.KitchenQueue, returned.Parallel().Kitchen())

		rework, err := returned.StartProcessing(order.StationKitchen, kitchenStaff)
		require.NoError(t, err)
		assert.Equal(t, order.KitchenProcessing, rework.Status())
		assert.Equal(t, order.KitchenProcessing, rework.Parallel().Kitchen())
		assert.Equal(t, order.DesignReady, rework.Parallel().Design())

		rejoined, err := rework.MarkReady(order.StationKitchen, kitchenStaff, "flavor corrected")
		require.NoError(t, err)
		assert.Equal(t, order.FinalCheckQueue, rejoined.Status())
		assert.Equal(t, order.KitchenReady, rejoined.Parallel().Kitchen())
		assert.Equal(t, order.DesignReady, rejoined.Parallel().Design())
		assert.Equal(t, "flavor corrected", rejoined.KitchenNotes())
	})

	t.Run("returned_design_leg_of_parallel_order_rejoins", func(t *testing.T) {
		o := parallelOrder(t, order.KitchenReady, order.DesignReady)
		atFinalCheck, err := o.ApplyPatch(order.Patch{Status: statusPtr(order.FinalCheckQueue)})
		require.NoError(t, err)

		returned, err := atFinalCheck.SendBack(order.LegDesign, "smudged lettering", returnedAt)
		require.NoError(t, err)

		rework, err := returned.StartProcessing(order.StationDesign, kitchenStaff)
		require.NoError(t, err)
		assert.Equal(t, order.DesignProcessing, rework.Status())
		assert.Equal(t, order.KitchenReady, rework.Parallel().Kitchen())

		rejoined, err := rework.MarkReady(order.StationDesign, kitchenStaff, "")
		require.NoError(t, err)
		assert.Equal(t, order.FinalCheckQueue, rejoined.Status())
		assert.Equal(t, order.DesignReady, rejoined.Parallel().Design())

		// The full round trip ends in a re-review at final check.
		reReview, err := rejoined.StartProcessing(order.StationFinalCheck, checker)
		require.NoError(t, err)
		assert.Equal(t, order.FinalCheckProcessing, reReview.Status())
	})

	t.Run("returned_single_leg_order_travels_the_scalar_path", func(t *testing.T) {
		owner := mustStaffID(t, "staffA")
		o := restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.Status = order.FinalCheckProcessing
			p.KitchenBy = &owner
		})

		returned, err := o.SendBack(order.LegKitchen, "wrong flavor", returnedAt)
		require.NoError(t, err)

		rework, err := returned.StartProcessing(order.StationKitchen, owner)
		require.NoError(t, err)
		ready, err := rework.MarkReady(order.StationKitchen, owner, "")
		require.NoError(t, err)

		back, err := ready.SendToFinalCheck("")
		require.NoError(t, err)
		assert.Equal(t, order.FinalCheckQueue, back.Status())
		assert.True(t, back.IsSentBack())
	})
}

func TestOrder_StationStatus(t *testing.T) {
	t.Run("parallel_order_projects_leg_status_per_station", func(t *testing.T) {
		o := parallelOrder(t, order.KitchenReady, order.DesignProcessing)

		assert.Equal(t, order.KitchenReady, o.StationStatus(order.StationKitchen))
		assert.Equal(t, order.DesignProcessing, o.StationStatus(order.StationDesign))
		assert.Equal(t, order.ParallelProcessing, o.StationStatus(order.StationFinalCheck))
	})

	t.Run("single_leg_order_projects_macro_status", func(t *testing.T) {
		o := restoreOrder(t, nil)

		assert.Equal(t, order.KitchenQueue, o.StationStatus(order.StationKitchen))
		assert.Equal(t, order.KitchenQueue, o.StationStatus(order.StationDesign))
	})
}

func TestOrder_DueAt(t *testing.T) {
	createdAt := time.Date(2026, time.March, 10, 8, 30, 0, 0, time.UTC)
	pickupDate := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	t.Run("combines_pickup_date_with_slot_start", func(t *testing.T) {
		o := restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.PickupDate = &pickupDate
			p.PickupTimeSlot = "10:00 AM - 11:00 AM"
		})

		assert.Equal(t, time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC), o.DueAt())
	})

	t.Run("delivery_method_selects_delivery_fields", func(t *testing.T) {
		o := restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.DeliveryMethod = order.Delivery
			p.DeliveryDate = &pickupDate
			p.DeliveryTimeSlot = "2:30 PM"
			p.PickupTimeSlot = "9:00 AM" // must be ignored
		})

		assert.Equal(t, time.Date(2026, time.March, 14, 14, 30, 0, 0, time.UTC), o.DueAt())
	})

	t.Run("missing_date_falls_back_to_created_at", func(t *testing.T) {
		o := restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.PickupTimeSlot = "10:00 AM"
		})

		assert.Equal(t, createdAt, o.DueAt())
	})

	t.Run("unparsable_slot_falls_back_to_created_at", func(t *testing.T) {
		o := restoreOrder(t, func(p *order.RestoreOrderParams) {
			p.PickupDate = &pickupDate
			p.PickupTimeSlot = "sometime in the morning"
		})

		assert.Equal(t, createdAt, o.DueAt())
	})
}

func statusPtr(s order.Status) *order.Status {
	return &s
}
