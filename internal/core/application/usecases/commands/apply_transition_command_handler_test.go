package commands_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newApplyTransitionHandler(
	workingSet *MockWorkingSet,
	orderStore *MockOrderStore,
) commands.ApplyTransitionCommandHandler {
	return commands.NewApplyTransitionCommandHandler(
		workingSet, orderStore, services.NewVisibilityPolicy(),
	)
}

func TestApplyTransitionCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	orderID := mustOrderID(t, "ord-1")
	staffID := mustStaffID(t, "staffA")

	current := restoreOrder(t, "ord-1", nil) // KitchenQueue
	authoritative := restoreOrder(t, "ord-1", func(p *order.RestoreOrderParams) {
		p.Status = order.KitchenProcessing
		p.KitchenBy = &staffID
	})

	workingSet := new(MockWorkingSet)
	orderStore := new(MockOrderStore)

	mock.InOrder(
		workingSet.On("Get", ctx, orderID).Return(current, nil).Once(),
		workingSet.On("Upsert", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderStore.On("SubmitStatusChange", ctx, orderID, mock.AnythingOfType("ports.StatusChange")).
			Return(authoritative, nil).Once(),
		workingSet.On("Upsert", ctx, authoritative).Return(nil).Once(),
	)

	cmd, err := commands.NewApplyTransitionCommand(
		orderID, commands.ActionStartProcessing, order.StationKitchen, staffID, "", nil, "",
	)
	require.NoError(t, err)

	handler := newApplyTransitionHandler(workingSet, orderStore)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	workingSet.AssertExpectations(t)
	orderStore.AssertExpectations(t)

	submitted := orderStore.Calls[0].Arguments.Get(2).(ports.StatusChange)
	assert.Equal(t, order.KitchenProcessing, submitted.Status)
	require.NotNil(t, submitted.ClaimedBy)
	assert.Equal(t, "staffA", submitted.ClaimedBy.String())
}

func TestApplyTransitionCommandHandler_Handle_StoreRejectionRollsBack(t *testing.T) {
	ctx := context.Background()
	orderID := mustOrderID(t, "ord-1")
	staffID := mustStaffID(t, "staffA")
	current := restoreOrder(t, "ord-1", nil)

	workingSet := new(MockWorkingSet)
	orderStore := new(MockOrderStore)

	mock.InOrder(
		workingSet.On("Get", ctx, orderID).Return(current, nil).Once(),
		workingSet.On("Upsert", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderStore.On("SubmitStatusChange", ctx, orderID, mock.AnythingOfType("ports.StatusChange")).
			Return(nil, ports.ErrStoreRejected).Once(),
		// Rollback restores the pre-transition snapshot.
		workingSet.On("Upsert", ctx, current).Return(nil).Once(),
	)

	cmd, err := commands.NewApplyTransitionCommand(
		orderID, commands.ActionStartProcessing, order.StationKitchen, staffID, "", nil, "",
	)
	require.NoError(t, err)

	handler := newApplyTransitionHandler(workingSet, orderStore)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, ports.ErrStoreRejected)
	workingSet.AssertExpectations(t)
}

func TestApplyTransitionCommandHandler_Handle_IllegalTransitionTouchesNothing(t *testing.T) {
	ctx := context.Background()
	orderID := mustOrderID(t, "ord-1")
	staffID := mustStaffID(t, "staffA")
	current := restoreOrder(t, "ord-1", func(p *order.RestoreOrderParams) {
		p.Status = order.Completed
	})

	workingSet := new(MockWorkingSet)
	orderStore := new(MockOrderStore)
	workingSet.On("Get", ctx, orderID).Return(current, nil).Once()

	cmd, err := commands.NewApplyTransitionCommand(
		orderID, commands.ActionStartProcessing, order.StationKitchen, staffID, "", nil, "",
	)
	require.NoError(t, err)

	handler := newApplyTransitionHandler(workingSet, orderStore)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	workingSet.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	orderStore.AssertNotCalled(t, "SubmitStatusChange", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyTransitionCommandHandler_Handle_ReconciledOrderLeavesView(t *testing.T) {
	ctx := context.Background()
	orderID := mustOrderID(t, "ord-1")
	staffID := mustStaffID(t, "staffA")

	current := restoreOrder(t, "ord-1", func(p *order.RestoreOrderParams) {
		p.Status = order.KitchenProcessing
		p.KitchenBy = &staffID
	})
	// The store's answer has already advanced past the kitchen.
	authoritative := restoreOrder(t, "ord-1", func(p *order.RestoreOrderParams) {
		p.Status = order.FinalCheckQueue
		p.KitchenBy = &staffID
	})

	workingSet := new(MockWorkingSet)
	orderStore := new(MockOrderStore)

	mock.InOrder(
		workingSet.On("Get", ctx, orderID).Return(current, nil).Once(),
		workingSet.On("Upsert", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderStore.On("SubmitStatusChange", ctx, orderID, mock.AnythingOfType("ports.StatusChange")).
			Return(authoritative, nil).Once(),
		workingSet.On("Remove", ctx, orderID).Return(nil).Once(),
	)

	cmd, err := commands.NewApplyTransitionCommand(
		orderID, commands.ActionMarkReady, order.StationKitchen, staffID, "", nil, "",
	)
	require.NoError(t, err)

	handler := newApplyTransitionHandler(workingSet, orderStore)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	workingSet.AssertExpectations(t)
}

func TestApplyTransitionCommandHandler_Handle_UnknownOrder(t *testing.T) {
	ctx := context.Background()
	orderID := mustOrderID(t, "ord-1")
	staffID := mustStaffID(t, "staffA")

	workingSet := new(MockWorkingSet)
	orderStore := new(MockOrderStore)
	workingSet.On("Get", ctx, orderID).Return(nil, errs.ErrObjectNotFound).Once()

	cmd, err := commands.NewApplyTransitionCommand(
		orderID, commands.ActionStartProcessing, order.StationKitchen, staffID, "", nil, "",
	)
	require.NoError(t, err)

	handler := newApplyTransitionHandler(workingSet, orderStore)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestApplyTransitionCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := context.Background()
	workingSet := new(MockWorkingSet)
	orderStore := new(MockOrderStore)

	handler := newApplyTransitionHandler(workingSet, orderStore)
	err := handler.Handle(ctx, commands.ApplyTransitionCommand{})

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrApplyTransitionCommandIsNotConstructed)
	workingSet.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestApplyTransitionCommandHandler_Handle_SendBack(t *testing.T) {
	ctx := context.Background()
	orderID := mustOrderID(t, "ord-1")
	staffID := mustStaffID(t, "staffB")
	destination := order.LegKitchen

	current := restoreOrder(t, "ord-1", func(p *order.RestoreOrderParams) {
		p.Status = order.FinalCheckProcessing
	})
	authoritative := restoreOrder(t, "ord-1", func(p *order.RestoreOrderParams) {
		p.Status = order.KitchenQueue
		p.IsSentBack = true
	})

	workingSet := new(MockWorkingSet)
	orderStore := new(MockOrderStore)

	mock.InOrder(
		workingSet.On("Get", ctx, orderID).Return(current, nil).Once(),
		workingSet.On("Upsert", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderStore.On("SubmitStatusChange", ctx, orderID, mock.AnythingOfType("ports.StatusChange")).
			Return(authoritative, nil).Once(),
		// A sent-back order no longer belongs in the final check view.
		workingSet.On("Remove", ctx, orderID).Return(nil).Once(),
	)

	cmd, err := commands.NewApplyTransitionCommand(
		orderID, commands.ActionSendBack, order.StationFinalCheck, staffID,
		"", &destination, "wrong flavor",
	)
	require.NoError(t, err)

	handler := newApplyTransitionHandler(workingSet, orderStore)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	workingSet.AssertExpectations(t)

	submitted := orderStore.Calls[0].Arguments.Get(2).(ports.StatusChange)
	assert.Equal(t, order.KitchenQueue, submitted.Status)
	require.NotNil(t, submitted.ReturnDestination)
	assert.Equal(t, order.LegKitchen, *submitted.ReturnDestination)
	assert.Equal(t, "wrong flavor", submitted.ReturnReason)
}

func TestApplyTransitionCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := context.Background()
	orderID := mustOrderID(t, "ord-1")
	owner := mustStaffID(t, "staffA")
	intruder := mustStaffID(t, "staffB")

	current := restoreOrder(t, "ord-1", func(p *order.RestoreOrderParams) {
		p.Status = order.KitchenProcessing
		p.KitchenBy = &owner
	})

	workingSet := new(MockWorkingSet)
	orderStore := new(MockOrderStore)
	workingSet.On("Get", ctx, orderID).Return(current, nil).Once()

	cmd, err := commands.NewApplyTransitionCommand(
		orderID, commands.ActionMarkReady, order.StationKitchen, intruder, "", nil, "",
	)
	require.NoError(t, err)

	handler := newApplyTransitionHandler(workingSet, orderStore)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrNotOrderOwner)
	workingSet.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
