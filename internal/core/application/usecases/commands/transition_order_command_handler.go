package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
	"github.com/thanosshawn/shopAdmin/internal/core/ports"
	"github.com/thanosshawn/shopAdmin/internal/pkg/errs"
)

// TransitionOrderCommandHandler moves a single order through the status workflow.
//
// Every successful call performs exactly one partial write (status plus the
// extended history) and appends exactly one history entry. The working copy is
// only touched after the store accepted the write.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, workingCopy, notifier)
//	cmd, _ := NewTransitionOrderCommand(id, order.Cancelled, "customer request", "ops@shop")
//
//	err := handler.Handle(ctx, cmd, confirmer)
//	switch {
//	case errors.Is(err, errs.ErrOperationNotConfirmed):
//	    // operator backed out, nothing was written
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // Cancelled is not reachable from the stored status
//	}
type TransitionOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	workingCopy ports.WorkingCopy
	notifier    ports.Notifier
	nowFunc     func() time.Time
}

func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	workingCopy ports.WorkingCopy,
	notifier ports.Notifier,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory:  uowFactory,
		workingCopy: workingCopy,
		notifier:    notifier,
		nowFunc:     time.Now,
	}
}

// Handle re-reads the order, validates the transition against the stored
// status and writes it. Declined and Cancelled are only written after the
// confirmer approved them; a nil confirmer declines. The confirmer is asked
// before the write transaction is opened.
func (h TransitionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderCommand,
	confirmer ports.Confirmer,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if confirmer == nil {
		confirmer = ports.NeverConfirm
	}

	patch, err := h.transition(ctx, cmd, confirmer)
	if errors.Is(err, errs.ErrOperationNotConfirmed) {
		return err
	}
	if err != nil {
		h.notifier.Notify(ctx, ports.LevelError, fmt.Sprintf("Failed to update order %s: %v", cmd.OrderID(), err))
		return err
	}

	h.workingCopy.Apply(cmd.OrderID(), patch)
	h.notifier.Notify(ctx, ports.LevelSuccess, fmt.Sprintf("Order %s updated to %s", cmd.OrderID(), cmd.Status()))

	return nil
}

func (h TransitionOrderCommandHandler) transition(
	ctx context.Context,
	cmd TransitionOrderCommand,
	confirmer ports.Confirmer,
) (order.Patch, error) {
	target := cmd.Status()
	if target.RequiresConfirmation() {
		if err := h.confirm(ctx, cmd, confirmer); err != nil {
			return order.Patch{}, err
		}
	}

	// the stored status is checked again inside the transaction
	return patchOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) (order.Patch, error) {
		return o.PlanTransition(target, order.TransitionInfo{
			Note:      cmd.Note(),
			UpdatedBy: cmd.UpdatedBy(),
		}, h.nowFunc())
	})
}

// confirm reads the order outside any transaction, rejects transitions the
// stored status does not allow and then asks the operator.
func (h TransitionOrderCommandHandler) confirm(
	ctx context.Context,
	cmd TransitionOrderCommand,
	confirmer ports.Confirmer,
) error {
	current, err := h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return storeError("read order", err)
	}

	if _, err = current.PlanTransition(cmd.Status(), order.TransitionInfo{}, h.nowFunc()); err != nil {
		return err
	}

	prompt := fmt.Sprintf("Mark order %s as %s? This cannot be undone.", current.OrderID(), cmd.Status())
	if !confirmer.Confirm(ctx, prompt) {
		return errs.ErrOperationNotConfirmed
	}
	return nil
}
