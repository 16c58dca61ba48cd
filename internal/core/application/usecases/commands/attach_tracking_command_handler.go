package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
	"github.com/thanosshawn/shopAdmin/internal/core/ports"
)

// AttachTrackingCommandHandler records tracking details and advances the order
// to Shipped. Tracking, status and history go out in one partial write, so a
// Shipped order always has tracking and a failed write leaves neither.
//
// Example:
//
//	cmd, err := NewAttachTrackingCommand(id, order.TrackingInfo{Code: "IP123", Carrier: "IndiaPost"})
//	if err != nil {
//	    return err // code or carrier missing
//	}
//	if err = handler.Handle(ctx, cmd); errors.Is(err, errs.ErrInvalidTransition) {
//	    // order is not Packed, e.g. already Shipped
//	}
type AttachTrackingCommandHandler struct {
	uowFactory  OrderUoWFactory
	workingCopy ports.WorkingCopy
	notifier    ports.Notifier
	nowFunc     func() time.Time
}

func NewAttachTrackingCommandHandler(
	uowFactory OrderUoWFactory,
	workingCopy ports.WorkingCopy,
	notifier ports.Notifier,
) AttachTrackingCommandHandler {
	return AttachTrackingCommandHandler{
		uowFactory:  uowFactory,
		workingCopy: workingCopy,
		notifier:    notifier,
		nowFunc:     time.Now,
	}
}

func (h AttachTrackingCommandHandler) Handle(ctx context.Context, cmd AttachTrackingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	patch, err := patchOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) (order.Patch, error) {
		return o.PlanTracking(cmd.Info(), h.nowFunc())
	})
	if err != nil {
		h.notifier.Notify(ctx, ports.LevelError,
			fmt.Sprintf("Failed to add tracking to order %s: %v", cmd.OrderID(), err))
		return err
	}

	h.workingCopy.Apply(cmd.OrderID(), patch)
	h.notifier.Notify(ctx, ports.LevelSuccess,
		fmt.Sprintf("Order %s shipped via %s (%s)", cmd.OrderID(), cmd.Info().Carrier, cmd.Info().Code))

	return nil
}
