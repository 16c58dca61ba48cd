package commands

import (
	"errors"
	"strings"

	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
	"github.com/thanosshawn/shopAdmin/internal/pkg/errs"
	"github.com/thanosshawn/shopAdmin/internal/pkg/guard"
)

var (
	ErrAttachTrackingCommandIsNotConstructed = errors.New(
		"AttachTrackingCommand must be created via NewAttachTrackingCommand constructor",
	)
)

// AttachTrackingCommand hands a Packed order to a carrier.
// Code and carrier are required; the remaining fields only end up in the history note.
type AttachTrackingCommand struct { //nolint:recvcheck //using for validation
	orderID string
	info    order.TrackingInfo

	guard guard.ConstructorGuard
}

func NewAttachTrackingCommand(orderID string, info order.TrackingInfo) (AttachTrackingCommand, error) {
	cmd := AttachTrackingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setInfo(info),
	); err != nil {
		return AttachTrackingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachTrackingCommand) Validate() error {
	return c.guard.Validate(ErrAttachTrackingCommandIsNotConstructed)
}

func (c AttachTrackingCommand) OrderID() string {
	return c.orderID
}

func (c AttachTrackingCommand) Info() order.TrackingInfo {
	return c.info
}

func (c *AttachTrackingCommand) setOrderID(orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return errs.NewValueIsRequiredError("order id")
	}

	c.orderID = orderID
	return nil
}

func (c *AttachTrackingCommand) setInfo(info order.TrackingInfo) error {
	info.Code = strings.TrimSpace(info.Code)
	info.Carrier = strings.TrimSpace(info.Carrier)

	var missing []error
	if info.Code == "" {
		missing = append(missing, errs.NewValueIsRequiredError("tracking code"))
	}
	if info.Carrier == "" {
		missing = append(missing, errs.NewValueIsRequiredError("carrier"))
	}
	if err := errors.Join(missing...); err != nil {
		return err
	}

	c.info = info
	return nil
}
