package commands

import (
	"errors"
	"strings"

	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
	"github.com/thanosshawn/shopAdmin/internal/pkg/errs"
	"github.com/thanosshawn/shopAdmin/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
)

// TransitionOrderCommand requests moving one order to a new status.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand("a1b2", order.Approved, "", "ops@shop")
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, workingCopy, notifier)
//	if err := handler.Handle(ctx, cmd, ports.AlwaysConfirm); err != nil {
//	    return err
//	}
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   string
	status    order.Status
	note      string
	updatedBy string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand validates the request shape. Whether the target is
// reachable is decided against the stored order by the handler.
func NewTransitionOrderCommand(orderID string, status order.Status, note, updatedBy string) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		note:      strings.TrimSpace(note),
		updatedBy: strings.TrimSpace(updatedBy),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() string {
	return c.orderID
}

func (c TransitionOrderCommand) Status() order.Status {
	return c.status
}

// Note is empty when the default history note should be used.
func (c TransitionOrderCommand) Note() string {
	return c.note
}

func (c TransitionOrderCommand) UpdatedBy() string {
	return c.updatedBy
}

func (c *TransitionOrderCommand) setOrderID(orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return errs.NewValueIsRequiredError("order id")
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
