package commands

import (
	"errors"
	"strings"

	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
	"github.com/thanosshawn/shopAdmin/internal/pkg/errs"
	"github.com/thanosshawn/shopAdmin/internal/pkg/guard"
)

var (
	ErrBulkApplyCommandIsNotConstructed = errors.New(
		"BulkApplyCommand must be created via NewBulkApplyCommand constructor",
	)
)

// BulkOperation names the sub-operation applied to every selected order.
type BulkOperation string

const (
	BulkUpdateStatus   BulkOperation = "update_status"
	BulkUpdatePriority BulkOperation = "update_priority"
)

// BulkData carries the operation argument. Only the field matching the
// operation is read.
type BulkData struct {
	Status    string
	Priority  string
	UpdatedBy string
}

// BulkApplyCommand applies one operation to a selection of orders.
//
// Example:
//
//	cmd, err := NewBulkApplyCommand("update_status", []string{id1, id2, id3}, BulkData{Status: "Approved"})
//	if err != nil {
//	    return err // empty selection, unknown operation or bad status
//	}
//	result, err := handler.Handle(ctx, cmd, confirmer)
type BulkApplyCommand struct { //nolint:recvcheck //using for validation
	operation BulkOperation
	orderIDs  []string
	status    order.Status
	priority  order.Priority
	updatedBy string

	guard guard.ConstructorGuard
}

// NewBulkApplyCommand parses and validates the request. Duplicate ids are
// collapsed to their first occurrence.
func NewBulkApplyCommand(operation string, orderIDs []string, data BulkData) (BulkApplyCommand, error) {
	cmd := BulkApplyCommand{
		updatedBy: strings.TrimSpace(data.UpdatedBy),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setOperation(operation, data),
	); err != nil {
		return BulkApplyCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkApplyCommand) Validate() error {
	return c.guard.Validate(ErrBulkApplyCommandIsNotConstructed)
}

func (c BulkApplyCommand) Operation() BulkOperation {
	return c.operation
}

// OrderIDs returns the deduplicated selection in input order.
func (c BulkApplyCommand) OrderIDs() []string {
	return append([]string(nil), c.orderIDs...)
}

// Status is only meaningful for BulkUpdateStatus.
func (c BulkApplyCommand) Status() order.Status {
	return c.status
}

// Priority is only meaningful for BulkUpdatePriority.
func (c BulkApplyCommand) Priority() order.Priority {
	return c.priority
}

func (c BulkApplyCommand) UpdatedBy() string {
	return c.updatedBy
}

func (c *BulkApplyCommand) setOrderIDs(orderIDs []string) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("order ids")
	}

	seen := make(map[string]struct{}, len(orderIDs))
	ids := make([]string, 0, len(orderIDs))
	for _, id := range orderIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return errs.NewValueIsInvalidError("order ids contain a blank id")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	c.orderIDs = ids
	return nil
}

func (c *BulkApplyCommand) setOperation(operation string, data BulkData) error {
	switch BulkOperation(strings.TrimSpace(operation)) {
	case BulkUpdateStatus:
		if strings.TrimSpace(data.Status) == "" {
			return errs.NewValueIsRequiredError("status")
		}
		status, err := order.ParseStatus(data.Status)
		if err != nil {
			return err
		}
		c.operation, c.status = BulkUpdateStatus, status
	case BulkUpdatePriority:
		if strings.TrimSpace(data.Priority) == "" {
			return errs.NewValueIsRequiredError("priority")
		}
		priority, err := order.ParsePriority(data.Priority)
		if err != nil {
			return err
		}
		c.operation, c.priority = BulkUpdatePriority, priority
	case "":
		return errs.NewValueIsRequiredError("operation")
	default:
		return errs.NewValueIsInvalidError("operation " + operation)
	}
	return nil
}
