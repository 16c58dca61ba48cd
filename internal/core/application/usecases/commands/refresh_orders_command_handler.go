package commands

import (
	"context"

	"github.com/thanosshawn/shopAdmin/internal/core/ports"
)

// RefreshOrdersCommandHandler replaces the working copy with a full listing
// from the store. It never patches the working copy incrementally.
//
// Example:
//
//	handler := NewRefreshOrdersCommandHandler(uowFactory, workingCopy)
//	loaded, err := handler.Handle(ctx, NewRefreshOrdersCommand())
//	if err != nil {
//	    return err // working copy keeps its previous content
//	}
//	logger.Info("orders loaded", "count", loaded)
type RefreshOrdersCommandHandler struct {
	uowFactory  OrderUoWFactory
	workingCopy ports.WorkingCopy
}

func NewRefreshOrdersCommandHandler(uowFactory OrderUoWFactory, workingCopy ports.WorkingCopy) RefreshOrdersCommandHandler {
	return RefreshOrdersCommandHandler{
		uowFactory:  uowFactory,
		workingCopy: workingCopy,
	}
}

// Handle returns the number of orders now held by the working copy.
func (h RefreshOrdersCommandHandler) Handle(ctx context.Context, cmd RefreshOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, storeError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().List(ctx, ports.ListHints{})
	if err != nil {
		return 0, storeError("list orders", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, storeError("commit", err)
	}

	h.workingCopy.Replace(orders)

	return len(orders), nil
}
