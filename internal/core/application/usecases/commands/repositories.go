// Package commands contains the operations that change order state.
// Every command follows the same pattern: constructor validation, a unit of work
// around the store calls, and a working-copy update only after the commit.
package commands

import (
	"context"
	"errors"

	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
	"github.com/thanosshawn/shopAdmin/internal/core/ports"
	"github.com/thanosshawn/shopAdmin/internal/pkg/errs"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// planFunc turns the freshly read order into the patch to write.
type planFunc func(o *order.Order) (order.Patch, error)

// patchOrder re-reads the order inside its own unit of work, plans the change
// on that fresh copy and writes it as one partial update. The committed patch
// is returned so the caller can mirror it locally.
func patchOrder(ctx context.Context, factory OrderUoWFactory, id string, plan planFunc) (order.Patch, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Patch{}, storeError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	current, err := repo.Get(ctx, id)
	if err != nil {
		return order.Patch{}, storeError("read order", err)
	}

	patch, err := plan(current)
	if err != nil {
		return order.Patch{}, err
	}

	if err = repo.Patch(ctx, id, patch); err != nil {
		return order.Patch{}, storeError("write order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Patch{}, storeError("commit", err)
	}

	return patch, nil
}

func storeError(op string, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, errs.ErrPersistence) {
		return err
	}
	return errs.NewPersistenceError(op, err)
}
