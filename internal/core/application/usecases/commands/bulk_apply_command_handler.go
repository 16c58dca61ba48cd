package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/kernel"
	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
	"github.com/thanosshawn/shopAdmin/internal/core/ports"
	"github.com/thanosshawn/shopAdmin/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// DefaultBulkParallelism bounds the number of orders written concurrently.
const DefaultBulkParallelism = 4

// BulkItemResult is the outcome for one selected order. Err is nil on success.
type BulkItemResult struct {
	ID      string
	Success bool
	Err     error
}

// BulkResult summarizes a bulk run. Results follow the deduplicated input order.
type BulkResult struct {
	RunID        string
	SuccessCount int
	FailureCount int
	Results      []BulkItemResult
}

// BulkApplyCommandHandler applies one operation to many orders, best-effort.
//
// Each order is handled in its own unit of work, so one failure never blocks
// the others and nothing is retried. Partial failure is reported in the result,
// not as an error. After the run the working copy is reloaded in full.
//
// Example:
//
//	handler := NewBulkApplyCommandHandler(uowFactory, refresher, notifier, 4)
//	result, err := handler.Handle(ctx, cmd, ports.AlwaysConfirm)
//	if err != nil {
//	    return err // invalid command or operator declined
//	}
//	fmt.Printf("%d updated, %d failed\n", result.SuccessCount, result.FailureCount)
type BulkApplyCommandHandler struct {
	uowFactory  OrderUoWFactory
	refresher   RefreshOrdersCommandHandler
	notifier    ports.Notifier
	parallelism int
	nowFunc     func() time.Time
}

// NewBulkApplyCommandHandler falls back to DefaultBulkParallelism when parallelism is not positive.
func NewBulkApplyCommandHandler(
	uowFactory OrderUoWFactory,
	refresher RefreshOrdersCommandHandler,
	notifier ports.Notifier,
	parallelism int,
) BulkApplyCommandHandler {
	if parallelism <= 0 {
		parallelism = DefaultBulkParallelism
	}
	return BulkApplyCommandHandler{
		uowFactory:  uowFactory,
		refresher:   refresher,
		notifier:    notifier,
		parallelism: parallelism,
		nowFunc:     time.Now,
	}
}

// Handle asks for a single confirmation covering the whole selection and then
// dispatches every order. A nil confirmer declines.
func (h BulkApplyCommandHandler) Handle(
	ctx context.Context,
	cmd BulkApplyCommand,
	confirmer ports.Confirmer,
) (BulkResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkResult{}, err
	}

	if confirmer == nil {
		confirmer = ports.NeverConfirm
	}

	ids := cmd.OrderIDs()
	if !confirmer.Confirm(ctx, h.prompt(cmd, len(ids))) {
		return BulkResult{}, errs.ErrOperationNotConfirmed
	}

	result := BulkResult{
		RunID:   kernel.NewUUID().String(),
		Results: make([]BulkItemResult, len(ids)),
	}
	plan := h.planner(cmd, result.RunID)

	var g errgroup.Group
	g.SetLimit(h.parallelism)
	for i, id := range ids {
		g.Go(func() error {
			_, err := patchOrder(ctx, h.uowFactory, id, plan)
			result.Results[i] = BulkItemResult{ID: id, Success: err == nil, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range result.Results {
		if r.Success {
			result.SuccessCount++
		} else {
			result.FailureCount++
		}
	}

	if _, err := h.refresher.Handle(ctx, NewRefreshOrdersCommand()); err != nil {
		h.notifier.Notify(ctx, ports.LevelError, fmt.Sprintf("Failed to reload orders: %v", err))
	}

	if result.FailureCount == 0 {
		h.notifier.Notify(ctx, ports.LevelSuccess, fmt.Sprintf("Updated %d orders", result.SuccessCount))
	} else {
		h.notifier.Notify(ctx, ports.LevelError,
			fmt.Sprintf("Updated %d orders, %d failed", result.SuccessCount, result.FailureCount))
	}

	return result, nil
}

func (h BulkApplyCommandHandler) prompt(cmd BulkApplyCommand, n int) string {
	switch cmd.Operation() {
	case BulkUpdatePriority:
		return fmt.Sprintf("Set priority %s on %d orders?", cmd.Priority(), n)
	default:
		return fmt.Sprintf("Move %d orders to %s?", n, cmd.Status())
	}
}

func (h BulkApplyCommandHandler) planner(cmd BulkApplyCommand, runID string) planFunc {
	switch cmd.Operation() {
	case BulkUpdatePriority:
		return func(o *order.Order) (order.Patch, error) {
			return o.PlanPriority(cmd.Priority())
		}
	default:
		return func(o *order.Order) (order.Patch, error) {
			return o.PlanTransition(cmd.Status(), order.TransitionInfo{
				UpdatedBy: cmd.UpdatedBy(),
				Metadata:  map[string]string{"bulk_run_id": runID},
			}, h.nowFunc())
		}
	}
}
