package queries

import (
	"context"
	"log/slog"

	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
	"github.com/thanosshawn/shopAdmin/internal/core/domain/services"
	"github.com/thanosshawn/shopAdmin/internal/core/ports"
)

// FilterOrdersQueryResponse holds the matching orders in working-copy order.
type FilterOrdersQueryResponse struct {
	Orders []*order.Order
	Report services.FilterReport
}

// FilterOrdersQueryHandler runs the filter engine over the working copy.
type FilterOrdersQueryHandler struct {
	workingCopy ports.WorkingCopy
	filter      services.OrderFilter
	logger      *slog.Logger
}

func NewFilterOrdersQueryHandler(workingCopy ports.WorkingCopy, logger *slog.Logger) FilterOrdersQueryHandler {
	return FilterOrdersQueryHandler{
		workingCopy: workingCopy,
		filter:      services.NewOrderFilter(),
		logger:      logger.With("component", "filter_orders"),
	}
}

// Handle filters the current working copy. Per-predicate counts are logged at
// debug level and returned in the report.
func (h FilterOrdersQueryHandler) Handle(ctx context.Context, query FilterOrdersQuery) (FilterOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return FilterOrdersQueryResponse{}, err
	}

	orders, report := h.filter.Apply(h.workingCopy.All(), query.State())

	if h.logger.Enabled(ctx, slog.LevelDebug) {
		attrs := []any{"input", report.Input, "output", report.Output}
		for _, s := range report.Stages {
			attrs = append(attrs, slog.Int(s.Predicate, s.Remaining))
		}
		h.logger.DebugContext(ctx, "orders filtered", attrs...)
	}

	return FilterOrdersQueryResponse{Orders: orders, Report: report}, nil
}
