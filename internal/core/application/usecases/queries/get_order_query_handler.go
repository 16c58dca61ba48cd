package queries

import (
	"context"
	"errors"

	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
	"github.com/thanosshawn/shopAdmin/internal/pkg/errs"
)

// OrderReader is the read side of ports.OrderRepository.
type OrderReader interface {
	Get(ctx context.Context, id string) (*order.Order, error)
}

// GetOrderQueryHandler returns the committed state of a single order.
type GetOrderQueryHandler struct {
	reader OrderReader
}

func NewGetOrderQueryHandler(reader OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

// Handle returns *errs.ObjectNotFoundError for unknown ids and wraps any other
// store failure in *errs.PersistenceError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, errs.NewPersistenceError("read order", err)
	}

	return o, nil
}
