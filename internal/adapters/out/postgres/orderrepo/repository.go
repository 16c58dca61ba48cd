package orderrepo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
	"github.com/thanosshawn/shopAdmin/internal/core/ports"
	"github.com/thanosshawn/shopAdmin/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	logger  *slog.Logger
}

// aggregateTracker defines the interface for tracking written aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker, logger *slog.Logger) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
		logger:  logger,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by its document id.
func (r *GormOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Patch updates only the columns set in p. An empty patch writes nothing.
func (r *GormOrderRepository) Patch(ctx context.Context, id string, p order.Patch) error {
	if p.IsEmpty() {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id).Updates(patchColumns(p))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id)
	}

	r.tracker.TrackAggregate(id, p)
	return nil
}

// List returns orders newest first by creation time; rows without any
// timestamp come last. Rows that do not map to a valid order are skipped
// with a warning.
func (r *GormOrderRepository) List(ctx context.Context, hints ports.ListHints) ([]*order.Order, error) {
	q := r.db.WithContext(ctx).Order("COALESCE(created_at, order_date) DESC NULLS LAST, id")
	if hints.Status != order.Unknown {
		q = q.Where("status = ?", hints.Status.String())
	}
	if hints.Limit > 0 {
		q = q.Limit(hints.Limit)
	}

	var dtos []OrderDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			r.logger.WarnContext(ctx, "skipping unreadable order", "id", dto.ID, "status", dto.Status, "error", err)
			continue
		}
		orders = append(orders, o)
	}

	return orders, nil
}
