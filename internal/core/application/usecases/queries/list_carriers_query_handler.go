package queries

import (
	"context"

	"github.com/thanosshawn/shopAdmin/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListCarriersQueryHandler reads distinct carriers with a direct SQL query.
//
// Example:
//
//	handler := NewListCarriersQueryHandler(db)
//	carriers, err := handler.Handle(ctx, NewListCarriersQuery())
//	if err != nil {
//	    return err
//	}
//	// carriers == []string{"BlueDart", "IndiaPost"}
type ListCarriersQueryHandler struct {
	db *gorm.DB
}

func NewListCarriersQueryHandler(db *gorm.DB) ListCarriersQueryHandler {
	return ListCarriersQueryHandler{db: db}
}

// Handle returns carrier names sorted alphabetically. Orders without tracking are ignored.
// Database failures are returned as *errs.PersistenceError.
func (h ListCarriersQueryHandler) Handle(ctx context.Context, query ListCarriersQuery) ([]string, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	carriers := make([]string, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT DISTINCT tracking_carrier
		FROM orders
		WHERE tracking_carrier <> ''
		ORDER BY tracking_carrier
	`).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("list carriers", err)
	}
	defer rows.Close()

	for rows.Next() {
		var carrier string
		if err = rows.Scan(&carrier); err != nil {
			return nil, errs.NewPersistenceError("list carriers", err)
		}
		carriers = append(carriers, carrier)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("list carriers", err)
	}

	return carriers, nil
}
