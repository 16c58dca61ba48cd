// Package orderrepo maps order aggregates to the orders table. Document-shaped
// parts of an order (items, financials, history, legacy totals, address) are
// stored as JSONB columns; fields the console filters on live in plain columns.
package orderrepo

import (
	"time"

	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/kernel"
	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO represents one row of the orders table.
type OrderDTO struct {
	ID              string                               `gorm:"type:varchar(64);primaryKey"`
	OrderID         string                               `gorm:"type:varchar(64);index"`
	Status          string                               `gorm:"type:varchar(16);not null;index"`
	Priority        string                               `gorm:"type:varchar(16);not null;default:Normal"`
	Customer        CustomerDTO                          `gorm:"embedded;embeddedPrefix:customer_"`
	Items           datatypes.JSONSlice[ItemDTO]         `gorm:"not null"`
	Financials      datatypes.JSONType[FinancialsDTO]    `gorm:"not null"`
	Totals          datatypes.JSONType[TotalsDTO]        `gorm:"not null"`
	ShippingAddress datatypes.JSONType[*AddressDTO]      `gorm:"not null"`
	Tracking        TrackingDTO                          `gorm:"embedded;embeddedPrefix:tracking_"`
	StatusHistory   datatypes.JSONSlice[HistoryEntryDTO] `gorm:"not null"`
	AdminNotes      string                               `gorm:"type:text;not null;default:''"`
	CreatedAt       *time.Time                           `gorm:"autoCreateTime:false;index"`
	OrderDate       *time.Time
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

type CustomerDTO struct {
	Name  string `gorm:"type:varchar(255);not null;default:''"`
	Email string `gorm:"type:varchar(255);not null;default:''"`
	Phone string `gorm:"type:varchar(64);not null;default:''"`
}

// TrackingDTO is empty (code and carrier blank) until the order ships.
type TrackingDTO struct {
	Code              string `gorm:"type:varchar(128);not null;default:''"`
	Carrier           string `gorm:"type:varchar(64);not null;default:'';index"`
	URL               string `gorm:"type:text;not null;default:''"`
	EstimatedDelivery *time.Time
}

type ItemDTO struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

type FinancialsDTO struct {
	Subtotal decimal.Decimal  `json:"subtotal"`
	Tax      decimal.Decimal  `json:"tax"`
	Shipping decimal.Decimal  `json:"shipping"`
	Discount *decimal.Decimal `json:"discount,omitempty"`
	Total    *decimal.Decimal `json:"total,omitempty"`
}

// TotalsDTO keeps the total fields of older checkout flows under their original names.
type TotalsDTO struct {
	Total         *decimal.Decimal `json:"total,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	GrandTotal    *decimal.Decimal `json:"grandTotal,omitempty"`
	FinalAmount   *decimal.Decimal `json:"finalAmount,omitempty"`
	OrderTotal    *decimal.Decimal `json:"orderTotal,omitempty"`
	PaymentAmount *decimal.Decimal `json:"paymentAmount,omitempty"`
	SummaryTotal  *decimal.Decimal `json:"summaryTotal,omitempty"`
	PricingTotal  *decimal.Decimal `json:"pricingTotal,omitempty"`
}

type AddressDTO struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type HistoryEntryDTO struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Note      string            `json:"note,omitempty"`
	UpdatedBy string            `json:"updatedBy,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// fromDomain converts an order aggregate to its row representation.
func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	items := make([]ItemDTO, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, ItemDTO{Name: it.Name, Price: it.Price.Decimal(), Quantity: it.Quantity, Image: it.Image})
	}

	var address *AddressDTO
	if a := s.ShippingAddress; a != nil {
		address = &AddressDTO{
			Line1: a.Line1, Line2: a.Line2, City: a.City,
			State: a.State, PostalCode: a.PostalCode, Country: a.Country,
		}
	}

	return OrderDTO{
		ID:       s.ID,
		OrderID:  s.OrderID,
		Status:   s.Status.String(),
		Priority: s.Priority.String(),
		Customer: CustomerDTO{Name: s.Customer.Name, Email: s.Customer.Email, Phone: s.Customer.Phone},
		Items:    datatypes.NewJSONSlice(items),
		Financials: datatypes.NewJSONType(FinancialsDTO{
			Subtotal: s.Financials.Subtotal.Decimal(),
			Tax:      s.Financials.Tax.Decimal(),
			Shipping: s.Financials.Shipping.Decimal(),
			Discount: fromMoney(s.Financials.Discount),
			Total:    fromMoney(s.Financials.Total),
		}),
		Totals: datatypes.NewJSONType(TotalsDTO{
			Total:         fromMoney(s.Totals.Total),
			Amount:        fromMoney(s.Totals.Amount),
			GrandTotal:    fromMoney(s.Totals.GrandTotal),
			FinalAmount:   fromMoney(s.Totals.FinalAmount),
			OrderTotal:    fromMoney(s.Totals.OrderTotal),
			PaymentAmount: fromMoney(s.Totals.PaymentAmount),
			SummaryTotal:  fromMoney(s.Totals.SummaryTotal),
			PricingTotal:  fromMoney(s.Totals.PricingTotal),
		}),
		ShippingAddress: datatypes.NewJSONType(address),
		Tracking:        fromTracking(s.Tracking),
		StatusHistory:   fromHistory(s.StatusHistory),
		AdminNotes:      s.AdminNotes,
		CreatedAt:       fromTime(s.CreatedAt),
		OrderDate:       fromTime(s.OrderDate),
	}
}

// toDomain rebuilds the aggregate through RestoreOrder so that stored rows
// pass the same invariants as new orders.
func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	priority, err := order.ParsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, order.Item{
			Name: it.Name, Price: kernel.NewMoneyFromDecimal(it.Price), Quantity: it.Quantity, Image: it.Image,
		})
	}

	f := dto.Financials.Data()
	t := dto.Totals.Data()

	var address *order.Address
	if a := dto.ShippingAddress.Data(); a != nil {
		address = &order.Address{
			Line1: a.Line1, Line2: a.Line2, City: a.City,
			State: a.State, PostalCode: a.PostalCode, Country: a.Country,
		}
	}

	return order.RestoreOrder(order.Snapshot{
		ID:       dto.ID,
		OrderID:  dto.OrderID,
		Status:   status,
		Priority: priority,
		Items:    items,
		Financials: order.Financials{
			Subtotal: kernel.NewMoneyFromDecimal(f.Subtotal),
			Tax:      kernel.NewMoneyFromDecimal(f.Tax),
			Shipping: kernel.NewMoneyFromDecimal(f.Shipping),
			Discount: toMoney(f.Discount),
			Total:    toMoney(f.Total),
		},
		Totals: order.TotalCandidates{
			Total:         toMoney(t.Total),
			Amount:        toMoney(t.Amount),
			GrandTotal:    toMoney(t.GrandTotal),
			FinalAmount:   toMoney(t.FinalAmount),
			OrderTotal:    toMoney(t.OrderTotal),
			PaymentAmount: toMoney(t.PaymentAmount),
			SummaryTotal:  toMoney(t.SummaryTotal),
			PricingTotal:  toMoney(t.PricingTotal),
		},
		Customer:        order.Customer{Name: dto.Customer.Name, Email: dto.Customer.Email, Phone: dto.Customer.Phone},
		ShippingAddress: address,
		Tracking:        toTracking(dto.Tracking),
		StatusHistory:   toHistory(dto.StatusHistory),
		AdminNotes:      dto.AdminNotes,
		CreatedAt:       toTime(dto.CreatedAt),
		OrderDate:       toTime(dto.OrderDate),
	})
}

// patchColumns lists the columns written by p. Only fields set in the patch are present.
func patchColumns(p order.Patch) map[string]any {
	cols := make(map[string]any, 6)
	if p.Status != nil {
		cols["status"] = p.Status.String()
	}
	if p.StatusHistory != nil {
		cols["status_history"] = fromHistory(p.StatusHistory)
	}
	if p.Tracking != nil {
		t := fromTracking(p.Tracking)
		cols["tracking_code"] = t.Code
		cols["tracking_carrier"] = t.Carrier
		cols["tracking_url"] = t.URL
		cols["tracking_estimated_delivery"] = t.EstimatedDelivery
	}
	if p.Priority != nil {
		cols["priority"] = p.Priority.String()
	}
	return cols
}

func fromTracking(t *order.Tracking) TrackingDTO {
	if t == nil {
		return TrackingDTO{}
	}
	return TrackingDTO{Code: t.Code, Carrier: t.Carrier, URL: t.URL, EstimatedDelivery: t.EstimatedDelivery}
}

func toTracking(t TrackingDTO) *order.Tracking {
	if t.Code == "" && t.Carrier == "" {
		return nil
	}
	return &order.Tracking{Code: t.Code, Carrier: t.Carrier, URL: t.URL, EstimatedDelivery: t.EstimatedDelivery}
}

func fromHistory(h []order.HistoryEntry) datatypes.JSONSlice[HistoryEntryDTO] {
	out := make([]HistoryEntryDTO, 0, len(h))
	for _, e := range h {
		out = append(out, HistoryEntryDTO{
			Status: e.StatusName(), Timestamp: e.Timestamp, Note: e.Note, UpdatedBy: e.UpdatedBy, Metadata: e.Metadata,
		})
	}
	return datatypes.NewJSONSlice(out)
}

// toHistory keeps entries with unrecognized statuses as Unknown and remembers
// the stored name so fromHistory writes it back unchanged. The audit trail is
// never dropped or reordered on read.
func toHistory(h datatypes.JSONSlice[HistoryEntryDTO]) []order.HistoryEntry {
	out := make([]order.HistoryEntry, 0, len(h))
	for _, e := range h {
		entry := order.HistoryEntry{
			Timestamp: e.Timestamp, Note: e.Note, UpdatedBy: e.UpdatedBy, Metadata: e.Metadata,
		}
		status, err := order.ParseStatus(e.Status)
		if err != nil {
			entry.RawStatus = e.Status
		}
		entry.Status = status
		out = append(out, entry)
	}
	return out
}

func fromMoney(m *kernel.Money) *decimal.Decimal {
	if m == nil {
		return nil
	}
	d := m.Decimal()
	return &d
}

func toMoney(d *decimal.Decimal) *kernel.Money {
	if d == nil {
		return nil
	}
	m := kernel.NewMoneyFromDecimal(*d)
	return &m
}

func fromTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func toTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
