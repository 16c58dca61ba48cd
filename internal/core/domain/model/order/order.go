package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/kernel"
	"github.com/thanosshawn/shopAdmin/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Item is one order line. Items are immutable once the order is placed.
type Item struct {
	Name     string
	Price    kernel.Money
	Quantity int
	Image    string
}

// Financials is the price breakdown stored with the order. Discount and Total
// are optional; Total is frequently missing on legacy records.
type Financials struct {
	Subtotal kernel.Money
	Tax      kernel.Money
	Shipping kernel.Money
	Discount *kernel.Money
	Total    *kernel.Money
}

type Customer struct {
	Name  string
	Email string
	Phone string
}

type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Tracking binds a shipped order to a carrier. Code and Carrier are opaque strings.
type Tracking struct {
	Code              string
	Carrier           string
	URL               string
	EstimatedDelivery *time.Time
}

// HistoryEntry is one record of the append-only status audit trail.
type HistoryEntry struct {
	Status    Status
	Timestamp time.Time
	Note      string
	UpdatedBy string
	Metadata  map[string]string

	// RawStatus is the stored name of a status this version does not know.
	// It is empty for recognized statuses.
	RawStatus string
}

// StatusName returns the status as it is stored, keeping unrecognized names intact.
func (e HistoryEntry) StatusName() string {
	if e.Status == Unknown && e.RawStatus != "" {
		return e.RawStatus
	}
	return e.Status.String()
}

// Snapshot is the plain-data form of an order exchanged with adapters.
type Snapshot struct {
	ID              string
	OrderID         string
	Status          Status
	Priority        Priority
	Items           []Item
	Financials      Financials
	Totals          TotalCandidates
	Customer        Customer
	ShippingAddress *Address
	Tracking        *Tracking
	StatusHistory   []HistoryEntry
	AdminNotes      string
	CreatedAt       time.Time
	OrderDate       time.Time
}

// Order is the aggregate root of the order workflow.
//
// Order follows these invariants:
//   - Must have a persistence identifier
//   - Status is always a valid lifecycle state
//   - Status changes are planned as a Patch, committed by the store, then applied;
//     every status change appends exactly one history entry
//   - History is never reordered or truncated
type Order struct {
	id         string
	orderID    string
	status     Status
	priority   Priority
	items      []Item
	financials Financials
	totals     TotalCandidates
	customer   Customer
	address    *Address
	tracking   *Tracking
	history    []HistoryEntry
	adminNotes string
	createdAt  time.Time
	orderDate  time.Time

	isConstructed bool
}

// NewOrder creates a freshly placed order with a single Placed history entry.
// Production orders are placed by an external flow; this constructor serves
// seeding and tests.
func NewOrder(id, orderID string, customer Customer, items []Item, financials Financials, at time.Time) (*Order, error) {
	return RestoreOrder(Snapshot{
		ID:         id,
		OrderID:    orderID,
		Status:     Placed,
		Priority:   Normal,
		Items:      items,
		Financials: financials,
		Customer:   customer,
		StatusHistory: []HistoryEntry{
			{Status: Placed, Timestamp: at, Note: "Order placed"},
		},
		CreatedAt: at,
	})
}

// RestoreOrder rebuilds an order read from persistence.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		orderID:    s.OrderID,
		items:      append([]Item(nil), s.Items...),
		financials: s.Financials,
		totals:     s.Totals,
		customer:   s.Customer,
		history:    cloneHistory(s.StatusHistory),
		adminNotes: s.AdminNotes,
		createdAt:  s.CreatedAt,
		orderDate:  s.OrderDate,

		isConstructed: true,
	}
	if s.ShippingAddress != nil {
		a := *s.ShippingAddress
		o.address = &a
	}
	if s.Tracking != nil {
		t := *s.Tracking
		o.tracking = &t
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setStatus(s.Status),
		o.setPriority(s.Priority),
		o.setItems(s.Items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() string {
	return o.id
}

func (o *Order) OrderID() string {
	return o.orderID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Priority() Priority {
	return o.priority
}

func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

func (o *Order) Financials() Financials {
	return o.financials
}

func (o *Order) Totals() TotalCandidates {
	return o.totals
}

func (o *Order) Customer() Customer {
	return o.customer
}

func (o *Order) AdminNotes() string {
	return o.adminNotes
}

func (o *Order) StatusHistory() []HistoryEntry {
	return cloneHistory(o.history)
}

// ShippingAddress returns nil when the order has no structured address.
func (o *Order) ShippingAddress() *Address {
	if o.address == nil {
		return nil
	}
	a := *o.address
	return &a
}

// Tracking returns nil until the order is shipped.
func (o *Order) Tracking() *Tracking {
	if o.tracking == nil {
		return nil
	}
	t := *o.tracking
	return &t
}

// CreatedAt returns the creation timestamp, preferring createdAt over orderDate.
// ok is false when the record carries neither.
func (o *Order) CreatedAt() (at time.Time, ok bool) {
	switch {
	case !o.createdAt.IsZero():
		return o.createdAt, true
	case !o.orderDate.IsZero():
		return o.orderDate, true
	default:
		return time.Time{}, false
	}
}

// Snapshot returns a detached copy of all fields.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:              o.id,
		OrderID:         o.orderID,
		Status:          o.status,
		Priority:        o.priority,
		Items:           o.Items(),
		Financials:      o.financials,
		Totals:          o.totals,
		Customer:        o.customer,
		ShippingAddress: o.ShippingAddress(),
		Tracking:        o.Tracking(),
		StatusHistory:   o.StatusHistory(),
		AdminNotes:      o.adminNotes,
		CreatedAt:       o.createdAt,
		OrderDate:       o.orderDate,
	}
}

// Clone returns a copy that shares no mutable state with o.
func (o *Order) Clone() *Order {
	c := *o
	c.items = o.Items()
	c.address = o.ShippingAddress()
	c.tracking = o.Tracking()
	c.history = o.StatusHistory()
	return &c
}

// TransitionInfo carries the operator-supplied context of a status change.
type TransitionInfo struct {
	Note      string
	UpdatedBy string
	Metadata  map[string]string
}

// PlanTransition validates a status change and returns the patch that records it.
// The order itself is left untouched until Apply is called with the committed patch.
//
// Example:
//
//	patch, err := o.PlanTransition(order.Approved, order.TransitionInfo{UpdatedBy: "ops"}, time.Now())
//	if err != nil {
//	    return err // *errs.InvalidTransitionError
//	}
//	if err = repo.Patch(ctx, o.ID(), patch); err != nil {
//	    return err
//	}
//	o.Apply(patch)
func (o *Order) PlanTransition(target Status, info TransitionInfo, at time.Time) (Patch, error) {
	next, err := o.status.Transition(target)
	if err != nil {
		return Patch{}, err
	}

	note := strings.TrimSpace(info.Note)
	if note == "" {
		note = fmt.Sprintf("Order %s by admin", next)
	}

	return Patch{
		Status: &next,
		StatusHistory: o.appendHistory(HistoryEntry{
			Status:    next,
			Timestamp: at,
			Note:      note,
			UpdatedBy: info.UpdatedBy,
			Metadata:  info.Metadata,
		}),
	}, nil
}

// TrackingInfo is what the operator enters when handing a parcel to a carrier.
// Service, Weight and Notes only end up in the history note.
type TrackingInfo struct {
	Code      string
	Carrier   string
	Service   string
	Weight    string
	Notes     string
	UpdatedBy string
}

// PlanTracking binds a carrier and tracking code to a Packed order and
// advances it to Shipped, fused into a single patch.
func (o *Order) PlanTracking(info TrackingInfo, at time.Time) (Patch, error) {
	code := strings.TrimSpace(info.Code)
	carrier := strings.TrimSpace(info.Carrier)

	var missing []error
	if code == "" {
		missing = append(missing, errs.NewValueIsRequiredError("tracking code"))
	}
	if carrier == "" {
		missing = append(missing, errs.NewValueIsRequiredError("carrier"))
	}
	if err := errors.Join(missing...); err != nil {
		return Patch{}, err
	}

	next, err := o.status.Ship()
	if err != nil {
		return Patch{}, err
	}

	return Patch{
		Status:   &next,
		Tracking: &Tracking{Code: code, Carrier: carrier},
		StatusHistory: o.appendHistory(HistoryEntry{
			Status:    next,
			Timestamp: at,
			Note:      trackingNote(code, carrier, info),
			UpdatedBy: info.UpdatedBy,
			Metadata:  map[string]string{"tracking_code": code, "carrier": carrier},
		}),
	}, nil
}

// PlanPriority returns the patch that changes the priority. Priority is not a
// status, so no history entry is appended.
func (o *Order) PlanPriority(p Priority) (Patch, error) {
	if err := p.Validate(); err != nil {
		return Patch{}, err
	}
	return Patch{Priority: &p}, nil
}

func trackingNote(code, carrier string, info TrackingInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shipped via %s, tracking %s", carrier, code)
	if s := strings.TrimSpace(info.Service); s != "" {
		fmt.Fprintf(&b, ", service %s", s)
	}
	if w := strings.TrimSpace(info.Weight); w != "" {
		fmt.Fprintf(&b, ", weight %s", w)
	}
	if n := strings.TrimSpace(info.Notes); n != "" {
		fmt.Fprintf(&b, ". %s", n)
	}
	return b.String()
}

func (o *Order) appendHistory(entry HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, len(o.history), len(o.history)+1)
	copy(out, o.history)
	return append(out, entry)
}

func (o *Order) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	o.id = id
	return nil
}

func (o *Order) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.status = s
	return nil
}

func (o *Order) setPriority(p Priority) error {
	if err := p.Validate(); err != nil {
		return err
	}
	o.priority = p
	return nil
}

func (o *Order) setItems(items []Item) error {
	for i, it := range items {
		if it.Quantity < 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"item quantity is invalid",
				fmt.Errorf("item %d has quantity %d", i, it.Quantity),
			)
		}
	}
	return nil
}

func cloneHistory(h []HistoryEntry) []HistoryEntry {
	if h == nil {
		return nil
	}
	out := make([]HistoryEntry, len(h))
	copy(out, h)
	return out
}
