package services

import (
	"strings"
	"time"

	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/kernel"
	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
)

// AllValues is the select-box value that disables a status, priority or carrier predicate.
const AllValues = "all"

// DateRange bounds the creation time of an order. Either bound may be nil.
// End is inclusive up to the last millisecond of its day.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// FilterState is the session-local filter bar of the order list.
// Empty values and AllValues disable the corresponding predicate.
type FilterState struct {
	Status     string
	Priority   string
	SearchTerm string
	DateRange  DateRange
	MinAmount  string
	Carrier    string
}

// StageCount is the number of orders left after a predicate and all predicates before it.
type StageCount struct {
	Predicate string
	Remaining int
}

// FilterReport describes one filter run for diagnostics. Stage counts depend on
// predicate order; the filtered output does not.
type FilterReport struct {
	Input  int
	Output int
	Stages []StageCount
}

type predicate struct {
	name  string
	match func(o *order.Order) bool
}

// OrderFilter applies a FilterState to an order collection.
//
// Example usage:
//
//	filter := services.NewOrderFilter()
//	visible, report := filter.Apply(orders, services.FilterState{Status: "Placed", MinAmount: "500"})
//	logger.Debug("orders filtered", "in", report.Input, "out", report.Output)
type OrderFilter struct{}

func NewOrderFilter() OrderFilter {
	return OrderFilter{}
}

// Apply returns the orders matching every active predicate, in input order.
// The input slice is not modified.
func (f OrderFilter) Apply(orders []*order.Order, state FilterState) ([]*order.Order, FilterReport) {
	predicates := f.predicates(state)

	report := FilterReport{Input: len(orders), Stages: make([]StageCount, len(predicates))}
	for i, p := range predicates {
		report.Stages[i].Predicate = p.name
	}

	out := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		passed := 0
		for _, p := range predicates {
			if !p.match(o) {
				break
			}
			passed++
		}
		for i := 0; i < passed; i++ {
			report.Stages[i].Remaining++
		}
		if passed == len(predicates) {
			out = append(out, o)
		}
	}
	report.Output = len(out)

	return out, report
}

// IsEmpty reports whether state disables every predicate.
func (s FilterState) IsEmpty() bool {
	_, numeric := s.minAmount()
	return !isActive(s.Status) &&
		!isActive(s.Priority) &&
		strings.TrimSpace(s.SearchTerm) == "" &&
		s.DateRange.Start == nil && s.DateRange.End == nil &&
		!numeric &&
		!isActive(s.Carrier)
}

func (s FilterState) minAmount() (kernel.Money, bool) {
	raw := strings.TrimSpace(s.MinAmount)
	if raw == "" {
		return kernel.Zero, false
	}
	m, err := kernel.MoneyFromString(raw)
	if err != nil {
		return kernel.Zero, false
	}
	return m, true
}

func (f OrderFilter) predicates(state FilterState) []predicate {
	var ps []predicate

	if isActive(state.Status) {
		want := strings.TrimSpace(state.Status)
		ps = append(ps, predicate{"status", func(o *order.Order) bool {
			return o.Status().String() == want
		}})
	}

	if isActive(state.Priority) {
		want := strings.TrimSpace(state.Priority)
		ps = append(ps, predicate{"priority", func(o *order.Order) bool {
			return o.Priority().String() == want
		}})
	}

	if term := strings.ToLower(strings.TrimSpace(state.SearchTerm)); term != "" {
		ps = append(ps, predicate{"search", func(o *order.Order) bool {
			return matchesSearch(o, term)
		}})
	}

	if minAmount, ok := state.minAmount(); ok {
		ps = append(ps, predicate{"min_amount", func(o *order.Order) bool {
			return o.EffectiveTotal().GreaterThanOrEqual(minAmount)
		}})
	}

	if isActive(state.Carrier) {
		want := strings.TrimSpace(state.Carrier)
		ps = append(ps, predicate{"carrier", func(o *order.Order) bool {
			t := o.Tracking()
			return t != nil && t.Carrier == want
		}})
	}

	if state.DateRange.Start != nil || state.DateRange.End != nil {
		start, end := state.DateRange.Start, state.DateRange.End
		var endOfDay time.Time
		if end != nil {
			endOfDay = EndOfDay(*end)
		}
		ps = append(ps, predicate{"date_range", func(o *order.Order) bool {
			at, ok := o.CreatedAt()
			if !ok {
				return false
			}
			if start != nil && at.Before(*start) {
				return false
			}
			if end != nil && at.After(endOfDay) {
				return false
			}
			return true
		}})
	}

	return ps
}

// EndOfDay returns 23:59:59.999 of t's day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func matchesSearch(o *order.Order, term string) bool {
	c := o.Customer()
	fields := []string{o.OrderID(), o.ID(), c.Name, c.Email, c.Phone, o.AdminNotes()}
	for _, it := range o.Items() {
		fields = append(fields, it.Name)
	}
	if t := o.Tracking(); t != nil {
		fields = append(fields, t.Code)
	}

	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func isActive(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, AllValues)
}
