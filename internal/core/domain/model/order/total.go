package order

import "github.com/thanosshawn/shopAdmin/internal/core/domain/model/kernel"

// TotalCandidates holds the total fields written by older checkout paths.
// Each one is optional; EffectiveTotal documents the order in which they win.
type TotalCandidates struct {
	Total         *kernel.Money
	Amount        *kernel.Money
	GrandTotal    *kernel.Money
	FinalAmount   *kernel.Money
	OrderTotal    *kernel.Money
	PaymentAmount *kernel.Money
	SummaryTotal  *kernel.Money
	PricingTotal  *kernel.Money
}

// EffectiveTotal resolves the monetary total of the order. The first present,
// non-zero value wins in this order:
//
//	total, amount, grandTotal, finalAmount, orderTotal,
//	financials.total, payment.amount, summary.total, pricing.total
//
// Without any of them the total is the sum of price × quantity over items,
// which is zero for an order without items.
func (o *Order) EffectiveTotal() kernel.Money {
	t := o.totals
	candidates := []*kernel.Money{
		t.Total,
		t.Amount,
		t.GrandTotal,
		t.FinalAmount,
		t.OrderTotal,
		o.financials.Total,
		t.PaymentAmount,
		t.SummaryTotal,
		t.PricingTotal,
	}
	for _, c := range candidates {
		if c != nil && !c.IsZero() {
			return *c
		}
	}

	sum := kernel.Zero
	for _, it := range o.items {
		sum = sum.Add(it.Price.Times(it.Quantity))
	}
	return sum
}
