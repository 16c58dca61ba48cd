// Package memory holds the in-process working copy of the order list.
package memory

import (
	"sync"

	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
)

// OrderWorkingCopy is a copy-on-write snapshot of the orders loaded from the store.
// Readers get stable order values: Apply replaces the affected order instead of
// mutating it, so slices returned by All are never changed afterwards.
type OrderWorkingCopy struct {
	mu     sync.RWMutex
	orders []*order.Order
	index  map[string]int
}

func NewOrderWorkingCopy() *OrderWorkingCopy {
	return &OrderWorkingCopy{index: make(map[string]int)}
}

func (c *OrderWorkingCopy) All() []*order.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*order.Order(nil), c.orders...)
}

func (c *OrderWorkingCopy) Apply(id string, p order.Patch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return
	}
	updated := c.orders[i].Clone()
	updated.Apply(p)
	c.orders[i] = updated
}

func (c *OrderWorkingCopy) Replace(orders []*order.Order) {
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		index[o.ID()] = i
	}

	c.mu.Lock()
	c.orders = append([]*order.Order(nil), orders...)
	c.index = index
	c.mu.Unlock()
}

