package order

// Patch is a partial-field update of an order document. Nil fields are left
// untouched by the store. StatusHistory, when set, is the complete extended
// history: it always equals the previous history plus the appended entries.
type Patch struct {
	Status        *Status
	StatusHistory []HistoryEntry
	Tracking      *Tracking
	Priority      *Priority
}

// IsEmpty reports whether the patch would write nothing.
func (p Patch) IsEmpty() bool {
	return p.Status == nil && p.StatusHistory == nil && p.Tracking == nil && p.Priority == nil
}

// Apply mirrors committed fields into the working copy. It must only be called
// once the store accepted the same patch.
func (o *Order) Apply(p Patch) {
	if p.Status != nil {
		o.status = *p.Status
	}
	if p.StatusHistory != nil {
		o.history = cloneHistory(p.StatusHistory)
	}
	if p.Tracking != nil {
		t := *p.Tracking
		o.tracking = &t
	}
	if p.Priority != nil {
		o.priority = *p.Priority
	}
}
