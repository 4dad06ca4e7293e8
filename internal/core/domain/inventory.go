package domain

// InventoryItem is a stock-keeping record. Allocated never exceeds Total and
// never goes negative; Available is derived, not stored.
type InventoryItem struct {
	ID          int
	Name        string
	Total       int
	Allocated   int
	Description string
}

// Available returns the quantity not reserved by any event.
func (i *InventoryItem) Available() int {
	return i.Total - i.Allocated
}

// Allocate reserves qty units. The item is unchanged on error.
func (i *InventoryItem) Allocate(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if qty > i.Available() {
		return ErrInsufficientAvailable
	}
	i.Allocated += qty
	return nil
}

// Deallocate releases qty units back to the available pool.
func (i *InventoryItem) Deallocate(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if qty > i.Allocated {
		return ErrOverDeallocation
	}
	i.Allocated -= qty
	return nil
}

// SetTotal replaces the total quantity. Shrinking below the currently
// allocated amount is rejected.
func (i *InventoryItem) SetTotal(total int) error {
	if total < 0 {
		return ErrNegativeQuantity
	}
	if total < i.Allocated {
		return ErrBelowAllocated
	}
	i.Total = total
	return nil
}
