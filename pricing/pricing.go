// Package pricing holds the price arithmetic shared by cart preview,
// order creation and order edit. All values are integer minor currency
// units; the three call sites must agree bit for bit, so none of them
// may reimplement this.
package pricing

// UnitPrice is the per-unit price of an item with the given selected
// modifier deltas applied.
func UnitPrice(basePrice int64, deltas []int64) int64 {
	price := basePrice
	for _, d := range deltas {
		price += d
	}
	return price
}

// LineTotal multiplies a unit price by the line quantity.
func LineTotal(unitPrice int64, quantity int) int64 {
	return unitPrice * int64(quantity)
}

// Line is one order line as seen by the total computation.
type Line struct {
	UnitPrice int64
	Quantity  int
}

// OrderTotal sums line totals into an order total.
func OrderTotal(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += LineTotal(l.UnitPrice, l.Quantity)
	}
	return total
}
