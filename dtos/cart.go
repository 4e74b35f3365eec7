package dtos

// CartReconcileInput is the client's locally persisted cart: sku key to
// quantity.
type CartReconcileInput struct {
	Items map[string]int `json:"items" binding:"required"`
}
