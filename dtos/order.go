package dtos

type OrderLineInput struct {
	MenuEntryID       string   `json:"menu_entry_id" binding:"required,uuid"`
	Quantity          int      `json:"quantity" binding:"required,min=1"`
	ModifierOptionIDs []string `json:"modifier_option_ids" binding:"dive,uuid"`
}

type CreateOrderInput struct {
	Lines []OrderLineInput `json:"lines" binding:"required,min=1,dive"`
}

type CreateManualOrderInput struct {
	UserID string           `json:"user_id" binding:"required,uuid"`
	Lines  []OrderLineInput `json:"lines" binding:"required,min=1,dive"`
}

type UpdateManualOrderInput struct {
	Lines []OrderLineInput `json:"lines" binding:"required,min=1,dive"`
}

type UpdatePaymentInput struct {
	CentsPaid *int64 `json:"cents_paid" binding:"required"`
}

type PersonBaggedInput struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Date   string `json:"date" binding:"required,dateymd"`
}
