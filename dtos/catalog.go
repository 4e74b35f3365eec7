package dtos

type GroupAssignmentInput struct {
	ModifierGroupID string `json:"modifier_group_id" binding:"required,uuid"`
	SortOrder       int    `json:"sort_order"`
}

type MenuItemInput struct {
	Name        string                 `json:"name" binding:"required,min=1,max=100"`
	Description string                 `json:"description"`
	BasePrice   int64                  `json:"base_price" binding:"min=0"`
	Groups      []GroupAssignmentInput `json:"groups" binding:"dive"`
}

type ModifierOptionInput struct {
	// ID is set when updating an existing option; options omitted from
	// an update are soft-deleted, options without an ID are created.
	ID         string `json:"id" binding:"omitempty,uuid"`
	Name       string `json:"name" binding:"required,min=1,max=100"`
	PriceDelta int64  `json:"price_delta"`
}

type ModifierGroupInput struct {
	Name      string                `json:"name" binding:"required,min=1,max=100"`
	MinSelect int                   `json:"min_select" binding:"min=0"`
	MaxSelect *int                  `json:"max_select" binding:"omitempty,min=0"`
	Options   []ModifierOptionInput `json:"options" binding:"dive"`
}
