package dtos

type MenuSaveInput struct {
	Date string `json:"date" binding:"required,dateymd"`
	// MenuItemIDs is the full ordered item list for the day; existing
	// entries not in it are removed.
	MenuItemIDs []string `json:"menu_item_ids" binding:"dive,uuid"`
}

type CustomEntryInput struct {
	Date       string `json:"date" binding:"required,dateymd"`
	MenuItemID string `json:"menu_item_id" binding:"required,uuid"`
}
