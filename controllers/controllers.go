package controllers

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"kitchen-api/services"
)

// Controllers wires every service and handler off one database handle
// and one logger, constructed in main and passed to the router.
type Controllers struct {
	Auth          *AuthController
	MenuItem      *MenuItemController
	ModifierGroup *ModifierGroupController
	MenuEntry     *MenuEntryController
	Order         *OrderController
	Aggregation   *AggregationController
	Cart          *CartController
}

func New(db *gorm.DB, log *zap.Logger, jwtSecret string, loc *time.Location) *Controllers {
	authService := services.NewAuthService(db, log, jwtSecret)
	catalogService := services.NewCatalogService(db, log)
	menuService := services.NewMenuService(db, log, loc)
	orderService := services.NewOrderService(db, log, loc)
	aggregationService := services.NewAggregationService(db, log, loc)
	cartService := services.NewCartService(db, log)

	return &Controllers{
		Auth:          NewAuthController(authService, log),
		MenuItem:      NewMenuItemController(catalogService, log),
		ModifierGroup: NewModifierGroupController(catalogService, log),
		MenuEntry:     NewMenuEntryController(menuService, log),
		Order:         NewOrderController(orderService, log),
		Aggregation:   NewAggregationController(aggregationService, log),
		Cart:          NewCartController(cartService, log),
	}
}
