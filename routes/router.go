package routes

import (
	"github.com/gin-gonic/gin"

	"kitchen-api/controllers"
	"kitchen-api/middlewares"
	"kitchen-api/models"
)

func RegisterRoutes(r *gin.Engine, ctl *controllers.Controllers, jwtSecret string) {

	r.POST("/auth/register", ctl.Auth.Register)
	r.POST("/auth/login", ctl.Auth.Login)

	// Public reads for the customer-facing menu and cart preview
	public := r.Group("/")
	public.Use(middlewares.OptionalAuthMiddleware(jwtSecret))
	{
		public.GET("/menu-items", ctl.MenuItem.GetMenuItems)
		public.GET("/menu-items/:id", ctl.MenuItem.GetMenuItemByID)
		public.GET("/modifier-groups", ctl.ModifierGroup.GetModifierGroups)
		public.GET("/modifier-groups/:id", ctl.ModifierGroup.GetModifierGroupByID)
		public.GET("/menu/date/:date", ctl.MenuEntry.GetByDate)
		public.GET("/menu/range", ctl.MenuEntry.GetByDateRange)
		public.POST("/cart/reconcile", ctl.Cart.Reconcile)
	}

	// Customer self-checkout
	orders := r.Group("/orders")
	orders.Use(middlewares.AuthMiddleware(jwtSecret))
	{
		orders.POST("/", ctl.Order.CreateOrder)
		orders.GET("/mine", ctl.Order.GetMyOrders)
	}

	// Admin: catalog, calendar, orders and the kitchen views
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(jwtSecret), middlewares.RoleMiddleware(models.RoleAdmin))
	{
		admin.POST("/menu-items", ctl.MenuItem.CreateMenuItem)
		admin.PUT("/menu-items/:id", ctl.MenuItem.UpdateMenuItem)
		admin.DELETE("/menu-items/:id", ctl.MenuItem.DeleteMenuItem)

		admin.POST("/modifier-groups", ctl.ModifierGroup.CreateModifierGroup)
		admin.PUT("/modifier-groups/:id", ctl.ModifierGroup.UpdateModifierGroup)
		admin.DELETE("/modifier-groups/:id", ctl.ModifierGroup.DeleteModifierGroup)

		admin.POST("/menu/save", ctl.MenuEntry.Save)
		admin.POST("/menu/custom", ctl.MenuEntry.CreateCustomEntry)
		admin.POST("/menu/custom/:id/convert", ctl.MenuEntry.ConvertCustomToNormal)

		admin.GET("/orders", ctl.Order.GetOrders)
		admin.GET("/orders/dates", ctl.Order.GetDatesWithOrders)
		admin.POST("/orders/manual", ctl.Order.CreateManualOrder)
		admin.PUT("/orders/manual/:id", ctl.Order.UpdateManualOrder)
		admin.DELETE("/orders/:id", ctl.Order.DeleteOrder)
		admin.PATCH("/orders/:id/payment", ctl.Order.UpdatePayment)
		admin.POST("/orders/:id/paid-in-full", ctl.Order.MarkPaidInFull)

		admin.GET("/views/cooking/:date", ctl.Aggregation.GetCookingView)
		admin.GET("/views/bagging/:date", ctl.Aggregation.GetBaggingView)
		admin.GET("/views/payment/:date", ctl.Aggregation.GetPaymentView)
		admin.POST("/views/bagging/mark", ctl.Aggregation.MarkPersonBagged)
		admin.POST("/views/bagging/unmark", ctl.Aggregation.UnmarkPersonBagged)
	}
}
