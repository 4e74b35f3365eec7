package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchen-api/dtos"
	"kitchen-api/middlewares"
	"kitchen-api/services"
)

type OrderController struct {
	orders *services.OrderService
	log    *zap.Logger
}

func NewOrderController(orders *services.OrderService, log *zap.Logger) *OrderController {
	return &OrderController{orders: orders, log: log}
}

// CreateOrder is customer self-checkout; the order is created for the
// authenticated caller.
func (ctl *OrderController) CreateOrder(c *gin.Context) {
	var input dtos.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString(middlewares.CtxUserID)
	order, err := ctl.orders.Create(userID, input.Lines, false)
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// CreateManualOrder creates an order on a customer's behalf (admin).
func (ctl *OrderController) CreateManualOrder(c *gin.Context) {
	var input dtos.CreateManualOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := ctl.orders.Create(input.UserID, input.Lines, true)
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (ctl *OrderController) UpdateManualOrder(c *gin.Context) {
	var input dtos.UpdateManualOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := ctl.orders.UpdateManual(c.Param("id"), input.Lines)
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (ctl *OrderController) DeleteOrder(c *gin.Context) {
	if err := ctl.orders.Delete(c.Param("id")); err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

// GetOrders lists all orders, optionally filtered by ?date=YYYY-MM-DD.
func (ctl *OrderController) GetOrders(c *gin.Context) {
	orders, err := ctl.orders.GetOrders(c.Query("date"), "")
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetMyOrders lists the authenticated caller's own orders.
func (ctl *OrderController) GetMyOrders(c *gin.Context) {
	userID := c.GetString(middlewares.CtxUserID)
	orders, err := ctl.orders.GetOrders(c.Query("date"), userID)
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (ctl *OrderController) GetDatesWithOrders(c *gin.Context) {
	days, err := ctl.orders.GetDatesWithOrders()
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

func (ctl *OrderController) UpdatePayment(c *gin.Context) {
	var input dtos.UpdatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := ctl.orders.UpdatePayment(c.Param("id"), *input.CentsPaid)
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (ctl *OrderController) MarkPaidInFull(c *gin.Context) {
	order, err := ctl.orders.MarkPaidInFull(c.Param("id"))
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
