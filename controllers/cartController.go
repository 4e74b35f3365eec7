package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchen-api/dtos"
	"kitchen-api/services"
)

type CartController struct {
	cart *services.CartService
	log  *zap.Logger
}

func NewCartController(cart *services.CartService, log *zap.Logger) *CartController {
	return &CartController{cart: cart, log: log}
}

// Reconcile validates and prices a client-held cart. Stale entries are
// dropped, not reported as errors; the response carries the repaired
// cart the client should persist.
func (ctl *CartController) Reconcile(c *gin.Context) {
	var input dtos.CartReconcileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := ctl.cart.Reconcile(input.Items)
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
