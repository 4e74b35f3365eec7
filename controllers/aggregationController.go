package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchen-api/dtos"
	"kitchen-api/services"
)

type AggregationController struct {
	agg *services.AggregationService
	log *zap.Logger
}

func NewAggregationController(agg *services.AggregationService, log *zap.Logger) *AggregationController {
	return &AggregationController{agg: agg, log: log}
}

// GET /admin/views/cooking/:date
func (ctl *AggregationController) GetCookingView(c *gin.Context) {
	rows, err := ctl.agg.GetCookingView(c.Param("date"))
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /admin/views/bagging/:date
func (ctl *AggregationController) GetBaggingView(c *gin.Context) {
	persons, err := ctl.agg.GetBaggingView(c.Param("date"))
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, persons)
}

// GET /admin/views/payment/:date
func (ctl *AggregationController) GetPaymentView(c *gin.Context) {
	rows, err := ctl.agg.GetPaymentView(c.Param("date"))
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ctl *AggregationController) MarkPersonBagged(c *gin.Context) {
	var input dtos.PersonBaggedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctl.agg.MarkPersonBagged(input.UserID, input.Date); err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Person marked bagged"})
}

func (ctl *AggregationController) UnmarkPersonBagged(c *gin.Context) {
	var input dtos.PersonBaggedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctl.agg.UnmarkPersonBagged(input.UserID, input.Date); err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Person unmarked bagged"})
}
