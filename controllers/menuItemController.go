package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchen-api/dtos"
	"kitchen-api/services"
)

type MenuItemController struct {
	catalog *services.CatalogService
	log     *zap.Logger
}

func NewMenuItemController(catalog *services.CatalogService, log *zap.Logger) *MenuItemController {
	return &MenuItemController{catalog: catalog, log: log}
}

func (ctl *MenuItemController) GetMenuItems(c *gin.Context) {
	items, err := ctl.catalog.ListMenuItems()
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (ctl *MenuItemController) GetMenuItemByID(c *gin.Context) {
	item, err := ctl.catalog.GetMenuItem(c.Param("id"))
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ctl *MenuItemController) CreateMenuItem(c *gin.Context) {
	var input dtos.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := ctl.catalog.CreateMenuItem(input)
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (ctl *MenuItemController) UpdateMenuItem(c *gin.Context) {
	var input dtos.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := ctl.catalog.UpdateMenuItem(c.Param("id"), input)
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ctl *MenuItemController) DeleteMenuItem(c *gin.Context) {
	if err := ctl.catalog.DeleteMenuItem(c.Param("id")); err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}
