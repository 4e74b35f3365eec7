package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchen-api/dtos"
	"kitchen-api/services"
)

type ModifierGroupController struct {
	catalog *services.CatalogService
	log     *zap.Logger
}

func NewModifierGroupController(catalog *services.CatalogService, log *zap.Logger) *ModifierGroupController {
	return &ModifierGroupController{catalog: catalog, log: log}
}

func (ctl *ModifierGroupController) GetModifierGroups(c *gin.Context) {
	groups, err := ctl.catalog.ListModifierGroups()
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (ctl *ModifierGroupController) GetModifierGroupByID(c *gin.Context) {
	group, err := ctl.catalog.GetModifierGroup(c.Param("id"))
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (ctl *ModifierGroupController) CreateModifierGroup(c *gin.Context) {
	var input dtos.ModifierGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := ctl.catalog.CreateModifierGroup(input)
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (ctl *ModifierGroupController) UpdateModifierGroup(c *gin.Context) {
	var input dtos.ModifierGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := ctl.catalog.UpdateModifierGroup(c.Param("id"), input)
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (ctl *ModifierGroupController) DeleteModifierGroup(c *gin.Context) {
	if err := ctl.catalog.DeleteModifierGroup(c.Param("id")); err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Modifier group deleted"})
}
