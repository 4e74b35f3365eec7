package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchen-api/dtos"
	"kitchen-api/services"
)

type MenuEntryController struct {
	menu *services.MenuService
	log  *zap.Logger
}

func NewMenuEntryController(menu *services.MenuService, log *zap.Logger) *MenuEntryController {
	return &MenuEntryController{menu: menu, log: log}
}

// GET /menu/date/:date
func (ctl *MenuEntryController) GetByDate(c *gin.Context) {
	entries, err := ctl.menu.GetByDate(c.Param("date"))
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GET /menu/range?from=YYYY-MM-DD&to=YYYY-MM-DD
func (ctl *MenuEntryController) GetByDateRange(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to parameters are required"})
		return
	}

	entries, err := ctl.menu.GetByDateRange(from, to)
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (ctl *MenuEntryController) Save(c *gin.Context) {
	var input dtos.MenuSaveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := ctl.menu.Save(input.Date, input.MenuItemIDs)
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (ctl *MenuEntryController) CreateCustomEntry(c *gin.Context) {
	var input dtos.CustomEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := ctl.menu.CreateCustomEntry(input.Date, input.MenuItemID)
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (ctl *MenuEntryController) ConvertCustomToNormal(c *gin.Context) {
	entry, err := ctl.menu.ConvertCustomToNormal(c.Param("id"))
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
