package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Bombastion/taproom-offering-engine/entity"
	"github.com/Bombastion/taproom-offering-engine/pkg/resp"
	"github.com/Bombastion/taproom-offering-engine/repository"
	"github.com/Bombastion/taproom-offering-engine/ws"
)

var (
	menuItemRequired = []field{{"menuId", typeNumber}, {"itemId", typeNumber}}
	menuItemFields   = []field{
		{"id", typeNumber},
		{"menuId", typeNumber},
		{"itemId", typeNumber},
		{"subMenuId", typeNumber},
		{"itemLogo", typeString},
		{"order", typeNumber},
	}
)

type MenuItemController struct {
	Repo repository.DataProvider
	Hub  *ws.MenuHub
	Log  logrus.FieldLogger
}

func NewMenuItemController(repo repository.DataProvider, hub *ws.MenuHub, log logrus.FieldLogger) *MenuItemController {
	return &MenuItemController{Repo: repo, Hub: hub, Log: log}
}

// GET /menu-items
func (ctl *MenuItemController) List(c *gin.Context) {
	placements, err := ctl.Repo.ListMenuItems(c.Request.Context())
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, placements)
}

// GET /menu-items/:id
func (ctl *MenuItemController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	mi, err := ctl.Repo.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, mi)
}

// POST /menu-items
func (ctl *MenuItemController) Create(c *gin.Context) {
	var mi entity.MenuItem
	if !bindCreate(c, &mi, menuItemRequired, menuItemFields) || !checkLogo(c, "itemLogo", mi.ItemLogo) {
		return
	}
	created, err := ctl.Repo.AddMenuItem(c.Request.Context(), mi)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	ctl.Hub.Publish(created.MenuID)
	resp.Created(c, created)
}

// PATCH /menu-items/:id
func (ctl *MenuItemController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p entity.MenuItemPatch
	if !bindPatch(c, &p, menuItemFields) || !checkLogo(c, "itemLogo", p.ItemLogo) {
		return
	}
	ctx := c.Request.Context()
	before, err := ctl.Repo.GetMenuItem(ctx, id)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	mi, err := ctl.Repo.UpdateMenuItem(ctx, id, p)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	ctl.Hub.Publish(mi.MenuID)
	if before.MenuID != mi.MenuID {
		ctl.Hub.Publish(before.MenuID)
	}
	resp.OK(c, mi)
}

// DELETE /menu-items/:id
func (ctl *MenuItemController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	mi, getErr := ctl.Repo.GetMenuItem(ctx, id)

	deleted, err := ctl.Repo.RemoveMenuItem(ctx, id)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"deleted": false, "error": "menu item not found"})
		return
	}
	if getErr == nil {
		ctl.Hub.Publish(mi.MenuID)
	}
	resp.OK(c, gin.H{"deleted": true})
}

// GET /menu-items/:id/sale-containers
func (ctl *MenuItemController) SaleContainers(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := ctl.Repo.GetMenuItem(ctx, id); err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	sales, err := ctl.Repo.GetSaleContainersForMenuItem(ctx, id)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, sales)
}
