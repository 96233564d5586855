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
	saleContainerRequired = []field{{"containerId", typeNumber}, {"menuItemId", typeNumber}, {"price", typeNumber}}
	saleContainerFields   = []field{{"id", typeNumber}, {"containerId", typeNumber}, {"menuItemId", typeNumber}, {"price", typeNumber}}
)

type SaleContainerController struct {
	Repo repository.DataProvider
	Hub  *ws.MenuHub
	Log  logrus.FieldLogger
}

func NewSaleContainerController(repo repository.DataProvider, hub *ws.MenuHub, log logrus.FieldLogger) *SaleContainerController {
	return &SaleContainerController{Repo: repo, Hub: hub, Log: log}
}

// GET /sale-containers
func (ctl *SaleContainerController) List(c *gin.Context) {
	sales, err := ctl.Repo.ListSaleContainers(c.Request.Context())
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, sales)
}

// GET /sale-containers/:id
func (ctl *SaleContainerController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sale, err := ctl.Repo.GetSaleContainer(c.Request.Context(), id)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, sale)
}

// POST /sale-containers
func (ctl *SaleContainerController) Create(c *gin.Context) {
	var sale entity.SaleContainer
	if !bindCreate(c, &sale, saleContainerRequired, saleContainerFields) {
		return
	}
	created, err := ctl.Repo.AddSaleContainer(c.Request.Context(), sale)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	publishForMenuItem(c, ctl.Repo, ctl.Hub, ctl.Log, created.MenuItemID)
	resp.Created(c, created)
}

// PATCH /sale-containers/:id
func (ctl *SaleContainerController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p entity.SaleContainerPatch
	if !bindPatch(c, &p, saleContainerFields) {
		return
	}
	ctx := c.Request.Context()
	before, err := ctl.Repo.GetSaleContainer(ctx, id)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	sale, err := ctl.Repo.UpdateSaleContainer(ctx, id, p)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	publishForMenuItem(c, ctl.Repo, ctl.Hub, ctl.Log, sale.MenuItemID)
	if before.MenuItemID != sale.MenuItemID {
		publishForMenuItem(c, ctl.Repo, ctl.Hub, ctl.Log, before.MenuItemID)
	}
	resp.OK(c, sale)
}

// DELETE /sale-containers/:id
func (ctl *SaleContainerController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	sale, getErr := ctl.Repo.GetSaleContainer(ctx, id)

	deleted, err := ctl.Repo.RemoveSaleContainer(ctx, id)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"deleted": false, "error": "sale container not found"})
		return
	}
	if getErr == nil {
		publishForMenuItem(c, ctl.Repo, ctl.Hub, ctl.Log, sale.MenuItemID)
	}
	resp.OK(c, gin.H{"deleted": true})
}

// publishForMenuItem notifies live screens of the menu a placement is on.
func publishForMenuItem(c *gin.Context, repo repository.MenuItemStore, hub *ws.MenuHub, log logrus.FieldLogger, menuItemID uint) {
	if hub == nil {
		return
	}
	mi, err := repo.GetMenuItem(c.Request.Context(), menuItemID)
	if err != nil {
		log.WithError(err).WithField("menuItemId", menuItemID).Debug("no menu to notify")
		return
	}
	hub.Publish(mi.MenuID)
}
