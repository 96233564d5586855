package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Bombastion/taproom-offering-engine/entity"
	"github.com/Bombastion/taproom-offering-engine/pkg/resp"
	"github.com/Bombastion/taproom-offering-engine/repository"
	"github.com/Bombastion/taproom-offering-engine/ws"
)

var (
	subMenuRequired = []field{{"internalName", typeString}, {"displayName", typeString}, {"menuId", typeNumber}}
	subMenuFields   = []field{{"id", typeNumber}, {"internalName", typeString}, {"displayName", typeString}, {"menuId", typeNumber}, {"order", typeNumber}}
)

type SubMenuController struct {
	Repo repository.SubMenuStore
	Hub  *ws.MenuHub
	Log  logrus.FieldLogger
}

func NewSubMenuController(repo repository.SubMenuStore, hub *ws.MenuHub, log logrus.FieldLogger) *SubMenuController {
	return &SubMenuController{Repo: repo, Hub: hub, Log: log}
}

// GET /submenus
func (ctl *SubMenuController) List(c *gin.Context) {
	subs, err := ctl.Repo.ListSubMenus(c.Request.Context())
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, subs)
}

// GET /submenus/:id
func (ctl *SubMenuController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sub, err := ctl.Repo.GetSubMenu(c.Request.Context(), id)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, sub)
}

// POST /submenus
func (ctl *SubMenuController) Create(c *gin.Context) {
	var sub entity.SubMenu
	if !bindCreate(c, &sub, subMenuRequired, subMenuFields) {
		return
	}
	created, err := ctl.Repo.AddSubMenu(c.Request.Context(), sub)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	ctl.Hub.Publish(created.MenuID)
	resp.Created(c, created)
}

// PATCH /submenus/:id
func (ctl *SubMenuController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p entity.SubMenuPatch
	if !bindPatch(c, &p, subMenuFields) {
		return
	}
	ctx := c.Request.Context()
	before, err := ctl.Repo.GetSubMenu(ctx, id)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	sub, err := ctl.Repo.UpdateSubMenu(ctx, id, p)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	ctl.Hub.Publish(sub.MenuID)
	if before.MenuID != sub.MenuID {
		ctl.Hub.Publish(before.MenuID)
	}
	resp.OK(c, sub)
}
