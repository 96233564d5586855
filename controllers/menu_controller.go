package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Bombastion/taproom-offering-engine/entity"
	"github.com/Bombastion/taproom-offering-engine/pkg/metrics"
	"github.com/Bombastion/taproom-offering-engine/pkg/resp"
	"github.com/Bombastion/taproom-offering-engine/repository"
	"github.com/Bombastion/taproom-offering-engine/services"
	"github.com/Bombastion/taproom-offering-engine/ws"
)

const (
	FormatJSON  = "json"
	FormatPrint = "print"
)

var (
	menuRequired = []field{{"internalName", typeString}, {"displayName", typeString}}
	menuFields   = []field{{"id", typeNumber}, {"internalName", typeString}, {"displayName", typeString}, {"logo", typeString}}
)

type MenuController struct {
	Repo    repository.DataProvider
	Service *services.MenuService
	Hub     *ws.MenuHub
	Log     logrus.FieldLogger
}

func NewMenuController(repo repository.DataProvider, service *services.MenuService, hub *ws.MenuHub, log logrus.FieldLogger) *MenuController {
	return &MenuController{Repo: repo, Service: service, Hub: hub, Log: log}
}

// GET /menus
func (ctl *MenuController) List(c *gin.Context) {
	menus, err := ctl.Repo.ListMenus(c.Request.Context())
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, menus)
}

// GET /menus/manage
func (ctl *MenuController) Manage(c *gin.Context) {
	menus, err := ctl.Repo.ListMenus(c.Request.Context())
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	c.HTML(http.StatusOK, "menuList", gin.H{"menus": menus})
}

// GET /menus/:id?format=json|print
func (ctl *MenuController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", FormatJSON)

	switch format {
	case FormatJSON:
		menu, err := ctl.Repo.GetMenu(c.Request.Context(), id)
		if err != nil {
			resp.ProviderError(c, ctl.Log, err)
			return
		}
		metrics.RecordMenuRender(format)
		resp.OK(c, menu)
	case FormatPrint:
		printable, err := ctl.Service.Print(c.Request.Context(), id)
		if err != nil {
			resp.ProviderError(c, ctl.Log, err)
			return
		}
		metrics.RecordMenuRender(format)
		c.HTML(http.StatusOK, "menuPrint", gin.H{"menu": printable})
	default:
		resp.BadRequest(c, "unsupported format "+format)
	}
}

// POST /menus
func (ctl *MenuController) Create(c *gin.Context) {
	var menu entity.Menu
	if !bindCreate(c, &menu, menuRequired, menuFields) || !checkLogo(c, "logo", menu.Logo) {
		return
	}
	created, err := ctl.Repo.AddMenu(c.Request.Context(), menu)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.Created(c, created)
}

// PATCH /menus/:id
func (ctl *MenuController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p entity.MenuPatch
	if !bindPatch(c, &p, menuFields) || !checkLogo(c, "logo", p.Logo) {
		return
	}
	menu, err := ctl.Repo.UpdateMenu(c.Request.Context(), id, p)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	ctl.Hub.Publish(menu.ID)
	resp.OK(c, menu)
}

// GET /menus/:id/submenus
func (ctl *MenuController) SubMenus(c *gin.Context) {
	id, ok := ctl.existingMenu(c)
	if !ok {
		return
	}
	subs, err := ctl.Repo.GetSubMenusForMenu(c.Request.Context(), id)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, subs)
}

// GET /menus/:id/menu-items
func (ctl *MenuController) MenuItems(c *gin.Context) {
	id, ok := ctl.existingMenu(c)
	if !ok {
		return
	}
	placements, err := ctl.Repo.GetMenuItemsForMenu(c.Request.Context(), id)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, placements)
}

// GET /menus/:id/live
func (ctl *MenuController) Live(c *gin.Context) {
	id, ok := ctl.existingMenu(c)
	if !ok {
		return
	}
	if ctl.Hub == nil {
		resp.NotFound(c, "live updates are not enabled")
		return
	}
	ctl.Hub.HandleWebSocket(c, id)
}

func (ctl *MenuController) existingMenu(c *gin.Context) (uint, bool) {
	id, ok := parseID(c)
	if !ok {
		return 0, false
	}
	if _, err := ctl.Repo.GetMenu(c.Request.Context(), id); err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return 0, false
	}
	return id, true
}
