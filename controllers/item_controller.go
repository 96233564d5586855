package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Bombastion/taproom-offering-engine/entity"
	"github.com/Bombastion/taproom-offering-engine/pkg/resp"
	"github.com/Bombastion/taproom-offering-engine/repository"
)

var (
	itemRequired = []field{{"internalName", typeString}, {"displayName", typeString}}
	itemFields   = []field{
		{"id", typeNumber},
		{"internalName", typeString},
		{"displayName", typeString},
		{"breweryId", typeNumber},
		{"style", typeString},
		{"abv", typeNumber},
		{"description", typeString},
		{"category", typeString},
	}
)

type ItemController struct {
	Repo repository.DataProvider
	Log  logrus.FieldLogger
}

func NewItemController(repo repository.DataProvider, log logrus.FieldLogger) *ItemController {
	return &ItemController{Repo: repo, Log: log}
}

// GET /items
func (ctl *ItemController) List(c *gin.Context) {
	items, err := ctl.Repo.ListItems(c.Request.Context())
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, items)
}

// GET /items/manage
func (ctl *ItemController) Manage(c *gin.Context) {
	ctx := c.Request.Context()
	items, err := ctl.Repo.ListItems(ctx)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	breweries, err := ctl.Repo.ListBreweries(ctx)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	byID := make(map[uint]string, len(breweries))
	for _, b := range breweries {
		byID[b.ID] = b.Name
	}
	// keyed by item id
	names := make(map[uint]string, len(items))
	for _, item := range items {
		if item.BreweryID != nil {
			names[item.ID] = byID[*item.BreweryID]
		}
	}
	c.HTML(http.StatusOK, "itemList", gin.H{"items": items, "breweryNames": names})
}

// GET /items/:id
func (ctl *ItemController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := ctl.Repo.GetItem(c.Request.Context(), id)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, item)
}

// POST /items
func (ctl *ItemController) Create(c *gin.Context) {
	var item entity.Item
	if !bindCreate(c, &item, itemRequired, itemFields) {
		return
	}
	created, err := ctl.Repo.AddItem(c.Request.Context(), item)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.Created(c, created)
}

// PATCH /items/:id
func (ctl *ItemController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p entity.ItemPatch
	if !bindPatch(c, &p, itemFields) {
		return
	}
	item, err := ctl.Repo.UpdateItem(c.Request.Context(), id, p)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, item)
}
