package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/Bombastion/taproom-offering-engine/entity"
	"github.com/Bombastion/taproom-offering-engine/pkg/resp"
	"github.com/Bombastion/taproom-offering-engine/repository"
)

var (
	breweryRequired = []field{{"name", typeString}}
	breweryFields   = []field{{"id", typeNumber}, {"name", typeString}, {"defaultLogo", typeString}, {"location", typeString}}
)

type BreweryController struct {
	Repo repository.BreweryStore
	Log  logrus.FieldLogger
}

func NewBreweryController(repo repository.BreweryStore, log logrus.FieldLogger) *BreweryController {
	return &BreweryController{Repo: repo, Log: log}
}

// GET /breweries
func (ctl *BreweryController) List(c *gin.Context) {
	breweries, err := ctl.Repo.ListBreweries(c.Request.Context())
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, breweries)
}

// GET /breweries/manage
func (ctl *BreweryController) Manage(c *gin.Context) {
	breweries, err := ctl.Repo.ListBreweries(c.Request.Context())
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	c.HTML(http.StatusOK, "breweryList", gin.H{"breweries": breweries})
}

// GET /breweries/:id
func (ctl *BreweryController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := ctl.Repo.GetBrewery(c.Request.Context(), id)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, b)
}

// POST /breweries
// Accepts JSON, or the manage page form (newBreweryName, newBreweryLogoB64,
// newBreweryLocation). With ?callbackUrl= the client is redirected there.
func (ctl *BreweryController) Create(c *gin.Context) {
	var b entity.Brewery
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		if !parseForm(c) {
			return
		}
		b.Name = c.PostForm("newBreweryName")
		if b.Name == "" {
			resp.Unprocessable(c, "All of [newBreweryName] must be provided")
			return
		}
		if logo := c.PostForm("newBreweryLogoB64"); logo != "" {
			b.DefaultLogo = &logo
		}
		if location := c.PostForm("newBreweryLocation"); location != "" {
			b.Location = &location
		}
	default:
		if !bindCreate(c, &b, breweryRequired, breweryFields) {
			return
		}
	}
	if !checkLogo(c, "defaultLogo", b.DefaultLogo) {
		return
	}

	created, err := ctl.Repo.AddBrewery(c.Request.Context(), b)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	if redirectToCallback(c) {
		return
	}
	resp.Created(c, created)
}

// PATCH /breweries/:id
func (ctl *BreweryController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p entity.BreweryPatch
	if !bindPatch(c, &p, breweryFields) || !checkLogo(c, "defaultLogo", p.DefaultLogo) {
		return
	}
	b, err := ctl.Repo.UpdateBrewery(c.Request.Context(), id, p)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, b)
}

// redirectToCallback answers 303 to a local ?callbackUrl= and reports whether
// it did. Absolute or protocol-relative urls are ignored.
func redirectToCallback(c *gin.Context) bool {
	cb := c.Query("callbackUrl")
	if !strings.HasPrefix(cb, "/") || strings.HasPrefix(cb, "//") || strings.HasPrefix(cb, "/\\") {
		return false
	}
	c.Redirect(http.StatusSeeOther, cb)
	return true
}
