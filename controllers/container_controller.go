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
	containerRequired = []field{{"containerName", typeString}, {"displayName", typeString}}
	containerFields   = []field{{"id", typeNumber}, {"containerName", typeString}, {"displayName", typeString}, {"order", typeNumber}}
)

type ContainerController struct {
	Repo repository.ContainerStore
	Log  logrus.FieldLogger
}

func NewContainerController(repo repository.ContainerStore, log logrus.FieldLogger) *ContainerController {
	return &ContainerController{Repo: repo, Log: log}
}

// GET /containers
func (ctl *ContainerController) List(c *gin.Context) {
	containers, err := ctl.Repo.ListContainers(c.Request.Context())
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, containers)
}

// GET /containers/manage
func (ctl *ContainerController) Manage(c *gin.Context) {
	containers, err := ctl.Repo.ListContainers(c.Request.Context())
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	c.HTML(http.StatusOK, "containerList", gin.H{"containers": containers})
}

// GET /containers/:id
func (ctl *ContainerController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	container, err := ctl.Repo.GetContainer(c.Request.Context(), id)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, container)
}

// POST /containers
func (ctl *ContainerController) Create(c *gin.Context) {
	var container entity.ItemContainer
	if !bindCreate(c, &container, containerRequired, containerFields) {
		return
	}
	created, err := ctl.Repo.AddContainer(c.Request.Context(), container)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.Created(c, created)
}

// PATCH /containers/:id
func (ctl *ContainerController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p entity.ItemContainerPatch
	if !bindPatch(c, &p, containerFields) {
		return
	}
	container, err := ctl.Repo.UpdateContainer(c.Request.Context(), id, p)
	if err != nil {
		resp.ProviderError(c, ctl.Log, err)
		return
	}
	resp.OK(c, container)
}
