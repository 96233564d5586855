package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Bombastion/taproom-offering-engine/configs"
	"github.com/Bombastion/taproom-offering-engine/controllers"
	"github.com/Bombastion/taproom-offering-engine/middlewares"
	"github.com/Bombastion/taproom-offering-engine/pkg/metrics"
	"github.com/Bombastion/taproom-offering-engine/repository"
	"github.com/Bombastion/taproom-offering-engine/services"
	"github.com/Bombastion/taproom-offering-engine/templates"
	"github.com/Bombastion/taproom-offering-engine/utils"
	"github.com/Bombastion/taproom-offering-engine/ws"
)

type Deps struct {
	Config *configs.Config
	Repo   repository.DataProvider
	Hub    *ws.MenuHub
	Log    logrus.FieldLogger
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	tmpl, err := templates.Load()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	r.Use(
		middlewares.RequestLogger(d.Log),
		gin.Recovery(),
		middlewares.CORSMiddleware(),
		middlewares.Metrics(),
		middlewares.BodyLimit(d.Config.MaxBodyBytes),
	)

	r.GET("/", controllers.Index)
	r.GET("/health", controllers.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Controllers
	menuSvc := services.NewMenuService(d.Repo, d.Log)
	breweryCtrl := controllers.NewBreweryController(d.Repo, d.Log)
	containerCtrl := controllers.NewContainerController(d.Repo, d.Log)
	saleCtrl := controllers.NewSaleContainerController(d.Repo, d.Hub, d.Log)
	itemCtrl := controllers.NewItemController(d.Repo, d.Log)
	menuCtrl := controllers.NewMenuController(d.Repo, menuSvc, d.Hub, d.Log)
	subMenuCtrl := controllers.NewSubMenuController(d.Repo, d.Hub, d.Log)
	menuItemCtrl := controllers.NewMenuItemController(d.Repo, d.Hub, d.Log)

	// Writes need an admin token when auth is configured
	admin := []gin.HandlerFunc{}
	if d.Config.AuthEnabled() {
		authCtrl, err := controllers.NewAuthController(d.Config.AdminPassword, d.Config.JWTSecret, d.Config.JWTTTL, d.Log)
		if err != nil {
			return err
		}
		r.POST("/auth/login", authCtrl.Login)
		admin = append(admin, middlewares.AuthMiddleware(d.Config.JWTSecret, utils.RoleAdmin))
	} else {
		d.Log.Warn("admin auth disabled, set TOE_JWT_SECRET and TOE_ADMIN_PASSWORD to enable it")
	}
	write := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, admin...), h)
	}

	breweries := r.Group("/breweries")
	{
		breweries.GET("", breweryCtrl.List)
		breweries.GET("/manage", breweryCtrl.Manage)
		breweries.GET("/:id", breweryCtrl.Get)
		breweries.POST("", write(breweryCtrl.Create)...)
		breweries.PATCH("/:id", write(breweryCtrl.Update)...)
	}

	containers := r.Group("/containers")
	{
		containers.GET("", containerCtrl.List)
		containers.GET("/manage", containerCtrl.Manage)
		containers.GET("/:id", containerCtrl.Get)
		containers.POST("", write(containerCtrl.Create)...)
		containers.PATCH("/:id", write(containerCtrl.Update)...)
	}

	sales := r.Group("/sale-containers")
	{
		sales.GET("", saleCtrl.List)
		sales.GET("/:id", saleCtrl.Get)
		sales.POST("", write(saleCtrl.Create)...)
		sales.PATCH("/:id", write(saleCtrl.Update)...)
		sales.DELETE("/:id", write(saleCtrl.Delete)...)
	}

	items := r.Group("/items")
	{
		items.GET("", itemCtrl.List)
		items.GET("/manage", itemCtrl.Manage)
		items.GET("/:id", itemCtrl.Get)
		items.POST("", write(itemCtrl.Create)...)
		items.PATCH("/:id", write(itemCtrl.Update)...)
	}

	menus := r.Group("/menus")
	{
		menus.GET("", menuCtrl.List)
		menus.GET("/manage", menuCtrl.Manage)
		menus.GET("/:id", menuCtrl.Get)
		menus.GET("/:id/submenus", menuCtrl.SubMenus)
		menus.GET("/:id/menu-items", menuCtrl.MenuItems)
		menus.GET("/:id/live", menuCtrl.Live)
		menus.POST("", write(menuCtrl.Create)...)
		menus.PATCH("/:id", write(menuCtrl.Update)...)
	}

	subMenus := r.Group("/submenus")
	{
		subMenus.GET("", subMenuCtrl.List)
		subMenus.GET("/:id", subMenuCtrl.Get)
		subMenus.POST("", write(subMenuCtrl.Create)...)
		subMenus.PATCH("/:id", write(subMenuCtrl.Update)...)
	}

	menuItems := r.Group("/menu-items")
	{
		menuItems.GET("", menuItemCtrl.List)
		menuItems.GET("/:id", menuItemCtrl.Get)
		menuItems.GET("/:id/sale-containers", menuItemCtrl.SaleContainers)
		menuItems.POST("", write(menuItemCtrl.Create)...)
		menuItems.PATCH("/:id", write(menuItemCtrl.Update)...)
		menuItems.DELETE("/:id", write(menuItemCtrl.Delete)...)
	}

	return nil
}
