package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/koko-king/controllers"
	"github.com/yeremiapane/koko-king/metrics"
	"github.com/yeremiapane/koko-king/middlewares"
	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/services"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Orders       *services.OrderService
	Registry     *services.Registry
	Auth         *services.Authenticator
	CORSOrigin   string
	RateLimitRPS float64
	HSTS         bool
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders(d.HSTS))
	r.Use(middlewares.CORSMiddlewares(d.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())
	if d.RateLimitRPS > 0 {
		r.Use(middlewares.NewRateLimiter(d.RateLimitRPS, int(d.RateLimitRPS)*2).RateLimit())
	}

	userCtrl := controllers.NewUserController(d.Auth, d.Registry)
	menuCtrl := controllers.NewMenuController(d.Registry)
	branchCtrl := controllers.NewBranchController(d.Registry)
	orderCtrl := controllers.NewOrderController(d.Orders)
	kitchenCtrl := controllers.NewKitchenController(d.Orders.Store())
	receiptCtrl := controllers.NewReceiptController(d.Orders.Store())
	adminCtrl := controllers.NewAdminController(d.Orders.Store(), d.Registry)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.GET("/branches", branchCtrl.GetAllBranches)
	r.GET("/branches/nearest", branchCtrl.NearestBranch)
	r.GET("/menu", menuCtrl.GetMenu)
	r.GET("/menu/categories", menuCtrl.GetCategories)
	r.POST("/checkout", orderCtrl.Checkout)
	r.GET("/orders/:order_id", orderCtrl.TrackOrder)

	// Login and registration share a strict limiter
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter().RateLimit())
	{
		public.POST("/auth/:role/login", userCtrl.StaffLogin)
		public.POST("/drivers/register", userCtrl.RegisterDriver)
		public.POST("/drivers/login", userCtrl.DriverLogin)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	auth.GET("/session", userCtrl.Session)

	staff := auth.Group("/staff")
	staff.POST("/orders/:order_id/transition", orderCtrl.TransitionOrder)

	kitchen := staff.Group("/")
	kitchen.Use(middlewares.RoleRequired(models.RoleKitchen, models.RoleManager, models.RoleAdmin))
	{
		kitchen.POST("/orders", orderCtrl.CreateWalkIn)
		kitchen.GET("/orders", orderCtrl.ListOrders)
		kitchen.GET("/kitchen/queue", kitchenCtrl.Queue)
		kitchen.GET("/kitchen/display", kitchenCtrl.Display)

		receiptGroup := kitchen.Group("/orders")
		receiptGroup.Use(middlewares.ReceiptLoggerMiddleware())
		receiptGroup.GET("/:order_id/receipt", receiptCtrl.DownloadReceipt)
	}

	driver := auth.Group("/driver")
	driver.Use(middlewares.RoleRequired(models.RoleDriver))
	{
		driver.GET("/deliveries", orderCtrl.DriverDeliveries)
		driver.PATCH("/deliveries/:order_id/contact", orderCtrl.CorrectContact)
	}

	manager := auth.Group("/manager")
	manager.Use(middlewares.RoleRequired(models.RoleManager, models.RoleAdmin))
	{
		manager.GET("/dashboard", adminCtrl.GetManagerDashboard)
		manager.GET("/payments", adminCtrl.GetPayments)
	}

	admin := auth.Group("/admin")
	admin.Use(middlewares.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/analytics", adminCtrl.GetAnalytics)
		admin.GET("/dashboard", adminCtrl.GetDashboard)
		admin.GET("/drivers", userCtrl.ListDrivers)

		admin.POST("/branches", branchCtrl.CreateBranch)
		admin.PUT("/branches/:branch_id", branchCtrl.UpdateBranch)
		admin.DELETE("/branches/:branch_id", branchCtrl.DeleteBranch)

		admin.GET("/menu", menuCtrl.GetAdminMenu)
		admin.POST("/menu", menuCtrl.CreateCustomItem)
		admin.PUT("/menu/:item_id", menuCtrl.UpdateCustomItem)
		admin.DELETE("/menu/:item_id", menuCtrl.DeleteCustomItem)
		admin.POST("/menu/builtin/:item_id/exclusion", menuCtrl.ExcludeBuiltIn)
		admin.DELETE("/menu/builtin/:item_id/exclusion", menuCtrl.RestoreBuiltIn)
	}

	return r
}
