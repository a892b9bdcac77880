package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/koko-king/analytics"
	"github.com/yeremiapane/koko-king/convergence"
	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/services"
	"github.com/yeremiapane/koko-king/utils"
)

const (
	defaultWindowDays = 7
	defaultTopItems   = 5
	recentOrders      = 10
)

// AdminController serves the manager and admin dashboards. Every figure is
// computed on request from the stored totals.
type AdminController struct {
	Store    *services.OrderStore
	Registry *services.Registry
	now      func() time.Time
}

func NewAdminController(store *services.OrderStore, registry *services.Registry) *AdminController {
	return &AdminController{Store: store, Registry: registry, now: time.Now}
}

func positiveQuery(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &models.ValidationError{Field: key, Message: key + " must be a positive integer"}
	}
	return n, nil
}

// GetAnalytics -> revenue, top items and daily series for ?branch=&days=&top=
func (ac *AdminController) GetAnalytics(c *gin.Context) {
	branch := c.DefaultQuery("branch", models.BranchScopeAll)
	days, err := positiveQuery(c, "days", defaultWindowDays)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	top, err := positiveQuery(c, "top", defaultTopItems)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	orders, err := ac.Store.List(c.Request.Context(), models.OrderFilter{BranchID: branch})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Analytics", gin.H{
		"branch":       branch,
		"revenue":      analytics.BranchRevenue(orders, branch),
		"topItems":     analytics.TopItems(orders, top),
		"daily":        analytics.DailySeries(orders, days),
		"statusCounts": analytics.StatusCounts(orders),
	})
}

// GetDashboard -> admin overview across every branch
func (ac *AdminController) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	orders, err := ac.Store.List(ctx, models.OrderFilter{})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	branches, err := ac.Registry.ListBranches(ctx)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	menu, err := ac.Registry.ListMenu(ctx, models.BranchScopeAll)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	drivers, err := ac.Registry.ListDrivers(ctx)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", gin.H{
		"totalOrders":  len(orders),
		"totalRevenue": analytics.BranchRevenue(orders, ""),
		"today":        analytics.DaySummary(orders, ac.now()),
		"statusCounts": analytics.StatusCounts(orders),
		"branches":     analytics.BranchBreakdown(orders, branches),
		"menuItems":    len(menu),
		"drivers":      len(drivers),
	})
}

// GetManagerDashboard -> today's figures and the most recent orders
func (ac *AdminController) GetManagerDashboard(c *gin.Context) {
	filter := models.OrderFilter{BranchID: c.Query("branch")}
	orders, err := ac.Store.List(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	now := ac.now()
	recent := convergence.ManagerBoard(orders, now)
	if len(recent) > recentOrders {
		recent = recent[:recentOrders]
	}
	utils.RespondJSON(c, http.StatusOK, "Manager dashboard", gin.H{
		"today":        analytics.DaySummary(orders, now),
		"statusCounts": analytics.StatusCounts(orders),
		"recentOrders": recent,
	})
}

// GetPayments -> revenue by payment method, optionally for one ?date=
func (ac *AdminController) GetPayments(c *gin.Context) {
	filter := models.OrderFilter{BranchID: c.Query("branch"), Date: c.Query("date")}
	if err := filter.Validate(); err != nil {
		utils.RespondError(c, err)
		return
	}
	orders, err := ac.Store.List(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payments", gin.H{
		"byMethod": analytics.PaymentBreakdown(orders),
		"total":    analytics.BranchRevenue(orders, ""),
	})
}
