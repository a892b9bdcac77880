package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/koko-king/catalog"
	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/services"
	"github.com/yeremiapane/koko-king/utils"
)

type MenuController struct {
	Registry *services.Registry
}

func NewMenuController(registry *services.Registry) *MenuController {
	return &MenuController{Registry: registry}
}

// GetMenu -> items offered at ?branch= (a branch id or "all")
func (mc *MenuController) GetMenu(c *gin.Context) {
	scope := c.DefaultQuery("branch", models.BranchScopeAll)
	items, err := mc.Registry.ListMenu(c.Request.Context(), scope)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// GetCategories -> menu categories in display order
func (mc *MenuController) GetCategories(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of categories", catalog.Categories)
}

// GetAdminMenu -> every built-in with its exclusion flag, then custom items
func (mc *MenuController) GetAdminMenu(c *gin.Context) {
	items, err := mc.Registry.AdminMenu(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Catalog", items)
}

func (mc *MenuController) CreateCustomItem(c *gin.Context) {
	var input services.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, &models.ValidationError{Message: err.Error()})
		return
	}
	item, err := mc.Registry.CreateCustomItem(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.InfoLogger.WithField("item_id", item.ID).Info("Custom menu item created")
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

func (mc *MenuController) UpdateCustomItem(c *gin.Context) {
	var input services.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, &models.ValidationError{Message: err.Error()})
		return
	}
	item, err := mc.Registry.UpdateCustomItem(c.Request.Context(), c.Param("item_id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

func (mc *MenuController) DeleteCustomItem(c *gin.Context) {
	if err := mc.Registry.RemoveCustomItem(c.Request.Context(), c.Param("item_id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item removed", nil)
}

// ExcludeBuiltIn -> hides a built-in item from every menu
func (mc *MenuController) ExcludeBuiltIn(c *gin.Context) {
	if err := mc.Registry.ExcludeBuiltIn(c.Request.Context(), c.Param("item_id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Built-in item excluded", nil)
}

// RestoreBuiltIn -> puts an excluded built-in item back
func (mc *MenuController) RestoreBuiltIn(c *gin.Context) {
	if err := mc.Registry.RestoreBuiltIn(c.Request.Context(), c.Param("item_id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Built-in item restored", nil)
}
