package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/services"
	"github.com/yeremiapane/koko-king/utils"
)

type BranchController struct {
	Registry *services.Registry
}

func NewBranchController(registry *services.Registry) *BranchController {
	return &BranchController{Registry: registry}
}

func (bc *BranchController) GetAllBranches(c *gin.Context) {
	branches, err := bc.Registry.ListBranches(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of branches", branches)
}

// NearestBranch -> closest branch to ?lat=&lng=
func (bc *BranchController) NearestBranch(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		utils.RespondError(c, &models.ValidationError{Field: "lat,lng", Message: "valid lat and lng are required"})
		return
	}
	branch, distance, err := bc.Registry.NearestBranch(c.Request.Context(), lat, lng)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Nearest branch", gin.H{
		"branch":     branch,
		"distanceKm": distance,
	})
}

func (bc *BranchController) CreateBranch(c *gin.Context) {
	var input services.BranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, &models.ValidationError{Message: err.Error()})
		return
	}
	branch, err := bc.Registry.CreateBranch(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.InfoLogger.WithField("branch_id", branch.ID).Info("Branch created")
	utils.RespondJSON(c, http.StatusCreated, "Branch created", branch)
}

func (bc *BranchController) UpdateBranch(c *gin.Context) {
	var input services.BranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, &models.ValidationError{Message: err.Error()})
		return
	}
	branch, err := bc.Registry.UpdateBranch(c.Request.Context(), c.Param("branch_id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Branch updated", branch)
}

// DeleteBranch -> removes the branch; its orders keep the branch id
func (bc *BranchController) DeleteBranch(c *gin.Context) {
	if err := bc.Registry.RemoveBranch(c.Request.Context(), c.Param("branch_id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Branch removed", nil)
}
