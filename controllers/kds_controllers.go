package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/koko-king/convergence"
	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/utils"
)

// KitchenController serves the kitchen terminal views. Terminals poll these
// endpoints; there is no push channel.
type KitchenController struct {
	Source convergence.Source
	now    func() time.Time
}

func NewKitchenController(source convergence.Source) *KitchenController {
	return &KitchenController{Source: source, now: time.Now}
}

func (kc *KitchenController) render(c *gin.Context, view convergence.View, message string) {
	filter := models.OrderFilter{BranchID: c.Query("branch")}
	orders, err := kc.Source.List(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, view(orders, kc.now()))
}

// Queue -> active orders, walk-ins first
func (kc *KitchenController) Queue(c *gin.Context) {
	kc.render(c, convergence.KitchenQueue, "Kitchen queue")
}

// Display -> confirmed and preparing orders for the wall display
func (kc *KitchenController) Display(c *gin.Context) {
	kc.render(c, convergence.KitchenDisplay, "Kitchen display")
}
