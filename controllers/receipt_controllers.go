package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/services"
	"github.com/yeremiapane/koko-king/utils"
)

type ReceiptController struct {
	Store *services.OrderStore
}

func NewReceiptController(store *services.OrderStore) *ReceiptController {
	return &ReceiptController{Store: store}
}

// DownloadReceipt -> plain-text receipt of a completed order
func (rc *ReceiptController) DownloadReceipt(c *gin.Context) {
	order, err := rc.Store.Get(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if order.Status != models.StatusCompleted {
		utils.RespondError(c, &models.ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("receipt is only available for completed orders, order is %s", order.Status),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", services.ReceiptFilename(order)))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(services.BuildReceipt(order)))
}
