package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/koko-king/utils"
)

func ReceiptLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("order_id")
		utils.InfoLogger.WithField("order_id", orderID).Info("Receipt requested")

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			utils.InfoLogger.WithField("order_id", orderID).Info("Receipt downloaded")
		} else {
			utils.ErrorLogger.WithField("order_id", orderID).Errorf("Receipt refused with status %d", c.Writer.Status())
		}
	}
}
