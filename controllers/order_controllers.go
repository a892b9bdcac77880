package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/koko-king/convergence"
	"github.com/yeremiapane/koko-king/middlewares"
	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/services"
	"github.com/yeremiapane/koko-king/utils"
)

type OrderController struct {
	Orders *services.OrderService
	now    func() time.Time
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders, now: time.Now}
}

// Checkout -> online order from the storefront
func (oc *OrderController) Checkout(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, &models.ValidationError{Message: err.Error()})
		return
	}
	order, err := oc.Orders.PlaceOnline(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

// CreateWalkIn -> counter order entered at the kitchen terminal
func (oc *OrderController) CreateWalkIn(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, &models.ValidationError{Message: err.Error()})
		return
	}
	order, err := oc.Orders.PlaceWalkIn(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Walk-in order created", order)
}

// TrackOrder -> public order status lookup, without customer data
func (oc *OrderController) TrackOrder(c *gin.Context) {
	order, err := oc.Orders.Store().Get(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status", order.Tracking())
}

// ListOrders -> staff listing, newest first, with query filters
func (oc *OrderController) ListOrders(c *gin.Context) {
	var filter models.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.RespondError(c, &models.ValidationError{Message: err.Error()})
		return
	}
	if err := filter.Validate(); err != nil {
		utils.RespondError(c, err)
		return
	}
	orders, err := oc.Orders.Store().List(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", convergence.ManagerBoard(orders, oc.now()))
}

type transitionRequest struct {
	Status   models.OrderStatus `json:"status" binding:"required"`
	Note     string             `json:"note"`
	Chef     string             `json:"chef"`
	Reason   string             `json:"reason"`
	DriverID string             `json:"driverId"`
}

// TransitionOrder -> moves an order to the requested status as the caller's role
func (oc *OrderController) TransitionOrder(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, &models.ValidationError{Field: "status", Message: err.Error()})
		return
	}
	if !req.Status.Valid() {
		utils.RespondError(c, &models.ValidationError{Field: "status", Message: "unknown status " + string(req.Status)})
		return
	}
	role, ok := middlewares.CurrentRole(c)
	if !ok {
		utils.RespondJSON(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	meta := services.TransitionMeta{Chef: req.Chef, Reason: req.Reason, Note: req.Note, DriverID: req.DriverID}
	if role == models.RoleDriver {
		meta.DriverID = middlewares.CurrentSubject(c)
	}

	order, err := oc.Orders.AttemptTransition(c.Request.Context(), c.Param("order_id"), req.Status, role, meta)
	if err != nil {
		var tErr *models.IllegalTransitionError
		if errors.As(err, &tErr) {
			utils.RespondError(c, err, gin.H{
				"currentStatus": order.Status,
				"validNext":     oc.Orders.ValidNext(order, role),
			})
			return
		}
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DriverDeliveries -> today's delivery orders for the driver board
func (oc *OrderController) DriverDeliveries(c *gin.Context) {
	filter := models.OrderFilter{
		BranchID:       c.Query("branch"),
		DeliveryMethod: models.DeliveryDelivery,
	}
	orders, err := oc.Orders.Store().List(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Today's deliveries", convergence.DriverBoard(orders, oc.now()))
}

type contactRequest struct {
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// CorrectContact -> driver fixes the phone or address of a delivery
func (oc *OrderController) CorrectContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, &models.ValidationError{Message: err.Error()})
		return
	}
	if req.Phone == nil && req.Address == nil {
		utils.RespondError(c, &models.ValidationError{Message: "phone or address is required"})
		return
	}
	order, err := oc.Orders.CorrectContact(c.Request.Context(), c.Param("order_id"), req.Phone, req.Address)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Contact details updated", order)
}
