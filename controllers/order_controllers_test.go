package controllers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/koko-king/controllers"
	"github.com/yeremiapane/koko-king/middlewares"
	"github.com/yeremiapane/koko-king/models"
)

func setupOrderRouter(e *env) *gin.Engine {
	r := gin.New()
	orderCtrl := controllers.NewOrderController(e.orders)
	kitchenCtrl := controllers.NewKitchenController(e.store)
	receiptCtrl := controllers.NewReceiptController(e.store)

	r.POST("/checkout", orderCtrl.Checkout)
	r.GET("/orders/:order_id", orderCtrl.TrackOrder)

	auth := r.Group("/", middlewares.AuthMiddleware())
	auth.POST("/staff/orders/:order_id/transition", orderCtrl.TransitionOrder)
	staff := auth.Group("/staff", middlewares.RoleRequired(models.RoleKitchen, models.RoleManager, models.RoleAdmin))
	staff.POST("/orders", orderCtrl.CreateWalkIn)
	staff.GET("/orders", orderCtrl.ListOrders)
	staff.GET("/kitchen/queue", kitchenCtrl.Queue)
	staff.GET("/kitchen/display", kitchenCtrl.Display)
	staff.GET("/orders/:order_id/receipt", receiptCtrl.DownloadReceipt)
	driver := auth.Group("/driver", middlewares.RoleRequired(models.RoleDriver))
	driver.GET("/deliveries", orderCtrl.DriverDeliveries)
	driver.PATCH("/deliveries/:order_id/contact", orderCtrl.CorrectContact)
	return r
}

func placeOrder(t *testing.T, r *gin.Engine, method models.DeliveryMethod) models.Order {
	t.Helper()
	w, resp := do(t, r, http.MethodPost, "/checkout", "", checkoutBody(method))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order models.Order
	decode(t, resp.Data, &order)
	return order
}

func transition(t *testing.T, r *gin.Engine, id, token string, status models.OrderStatus) (int, envelope) {
	t.Helper()
	w, resp := do(t, r, http.MethodPost, "/staff/orders/"+id+"/transition", token, gin.H{"status": status})
	return w.Code, resp
}

func TestCheckoutUsesCatalogPrice(t *testing.T) {
	r := setupOrderRouter(newEnv(t))

	body := checkoutBody(models.DeliveryDelivery)
	body["items"] = []map[string]interface{}{
		{"menuItemId": "wq3", "price": 1, "quantity": 2, "extras": []interface{}{}},
	}
	w, resp := do(t, r, http.MethodPost, "/checkout", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order models.Order
	decode(t, resp.Data, &order)
	assert.True(t, strings.HasPrefix(order.ID, "ON-"))
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, "155", order.Total.String())
	assert.Equal(t, "5", order.DeliveryFee.String())
}

func TestCheckoutRejectsMissingAddress(t *testing.T) {
	r := setupOrderRouter(newEnv(t))

	body := checkoutBody(models.DeliveryDelivery)
	body["customer"] = map[string]interface{}{"name": "Ama", "phone": "0241234567"}
	w, resp := do(t, r, http.MethodPost, "/checkout", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Message, "customer.address")
}

func TestTrackOrderNotFound(t *testing.T) {
	r := setupOrderRouter(newEnv(t))
	w, _ := do(t, r, http.MethodGet, "/orders/ON-20250101-001", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWalkInRequiresStaffRole(t *testing.T) {
	r := setupOrderRouter(newEnv(t))
	body := checkoutBody(models.DeliveryDelivery)

	w, _ := do(t, r, http.MethodPost, "/staff/orders", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, http.MethodPost, "/staff/orders", tokenFor(t, "DRV-000001", models.RoleDriver), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp := do(t, r, http.MethodPost, "/staff/orders", tokenFor(t, "kitchen@kokoking.com", models.RoleKitchen), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order models.Order
	decode(t, resp.Data, &order)
	assert.True(t, strings.HasPrefix(order.ID, "WI-"))
	assert.Equal(t, models.DeliveryPickup, order.DeliveryMethod)
	assert.Equal(t, "150", order.Total.String())
}

func TestPickupLifecycleOverHTTP(t *testing.T) {
	e := newEnv(t)
	r := setupOrderRouter(e)
	kitchen := tokenFor(t, "kitchen@kokoking.com", models.RoleKitchen)
	order := placeOrder(t, r, models.DeliveryPickup)

	for _, next := range []models.OrderStatus{models.StatusConfirmed, models.StatusPreparing, models.StatusReady, models.StatusCompleted} {
		code, resp := transition(t, r, order.ID, kitchen, next)
		require.Equal(t, http.StatusOK, code, resp.Message)
	}

	w, resp := do(t, r, http.MethodGet, "/orders/"+order.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.OrderTracking
	decode(t, resp.Data, &got)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, "150", got.Total.String())
	assert.NotNil(t, got.CompletedAt)

	stored, err := e.store.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Len(t, stored.History, 4)
}

func TestTrackOrderHidesCustomerDetails(t *testing.T) {
	r := setupOrderRouter(newEnv(t))
	kitchen := tokenFor(t, "kitchen@kokoking.com", models.RoleKitchen)
	order := placeOrder(t, r, models.DeliveryDelivery)
	code, _ := transition(t, r, order.ID, kitchen, models.StatusConfirmed)
	require.Equal(t, http.StatusOK, code)

	w, resp := do(t, r, http.MethodGet, "/orders/"+order.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fields map[string]interface{}
	decode(t, resp.Data, &fields)
	assert.Equal(t, string(models.StatusConfirmed), fields["status"])
	assert.Contains(t, fields, "createdAt")
	assert.Contains(t, fields, "confirmedAt")
	assert.Contains(t, fields, "total")
	for _, hidden := range []string{"customer", "history", "items", "driverId", "preparedBy"} {
		assert.NotContains(t, fields, hidden)
	}
	assert.NotContains(t, w.Body.String(), "0241234567")
}

func TestIllegalTransitionReturnsConflict(t *testing.T) {
	r := setupOrderRouter(newEnv(t))
	kitchen := tokenFor(t, "kitchen@kokoking.com", models.RoleKitchen)
	order := placeOrder(t, r, models.DeliveryPickup)

	code, resp := transition(t, r, order.ID, kitchen, models.StatusReady)
	assert.Equal(t, http.StatusConflict, code)

	var payload struct {
		CurrentStatus models.OrderStatus   `json:"currentStatus"`
		ValidNext     []models.OrderStatus `json:"validNext"`
	}
	decode(t, resp.Data, &payload)
	assert.Equal(t, models.StatusPending, payload.CurrentStatus)
	assert.ElementsMatch(t, []models.OrderStatus{models.StatusConfirmed, models.StatusCancelled}, payload.ValidNext)
}

func TestTransitionStorageFaultReturnsUnavailable(t *testing.T) {
	e := newEnv(t)
	r := setupOrderRouter(e)
	kitchen := tokenFor(t, "kitchen@kokoking.com", models.RoleKitchen)
	order := placeOrder(t, r, models.DeliveryPickup)

	e.blobs.failSet.Store(true)
	code, resp := transition(t, r, order.ID, kitchen, models.StatusConfirmed)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, resp.Status)

	e.blobs.failSet.Store(false)
	stored, err := e.store.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.Empty(t, stored.History)
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	r := setupOrderRouter(newEnv(t))
	order := placeOrder(t, r, models.DeliveryPickup)
	code, _ := transition(t, r, order.ID, tokenFor(t, "admin", models.RoleAdmin), "served")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDriverDispatchUsesTokenSubject(t *testing.T) {
	r := setupOrderRouter(newEnv(t))
	kitchen := tokenFor(t, "kitchen@kokoking.com", models.RoleKitchen)
	driver := tokenFor(t, "DRV-123456", models.RoleDriver)
	order := placeOrder(t, r, models.DeliveryDelivery)

	code, _ := transition(t, r, order.ID, driver, models.StatusConfirmed)
	assert.Equal(t, http.StatusConflict, code)

	for _, next := range []models.OrderStatus{models.StatusConfirmed, models.StatusPreparing, models.StatusReady} {
		code, resp := transition(t, r, order.ID, kitchen, next)
		require.Equal(t, http.StatusOK, code, resp.Message)
	}

	w, resp := do(t, r, http.MethodGet, "/driver/deliveries", driver, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var board []models.Order
	decode(t, resp.Data, &board)
	require.Len(t, board, 1)
	assert.Equal(t, order.ID, board[0].ID)

	code, resp = transition(t, r, order.ID, driver, models.StatusOutForDelivery)
	require.Equal(t, http.StatusOK, code, resp.Message)
	var dispatched models.Order
	decode(t, resp.Data, &dispatched)
	assert.Equal(t, "DRV-123456", dispatched.DriverID)
	assert.NotNil(t, dispatched.DispatchedAt)
}

func TestCorrectContact(t *testing.T) {
	r := setupOrderRouter(newEnv(t))
	driver := tokenFor(t, "DRV-123456", models.RoleDriver)
	delivery := placeOrder(t, r, models.DeliveryDelivery)
	pickup := placeOrder(t, r, models.DeliveryPickup)

	w, _ := do(t, r, http.MethodPatch, "/driver/deliveries/"+delivery.ID+"/contact", driver, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := do(t, r, http.MethodPatch, "/driver/deliveries/"+delivery.ID+"/contact", driver, gin.H{"address": "4 Ring Road, Osu"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got models.Order
	decode(t, resp.Data, &got)
	assert.Equal(t, "4 Ring Road, Osu", got.Customer.Address)
	assert.Equal(t, "0241234567", got.Customer.Phone)

	w, _ = do(t, r, http.MethodPatch, "/driver/deliveries/"+pickup.ID+"/contact", driver, gin.H{"phone": "0200000000"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrdersFilters(t *testing.T) {
	r := setupOrderRouter(newEnv(t))
	manager := tokenFor(t, "manager@kokoking.com", models.RoleManager)
	placeOrder(t, r, models.DeliveryPickup)
	placeOrder(t, r, models.DeliveryDelivery)

	w, resp := do(t, r, http.MethodGet, "/staff/orders?method=delivery", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	decode(t, resp.Data, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, models.DeliveryDelivery, orders[0].DeliveryMethod)

	w, _ = do(t, r, http.MethodGet, "/staff/orders?date=yesterday", manager, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodGet, "/staff/orders?status=served", manager, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestKitchenViews(t *testing.T) {
	r := setupOrderRouter(newEnv(t))
	kitchen := tokenFor(t, "kitchen@kokoking.com", models.RoleKitchen)
	first := placeOrder(t, r, models.DeliveryPickup)
	placeOrder(t, r, models.DeliveryPickup)

	w, resp := do(t, r, http.MethodGet, "/staff/kitchen/queue", kitchen, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var queue []models.Order
	decode(t, resp.Data, &queue)
	assert.Len(t, queue, 2)

	code, _ := transition(t, r, first.ID, kitchen, models.StatusConfirmed)
	require.Equal(t, http.StatusOK, code)

	w, resp = do(t, r, http.MethodGet, "/staff/kitchen/display", kitchen, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var display []models.Order
	decode(t, resp.Data, &display)
	require.Len(t, display, 1)
	assert.Equal(t, first.ID, display[0].ID)
}

func TestReceiptOnlyForCompletedOrders(t *testing.T) {
	r := setupOrderRouter(newEnv(t))
	kitchen := tokenFor(t, "kitchen@kokoking.com", models.RoleKitchen)
	order := placeOrder(t, r, models.DeliveryPickup)

	w, _ := do(t, r, http.MethodGet, "/staff/orders/"+order.ID+"/receipt", kitchen, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, next := range []models.OrderStatus{models.StatusConfirmed, models.StatusPreparing, models.StatusReady, models.StatusCompleted} {
		code, _ := transition(t, r, order.ID, kitchen, next)
		require.Equal(t, http.StatusOK, code)
	}

	w, _ = do(t, r, http.MethodGet, "/staff/orders/"+order.ID+"/receipt", kitchen, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "receipt-"+order.ID+".txt")
	assert.Contains(t, w.Body.String(), "KOKO KING EXPRESS")
	assert.Contains(t, w.Body.String(), "2x Chicken Wrap - GH₵150.00")
	assert.Contains(t, w.Body.String(), "TOTAL: GH₵150.00")
}
