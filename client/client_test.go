package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/koko-king/convergence"
	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/utils"
)

// fakeAPI mimics the handful of routes a terminal calls.
func fakeAPI(t *testing.T, orders []models.Order) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/:role/login", func(c *gin.Context) {
		var in struct {
			Password string `json:"password"`
		}
		_ = c.ShouldBindJSON(&in)
		if in.Password != "demo123" {
			utils.RespondJSON(c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{"token": "tok", "role": c.Param("role")})
	})
	r.GET("/staff/orders", func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer tok" {
			utils.RespondJSON(c, http.StatusUnauthorized, "Authorization header missing", nil)
			return
		}
		assert.Equal(t, "branch-osu", c.Query("branch"))
		assert.Equal(t, "pending", c.Query("status"))
		utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientLoginAndList(t *testing.T) {
	orders := []models.Order{{ID: "ON-20261016-001", Status: models.StatusPending, Total: models.Cedis(80)}}
	srv := fakeAPI(t, orders)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.List(ctx, models.OrderFilter{BranchID: "branch-osu", Status: models.StatusPending})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	err = c.Login(ctx, models.RoleKitchen, "kitchen@kokoking.com", "wrong")
	require.ErrorAs(t, err, &apiErr)

	require.NoError(t, c.Login(ctx, models.RoleKitchen, "kitchen@kokoking.com", "demo123"))
	assert.Equal(t, models.RoleKitchen, c.Role())

	got, err := c.List(ctx, models.OrderFilter{BranchID: "branch-osu", Status: models.StatusPending})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ON-20261016-001", got[0].ID)
	assert.Equal(t, "80", got[0].Total.String())
}

func TestClientFeedsPoller(t *testing.T) {
	srv := fakeAPI(t, []models.Order{{ID: "WI-20261016-001", Status: models.StatusPending}})
	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	require.NoError(t, c.Login(context.Background(), models.RoleKitchen, "kitchen@kokoking.com", "demo123"))

	var announced []models.Order
	p := convergence.NewPoller(convergence.Config{
		Name:              "kitchen",
		Source:            c,
		Filter:            models.OrderFilter{BranchID: "branch-osu", Status: models.StatusPending},
		View:              convergence.KitchenQueue,
		Clock:             convergence.NewManualClock(time.Now()),
		NotifyOnFirstPoll: true,
		Notifier: convergence.NotifierFunc(func(_ context.Context, orders []models.Order) {
			announced = append(announced, orders...)
		}),
	})
	require.NoError(t, p.Tick(context.Background()))
	require.Len(t, announced, 1)
	assert.Equal(t, "WI-20261016-001", announced[0].ID)
}
