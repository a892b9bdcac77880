package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/koko-king/controllers"
	"github.com/yeremiapane/koko-king/middlewares"
	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/utils"
)

func setupUserRouter(e *env) *gin.Engine {
	r := gin.New()
	userCtrl := controllers.NewUserController(e.auth, e.registry)
	r.POST("/auth/:role/login", userCtrl.StaffLogin)
	r.POST("/drivers/register", userCtrl.RegisterDriver)
	r.POST("/drivers/login", userCtrl.DriverLogin)
	auth := r.Group("/", middlewares.AuthMiddleware())
	auth.GET("/session", userCtrl.Session)
	auth.GET("/admin/drivers", middlewares.RoleRequired(models.RoleAdmin), userCtrl.ListDrivers)
	return r
}

type loginData struct {
	Token   string      `json:"token"`
	Role    models.Role `json:"role"`
	Subject string      `json:"subject"`
}

func TestStaffLogin(t *testing.T) {
	r := setupUserRouter(newEnv(t))

	w, resp := do(t, r, http.MethodPost, "/auth/kitchen/login", "", gin.H{"email": "Kitchen@KokoKing.com", "password": "demo123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out loginData
	decode(t, resp.Data, &out)
	assert.Equal(t, models.RoleKitchen, out.Role)

	claims, err := utils.ParseToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleKitchen, claims.Role)

	w, resp = do(t, r, http.MethodPost, "/auth/admin/login", "", gin.H{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, resp.Data, &out)
	assert.Equal(t, models.RoleAdmin, out.Role)
}

func TestStaffLoginFailures(t *testing.T) {
	r := setupUserRouter(newEnv(t))

	w, _ := do(t, r, http.MethodPost, "/auth/kitchen/login", "", gin.H{"email": "kitchen@kokoking.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// right password, wrong role
	w, _ = do(t, r, http.MethodPost, "/auth/manager/login", "", gin.H{"email": "kitchen@kokoking.com", "password": "demo123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, http.MethodPost, "/auth/driver/login", "", gin.H{"email": "x", "password": "driver2025"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodPost, "/auth/kitchen/login", "", gin.H{"email": "kitchen@kokoking.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDriverRegisterAndLogin(t *testing.T) {
	r := setupUserRouter(newEnv(t))

	w, _ := do(t, r, http.MethodPost, "/drivers/register", "", gin.H{"phone": "024"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := do(t, r, http.MethodPost, "/drivers/register", "", gin.H{"phone": "0241112222"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var driver models.Driver
	decode(t, resp.Data, &driver)
	assert.Regexp(t, `^DRV-\d{6}$`, driver.ID)

	w, _ = do(t, r, http.MethodPost, "/drivers/register", "", gin.H{"phone": "0241112222"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodPost, "/drivers/login", "", gin.H{"phone": "0241112222", "passkey": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp = do(t, r, http.MethodPost, "/drivers/login", "", gin.H{"phone": "0241112222", "passkey": testPasskey})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out loginData
	decode(t, resp.Data, &out)
	assert.Equal(t, models.RoleDriver, out.Role)
	assert.Equal(t, driver.ID, out.Subject)

	w, resp = do(t, r, http.MethodGet, "/session", out.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var session struct {
		Role    models.Role `json:"role"`
		Subject string      `json:"subject"`
	}
	decode(t, resp.Data, &session)
	assert.Equal(t, driver.ID, session.Subject)

	w, resp = do(t, r, http.MethodGet, "/admin/drivers", tokenFor(t, "admin", models.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var drivers []models.Driver
	decode(t, resp.Data, &drivers)
	assert.Len(t, drivers, 1)
}

func TestSessionRejectsBadToken(t *testing.T) {
	r := setupUserRouter(newEnv(t))
	w, resp := do(t, r, http.MethodGet, "/session", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, resp.Status)
}
