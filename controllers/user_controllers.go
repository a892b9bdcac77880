package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/koko-king/middlewares"
	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/services"
	"github.com/yeremiapane/koko-king/utils"
)

// UserController issues session tokens for staff roles and drivers.
type UserController struct {
	Auth     *services.Authenticator
	Registry *services.Registry
}

func NewUserController(auth *services.Authenticator, registry *services.Registry) *UserController {
	return &UserController{Auth: auth, Registry: registry}
}

// StaffLogin -> kitchen, manager or admin credentials in, JWT out
func (uc *UserController) StaffLogin(c *gin.Context) {
	role := models.Role(c.Param("role"))
	if !role.Valid() || role == models.RoleDriver {
		utils.RespondError(c, &models.NotFoundError{Kind: "login role", ID: string(role)})
		return
	}

	var input struct {
		Identifier string `json:"email"`
		Username   string `json:"username"`
		Password   string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, &models.ValidationError{Field: "password", Message: err.Error()})
		return
	}
	identifier := input.Identifier
	if identifier == "" {
		identifier = input.Username
	}

	if err := uc.Auth.Login(role, identifier, input.Password); err != nil {
		utils.InfoLogger.WithField("role", role).Warn("Staff login refused")
		utils.RespondJSON(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	uc.issue(c, identifier, role)
}

// RegisterDriver -> driver self-registration by phone
func (uc *UserController) RegisterDriver(c *gin.Context) {
	var input struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, &models.ValidationError{Field: "phone", Message: err.Error()})
		return
	}
	driver, err := uc.Registry.RegisterDriver(c.Request.Context(), input.Phone)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.InfoLogger.WithField("driver_id", driver.ID).Info("Driver registered")
	utils.RespondJSON(c, http.StatusCreated, "Driver registered", driver)
}

// DriverLogin -> registered phone plus the shared passkey
func (uc *UserController) DriverLogin(c *gin.Context) {
	var input struct {
		Phone   string `json:"phone" binding:"required"`
		Passkey string `json:"passkey" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, &models.ValidationError{Message: err.Error()})
		return
	}
	driver, err := uc.Registry.DriverLogin(c.Request.Context(), input.Phone, input.Passkey)
	if errors.Is(err, services.ErrInvalidCredentials) {
		utils.RespondJSON(c, http.StatusUnauthorized, "invalid phone or passkey", nil)
		return
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	uc.issue(c, driver.ID, models.RoleDriver)
}

// ListDrivers -> admin view of registered drivers
func (uc *UserController) ListDrivers(c *gin.Context) {
	drivers, err := uc.Registry.ListDrivers(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All drivers", drivers)
}

// Session -> echoes the caller's role and subject
func (uc *UserController) Session(c *gin.Context) {
	role, _ := middlewares.CurrentRole(c)
	utils.RespondJSON(c, http.StatusOK, "Session", gin.H{
		"role":    role,
		"subject": middlewares.CurrentSubject(c),
	})
}

func (uc *UserController) issue(c *gin.Context, subject string, role models.Role) {
	token, err := utils.GenerateToken(subject, role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.InfoLogger.WithField("role", role).Info("Login successful")
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":   token,
		"role":    role,
		"subject": subject,
	})
}
