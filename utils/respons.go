package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/koko-king/models"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondError -> typed domain error to HTTP status, with an optional payload
func RespondError(c *gin.Context, err error, data ...interface{}) {
	code := StatusFor(err)
	if code >= http.StatusInternalServerError {
		ErrorLogger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	var payload interface{}
	if len(data) > 0 {
		payload = data[0]
	}
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    payload,
	})
}

// StatusFor maps an error chain to the HTTP status the API reports.
func StatusFor(err error) int {
	var (
		vErr *models.ValidationError
		tErr *models.IllegalTransitionError
		nErr *models.NotFoundError
		sErr *models.StorageUnavailableError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.As(err, &tErr):
		return http.StatusConflict
	case errors.As(err, &nErr):
		return http.StatusNotFound
	case errors.As(err, &sErr):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
