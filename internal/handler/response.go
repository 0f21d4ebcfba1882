package handler

import (
	"net/http"

	"platform-auth/internal/apperr"

	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "Success"
	statusFail    = "Fail"
)

type successResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}

type failResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail"`
}

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, successResponse{Status: statusSuccess, Data: data})
}

// respondError maps a taxonomy error to its status code and Fail envelope.
// Unauthorized responses always carry the bearer challenge header.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Unauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.JSON(apperr.HTTPStatus(kind), failResponse{Status: statusFail, Detail: apperr.Detail(err)})
}

func respondValidationError(c *gin.Context) {
	c.JSON(http.StatusBadRequest, failResponse{Status: statusFail, Detail: "Validation error"})
}
