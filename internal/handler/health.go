package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type HealthHandler interface {
	Health(c *gin.Context)
}

type healthHandler struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewHealthHandler(db *sqlx.DB, log *logrus.Logger) HealthHandler {
	return &healthHandler{db: db, log: log}
}

// Health reports 503 when the store is unreachable, 200 otherwise.
func (h *healthHandler) Health(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		h.log.Errorf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, failResponse{Status: statusFail, Detail: "Database unavailable"})
		return
	}
	respondSuccess(c, http.StatusOK, nil)
}
