package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aferrandiz/ventipro/internal/domain/models"
	"github.com/aferrandiz/ventipro/internal/service/parametros"
)

// ParametrosHandler exposes economic parameter snapshot management.
type ParametrosHandler struct {
	svc    *parametros.Service
	logger *zap.Logger
}

// NewParametrosHandler constructs the HTTP handler adapter.
func NewParametrosHandler(svc *parametros.Service, logger *zap.Logger) *ParametrosHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParametrosHandler{svc: svc, logger: logger}
}

// Crear registers and activates a new snapshot.
func (h *ParametrosHandler) Crear(c *gin.Context) {
	var params models.ParametrosEconomicos
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	creados, err := h.svc.Crear(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, creados)
}

// Activos serves the currently active snapshot (or the defaults).
func (h *ParametrosHandler) Activos(c *gin.Context) {
	params, err := h.svc.Activos(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load active parameters", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load active parameters"})
		return
	}
	c.JSON(http.StatusOK, params)
}

// Listar serves every snapshot, newest first.
func (h *ParametrosHandler) Listar(c *gin.Context) {
	lista, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list parameters", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list parameters"})
		return
	}
	c.JSON(http.StatusOK, lista)
}

// Actualizar replaces one snapshot.
func (h *ParametrosHandler) Actualizar(c *gin.Context) {
	var params models.ParametrosEconomicos
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	params.ID = c.Param("id")

	actualizados, err := h.svc.Actualizar(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, parametros.ErrNoEncontrado) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, actualizados)
}

// Activar switches the active snapshot.
func (h *ParametrosHandler) Activar(c *gin.Context) {
	activados, err := h.svc.Activar(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, parametros.ErrNoEncontrado) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to activate parameters", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to activate parameters"})
		return
	}
	c.JSON(http.StatusOK, activados)
}
