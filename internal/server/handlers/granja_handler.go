package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aferrandiz/ventipro/internal/domain/models"
	"github.com/aferrandiz/ventipro/internal/service/granja"
)

// GranjaHandler exposes production sites, lots and the activity log.
type GranjaHandler struct {
	svc    *granja.Service
	logger *zap.Logger
}

// NewGranjaHandler constructs the HTTP handler adapter.
func NewGranjaHandler(svc *granja.Service, logger *zap.Logger) *GranjaHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GranjaHandler{svc: svc, logger: logger}
}

// CrearCentro registers a production site.
func (h *GranjaHandler) CrearCentro(c *gin.Context) {
	var centro models.Centro
	if err := c.ShouldBindJSON(&centro); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	creado, err := h.svc.CrearCentro(c.Request.Context(), centro)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, creado)
}

// Centros lists production sites.
func (h *GranjaHandler) Centros(c *gin.Context) {
	centros, err := h.svc.Centros(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list centros", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list centros"})
		return
	}
	c.JSON(http.StatusOK, centros)
}

// Centro serves one production site.
func (h *GranjaHandler) Centro(c *gin.Context) {
	centro, err := h.svc.Centro(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responderError(c, err, "failed to load centro")
		return
	}
	c.JSON(http.StatusOK, centro)
}

// ActualizarCentro overwrites one production site.
func (h *GranjaHandler) ActualizarCentro(c *gin.Context) {
	var centro models.Centro
	if err := c.ShouldBindJSON(&centro); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	centro.ID = c.Param("id")

	if err := h.svc.ActualizarCentro(c.Request.Context(), centro); err != nil {
		h.responderError(c, err, "failed to update centro")
		return
	}
	c.JSON(http.StatusOK, centro)
}

// EliminarCentro removes one production site.
func (h *GranjaHandler) EliminarCentro(c *gin.Context) {
	if err := h.svc.EliminarCentro(c.Request.Context(), c.Param("id")); err != nil {
		h.responderError(c, err, "failed to delete centro")
		return
	}
	c.Status(http.StatusNoContent)
}

// CrearLote registers a lot.
func (h *GranjaHandler) CrearLote(c *gin.Context) {
	var lote models.Lote
	if err := c.ShouldBindJSON(&lote); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	creado, err := h.svc.CrearLote(c.Request.Context(), lote)
	if err != nil {
		if errors.Is(err, granja.ErrNoEncontrado) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, creado)
}

// Lotes lists lots.
func (h *GranjaHandler) Lotes(c *gin.Context) {
	lotes, err := h.svc.Lotes(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list lotes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list lotes"})
		return
	}
	c.JSON(http.StatusOK, lotes)
}

// Lote serves one lot.
func (h *GranjaHandler) Lote(c *gin.Context) {
	lote, err := h.svc.Lote(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responderError(c, err, "failed to load lote")
		return
	}
	c.JSON(http.StatusOK, lote)
}

// ActualizarLote overwrites one lot.
func (h *GranjaHandler) ActualizarLote(c *gin.Context) {
	var lote models.Lote
	if err := c.ShouldBindJSON(&lote); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	lote.ID = c.Param("id")

	if err := h.svc.ActualizarLote(c.Request.Context(), lote); err != nil {
		h.responderError(c, err, "failed to update lote")
		return
	}
	c.JSON(http.StatusOK, lote)
}

// EliminarLote removes one lot.
func (h *GranjaHandler) EliminarLote(c *gin.Context) {
	if err := h.svc.EliminarLote(c.Request.Context(), c.Param("id")); err != nil {
		h.responderError(c, err, "failed to delete lote")
		return
	}
	c.Status(http.StatusNoContent)
}

// Actividad serves the latest activity entries.
func (h *GranjaHandler) Actividad(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	entradas, err := h.svc.Actividad(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list activity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list activity"})
		return
	}
	c.JSON(http.StatusOK, entradas)
}

// ActividadStats serves recent activity volume per module.
func (h *GranjaHandler) ActividadStats(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "500"), 10, 64)
	stats, err := h.svc.ActividadStats(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to compute activity stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute activity stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *GranjaHandler) responderError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, granja.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
