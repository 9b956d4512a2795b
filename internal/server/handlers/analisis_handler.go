package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aferrandiz/ventipro/internal/domain/models"
	"github.com/aferrandiz/ventipro/internal/service/analisis"
)

// AnalisisHandler exposes the computation history and its aggregations.
type AnalisisHandler struct {
	svc    *analisis.Service
	logger *zap.Logger
}

// NewAnalisisHandler constructs the HTTP handler adapter.
func NewAnalisisHandler(svc *analisis.Service, logger *zap.Logger) *AnalisisHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalisisHandler{svc: svc, logger: logger}
}

// Guardar persists one computed scenario triple into the history.
func (h *AnalisisHandler) Guardar(c *gin.Context) {
	var in analisis.GuardarInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid save payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	in.UserID = c.GetHeader(userIDHeader)

	calculo, err := h.svc.GuardarCalculo(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, analisis.ErrEscenarioDesconocido) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to save computation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save computation"})
		return
	}

	c.JSON(http.StatusCreated, calculo)
}

// Historial lists saved computations, newest first.
func (h *AnalisisHandler) Historial(c *gin.Context) {
	filtros := models.HistorialFiltros{
		UserID:               c.GetHeader(userIDHeader),
		LoteID:               c.Query("loteId"),
		EscenarioRecomendado: models.Escenario(c.Query("escenarioRecomendado")),
	}
	if desde, ok := parseFecha(c.Query("desde")); ok {
		filtros.FechaDesde = &desde
	}
	if hasta, ok := parseFecha(c.Query("hasta")); ok {
		filtros.FechaHasta = &hasta
	}
	if limit, err := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64); err == nil {
		filtros.Limit = limit
	}

	historial, err := h.svc.Historial(c.Request.Context(), filtros)
	if err != nil {
		h.logger.Error("failed to list history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list history"})
		return
	}

	c.JSON(http.StatusOK, historial)
}

// Stats aggregates the caller's full history.
func (h *AnalisisHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), c.GetHeader(userIDHeader))
	if err != nil {
		h.logger.Error("failed to compute stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Evolucion serves the weekly trend series of one metric.
func (h *AnalisisHandler) Evolucion(c *gin.Context) {
	meses, _ := strconv.Atoi(c.DefaultQuery("meses", "6"))
	metrica := analisis.Metrica(c.DefaultQuery("metrica", string(analisis.MetricaMargenTotal)))

	serie, err := h.svc.Evolucion(c.Request.Context(), c.GetHeader(userIDHeader), meses, metrica)
	if err != nil {
		if errors.Is(err, analisis.ErrMetricaNoValida) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to compute evolution", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute evolution"})
		return
	}

	c.JSON(http.StatusOK, serie)
}

func parseFecha(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
