package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aferrandiz/ventipro/internal/domain/models"
	"github.com/aferrandiz/ventipro/internal/service/mercado"
)

// MercadoHandler exposes market quotes, history, forecasts and news.
type MercadoHandler struct {
	svc    *mercado.Service
	logger *zap.Logger
}

// NewMercadoHandler constructs the HTTP handler adapter.
func NewMercadoHandler(svc *mercado.Service, logger *zap.Logger) *MercadoHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MercadoHandler{svc: svc, logger: logger}
}

// Precios serves the current quote sheet.
func (h *MercadoHandler) Precios(c *gin.Context) {
	precios, err := h.svc.PreciosActuales(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load prices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load prices"})
		return
	}
	c.JSON(http.StatusOK, precios)
}

// Historico serves one product's stored price series.
func (h *MercadoHandler) Historico(c *gin.Context) {
	producto := models.ProductoMercado(c.Param("producto"))
	meses, _ := strconv.Atoi(c.DefaultQuery("meses", "6"))

	serie, err := h.svc.Historico(c.Request.Context(), producto, meses)
	if err != nil {
		if errors.Is(err, mercado.ErrProductoNoValido) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to load price history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load price history"})
		return
	}

	c.JSON(http.StatusOK, serie)
}

// Estimacion serves a forward price projection for one product.
func (h *MercadoHandler) Estimacion(c *gin.Context) {
	producto := models.ProductoMercado(c.Param("producto"))
	semanas, _ := strconv.Atoi(c.DefaultQuery("semanas", "4"))

	estimacion, err := h.svc.Estimar(c.Request.Context(), producto, semanas)
	if err != nil {
		switch {
		case errors.Is(err, mercado.ErrProductoNoValido), errors.Is(err, mercado.ErrHorizonteNoValido):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, mercado.ErrHistoricoInsuficiente):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			h.logger.Error("failed to estimate price", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to estimate price"})
		}
		return
	}

	c.JSON(http.StatusOK, estimacion)
}

// Noticias serves the latest sector news.
func (h *MercadoHandler) Noticias(c *gin.Context) {
	noticias, err := h.svc.Noticias(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load news", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load news"})
		return
	}
	c.JSON(http.StatusOK, noticias)
}

// Refrescar pulls the feed and appends a snapshot to the stored history.
func (h *MercadoHandler) Refrescar(c *gin.Context) {
	precios, err := h.svc.RefrescarPrecios(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to refresh prices", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to refresh prices"})
		return
	}
	c.JSON(http.StatusOK, precios)
}
