package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aferrandiz/ventipro/internal/service/calculadora"
)

// userIDHeader identifies the caller. Empty is acceptable for single-owner
// deployments.
const userIDHeader = "X-User-Id"

// CalculadoraHandler exposes the scenario calculator over HTTP.
type CalculadoraHandler struct {
	svc    *calculadora.Service
	logger *zap.Logger
}

// NewCalculadoraHandler constructs the HTTP handler adapter.
func NewCalculadoraHandler(svc *calculadora.Service, logger *zap.Logger) *CalculadoraHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculadoraHandler{svc: svc, logger: logger}
}

// Calcular runs the three exit scenarios for a herd size.
func (h *CalculadoraHandler) Calcular(c *gin.Context) {
	var in calculadora.CalculoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid calculation payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	in.UserID = c.GetHeader(userIDHeader)

	resultado, err := h.svc.Calcular(c.Request.Context(), in)
	if err != nil {
		h.logger.Error("calculation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resultado)
}
