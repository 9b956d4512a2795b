package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aferrandiz/ventipro/internal/domain/models"
	"github.com/aferrandiz/ventipro/internal/service/crm"
)

// CRMHandler exposes customers, lead imports and commercial offers.
type CRMHandler struct {
	svc    *crm.Service
	logger *zap.Logger
}

// NewCRMHandler constructs the HTTP handler adapter.
func NewCRMHandler(svc *crm.Service, logger *zap.Logger) *CRMHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CRMHandler{svc: svc, logger: logger}
}

// CrearCliente registers a lead.
func (h *CRMHandler) CrearCliente(c *gin.Context) {
	var cliente models.Cliente
	if err := c.ShouldBindJSON(&cliente); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	creado, err := h.svc.CrearCliente(c.Request.Context(), cliente)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, creado)
}

// Clientes lists leads matching the query filters.
func (h *CRMHandler) Clientes(c *gin.Context) {
	filtros := models.ClientesFiltros{
		Tipo:      c.Query("tipo"),
		Provincia: c.Query("provincia"),
		CCAA:      c.Query("ccaa"),
		Estado:    c.Query("estado"),
		Prioridad: c.Query("prioridad"),
		Busqueda:  c.Query("q"),
	}

	clientes, err := h.svc.Clientes(c.Request.Context(), filtros)
	if err != nil {
		h.logger.Error("failed to list clientes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list clientes"})
		return
	}
	c.JSON(http.StatusOK, clientes)
}

// Cliente serves one lead.
func (h *CRMHandler) Cliente(c *gin.Context) {
	cliente, err := h.svc.Cliente(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responderError(c, err, "failed to load cliente")
		return
	}
	c.JSON(http.StatusOK, cliente)
}

// ActualizarCliente overwrites one lead.
func (h *CRMHandler) ActualizarCliente(c *gin.Context) {
	var cliente models.Cliente
	if err := c.ShouldBindJSON(&cliente); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cliente.ID = c.Param("id")

	if err := h.svc.ActualizarCliente(c.Request.Context(), cliente); err != nil {
		h.responderError(c, err, "failed to update cliente")
		return
	}
	c.JSON(http.StatusOK, cliente)
}

// EliminarCliente removes one lead.
func (h *CRMHandler) EliminarCliente(c *gin.Context) {
	if err := h.svc.EliminarCliente(c.Request.Context(), c.Param("id")); err != nil {
		h.responderError(c, err, "failed to delete cliente")
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats summarizes the CRM pipeline.
func (h *CRMHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to compute CRM stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute CRM stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ImportarLeads pulls leads from the configured external sheet.
func (h *CRMHandler) ImportarLeads(c *gin.Context) {
	resultado, err := h.svc.ImportarLeads(c.Request.Context())
	if err != nil {
		if errors.Is(err, crm.ErrImportacionDeshabilitada) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("lead import failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "lead import failed"})
		return
	}
	c.JSON(http.StatusOK, resultado)
}

// ImportarClientes bulk-inserts pre-parsed customer rows.
func (h *CRMHandler) ImportarClientes(c *gin.Context) {
	var clientes []models.Cliente
	if err := c.ShouldBindJSON(&clientes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resultado, err := h.svc.ImportarClientes(c.Request.Context(), clientes)
	if err != nil {
		h.logger.Error("bulk customer import failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "bulk customer import failed"})
		return
	}
	c.JSON(http.StatusOK, resultado)
}

// CrearOferta registers a commercial offer.
func (h *CRMHandler) CrearOferta(c *gin.Context) {
	var oferta models.Oferta
	if err := c.ShouldBindJSON(&oferta); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	creada, err := h.svc.CrearOferta(c.Request.Context(), oferta)
	if err != nil {
		if errors.Is(err, crm.ErrNoEncontrado) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, creada)
}

// Ofertas lists offers, optionally filtered by customer and/or lot.
func (h *CRMHandler) Ofertas(c *gin.Context) {
	ofertas, err := h.svc.Ofertas(c.Request.Context(), c.Query("clienteId"), c.Query("loteId"))
	if err != nil {
		h.logger.Error("failed to list ofertas", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ofertas"})
		return
	}
	c.JSON(http.StatusOK, ofertas)
}

// Oferta serves one offer.
func (h *CRMHandler) Oferta(c *gin.Context) {
	oferta, err := h.svc.Oferta(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responderError(c, err, "failed to load oferta")
		return
	}
	c.JSON(http.StatusOK, oferta)
}

// ActualizarOferta overwrites one offer.
func (h *CRMHandler) ActualizarOferta(c *gin.Context) {
	var oferta models.Oferta
	if err := c.ShouldBindJSON(&oferta); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	oferta.ID = c.Param("id")

	if err := h.svc.ActualizarOferta(c.Request.Context(), oferta); err != nil {
		h.responderError(c, err, "failed to update oferta")
		return
	}
	c.JSON(http.StatusOK, oferta)
}

// EnviarOferta marks one offer as sent.
func (h *CRMHandler) EnviarOferta(c *gin.Context) {
	oferta, err := h.svc.EnviarOferta(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, crm.ErrNoEncontrado) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, oferta)
}

func (h *CRMHandler) responderError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, crm.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
