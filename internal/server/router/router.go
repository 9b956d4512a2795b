package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aferrandiz/ventipro/internal/server/handlers"
)

// Handlers groups the HTTP adapters the router wires.
type Handlers struct {
	Calculadora *handlers.CalculadoraHandler
	Analisis    *handlers.AnalisisHandler
	Mercado     *handlers.MercadoHandler
	Granja      *handlers.GranjaHandler
	CRM         *handlers.CRMHandler
	Parametros  *handlers.ParametrosHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")

	api.POST("/calculadora/calcular", h.Calculadora.Calcular)

	analisis := api.Group("/analisis")
	analisis.POST("/historial", h.Analisis.Guardar)
	analisis.GET("/historial", h.Analisis.Historial)
	analisis.GET("/stats", h.Analisis.Stats)
	analisis.GET("/evolucion", h.Analisis.Evolucion)

	mercado := api.Group("/mercado")
	mercado.GET("/precios", h.Mercado.Precios)
	mercado.GET("/precios/:producto/historico", h.Mercado.Historico)
	mercado.GET("/precios/:producto/estimacion", h.Mercado.Estimacion)
	mercado.GET("/noticias", h.Mercado.Noticias)
	mercado.POST("/precios/refrescar", h.Mercado.Refrescar)

	centros := api.Group("/centros")
	centros.POST("", h.Granja.CrearCentro)
	centros.GET("", h.Granja.Centros)
	centros.GET("/:id", h.Granja.Centro)
	centros.PUT("/:id", h.Granja.ActualizarCentro)
	centros.DELETE("/:id", h.Granja.EliminarCentro)

	lotes := api.Group("/lotes")
	lotes.POST("", h.Granja.CrearLote)
	lotes.GET("", h.Granja.Lotes)
	lotes.GET("/:id", h.Granja.Lote)
	lotes.PUT("/:id", h.Granja.ActualizarLote)
	lotes.DELETE("/:id", h.Granja.EliminarLote)

	api.GET("/actividad", h.Granja.Actividad)
	api.GET("/actividad/stats", h.Granja.ActividadStats)

	clientes := api.Group("/clientes")
	clientes.POST("", h.CRM.CrearCliente)
	clientes.GET("", h.CRM.Clientes)
	clientes.GET("/stats", h.CRM.Stats)
	clientes.POST("/importar", h.CRM.ImportarClientes)
	clientes.POST("/importar/sheets", h.CRM.ImportarLeads)
	clientes.GET("/:id", h.CRM.Cliente)
	clientes.PUT("/:id", h.CRM.ActualizarCliente)
	clientes.DELETE("/:id", h.CRM.EliminarCliente)

	ofertas := api.Group("/ofertas")
	ofertas.POST("", h.CRM.CrearOferta)
	ofertas.GET("", h.CRM.Ofertas)
	ofertas.GET("/:id", h.CRM.Oferta)
	ofertas.PUT("/:id", h.CRM.ActualizarOferta)
	ofertas.POST("/:id/enviar", h.CRM.EnviarOferta)

	parametros := api.Group("/parametros")
	parametros.POST("", h.Parametros.Crear)
	parametros.GET("", h.Parametros.Listar)
	parametros.GET("/activos", h.Parametros.Activos)
	parametros.PUT("/:id", h.Parametros.Actualizar)
	parametros.POST("/:id/activar", h.Parametros.Activar)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
