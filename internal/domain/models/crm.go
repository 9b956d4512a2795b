package models

import "time"

// TipoCliente segments leads by the product they buy.
type TipoCliente string

const (
	TipoClienteComprador57   TipoCliente = "comprador_5_7"
	TipoClienteComprador2021 TipoCliente = "comprador_20_21"
	TipoClienteCompradorCebo TipoCliente = "comprador_cebo"
	TipoClienteMatadero      TipoCliente = "matadero"
	TipoClienteIntermediario TipoCliente = "intermediario"
	TipoClienteOtro          TipoCliente = "otro"
)

// EstadoCliente is the pipeline stage of a lead.
type EstadoCliente string

const (
	EstadoClienteNuevo            EstadoCliente = "nuevo"
	EstadoClienteContactado       EstadoCliente = "contactado"
	EstadoClientePropuestaEnviada EstadoCliente = "propuesta_enviada"
	EstadoClienteNegociacion      EstadoCliente = "negociacion"
	EstadoClienteCerradoGanado    EstadoCliente = "cerrado_ganado"
	EstadoClienteCerradoPerdido   EstadoCliente = "cerrado_perdido"
)

// Prioridad ranks how aggressively a lead should be worked.
type Prioridad string

const (
	PrioridadAlta  Prioridad = "alta"
	PrioridadMedia Prioridad = "media"
	PrioridadBaja  Prioridad = "baja"
)

// Cliente is a CRM lead or customer.
type Cliente struct {
	ID              string        `bson:"_id,omitempty" json:"id"`
	Nombre          string        `bson:"nombre" json:"nombre"`
	Empresa         string        `bson:"empresa,omitempty" json:"empresa,omitempty"`
	Email           string        `bson:"email,omitempty" json:"email,omitempty"`
	Telefono        string        `bson:"telefono,omitempty" json:"telefono,omitempty"`
	Web             string        `bson:"web,omitempty" json:"web,omitempty"`
	TipoCliente     TipoCliente   `bson:"tipoCliente" json:"tipoCliente"`
	Estado          EstadoCliente `bson:"estado" json:"estado"`
	Prioridad       Prioridad     `bson:"prioridad" json:"prioridad"`
	Preferente      bool          `bson:"preferente" json:"preferente"`
	CCAA            string        `bson:"ccaa,omitempty" json:"ccaa,omitempty"`
	Provincia       string        `bson:"provincia,omitempty" json:"provincia,omitempty"`
	Municipio       string        `bson:"municipio,omitempty" json:"municipio,omitempty"`
	Especialidad    string        `bson:"especialidad,omitempty" json:"especialidad,omitempty"`
	VolumenHabitual string        `bson:"volumenHabitual,omitempty" json:"volumenHabitual,omitempty"`
	OrigenCliente   string        `bson:"origenCliente,omitempty" json:"origenCliente,omitempty"`
	Notas           string        `bson:"notas,omitempty" json:"notas,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ClientesStats summarizes the CRM pipeline.
type ClientesStats struct {
	Total       int `json:"total"`
	Nuevos      int `json:"nuevos"`
	Contactados int `json:"contactados"`
	Propuestas  int `json:"propuestas"`
	Cerrados    int `json:"cerrados"`
}

// CalcularClientesStats counts leads per pipeline stage.
func CalcularClientesStats(clientes []Cliente) ClientesStats {
	stats := ClientesStats{Total: len(clientes)}
	for _, c := range clientes {
		switch c.Estado {
		case EstadoClienteNuevo:
			stats.Nuevos++
		case EstadoClienteContactado:
			stats.Contactados++
		case EstadoClientePropuestaEnviada:
			stats.Propuestas++
		case EstadoClienteCerradoGanado:
			stats.Cerrados++
		}
	}
	return stats
}
