package models

import "time"

// EstadoOferta is the lifecycle state of a commercial offer.
type EstadoOferta string

const (
	EstadoOfertaBorrador  EstadoOferta = "borrador"
	EstadoOfertaEnviada   EstadoOferta = "enviada"
	EstadoOfertaAceptada  EstadoOferta = "aceptada"
	EstadoOfertaRechazada EstadoOferta = "rechazada"
	EstadoOfertaExpirada  EstadoOferta = "expirada"
)

// Oferta is a commercial offer tying a lot (optionally) and a customer to a
// scenario, a volume and a price. Decimal amounts are kept as exact strings.
type Oferta struct {
	ID                  string       `bson:"_id,omitempty" json:"id"`
	Codigo              string       `bson:"codigo" json:"codigo"`
	LoteID              string       `bson:"loteId,omitempty" json:"loteId,omitempty"`
	ClienteID           string       `bson:"clienteId" json:"clienteId"`
	Escenario           Escenario    `bson:"escenario" json:"escenario"`
	NumAnimales         int          `bson:"numAnimales" json:"numAnimales"`
	PesoEstimado        string       `bson:"pesoEstimado" json:"pesoEstimado"`
	PrecioKg            string       `bson:"precioKg" json:"precioKg"`
	PrecioTotal         string       `bson:"precioTotal" json:"precioTotal"`
	FechaDisponibilidad *time.Time   `bson:"fechaDisponibilidad,omitempty" json:"fechaDisponibilidad,omitempty"`
	Condiciones         string       `bson:"condiciones,omitempty" json:"condiciones,omitempty"`
	TextoOferta         string       `bson:"textoOferta,omitempty" json:"textoOferta,omitempty"`
	Estado              EstadoOferta `bson:"estado" json:"estado"`
	EmailEnviado        bool         `bson:"emailEnviado" json:"emailEnviado"`
	FechaEnvio          *time.Time   `bson:"fechaEnvio,omitempty" json:"fechaEnvio,omitempty"`
	CreatedAt           time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time    `bson:"updatedAt" json:"updatedAt"`
}
