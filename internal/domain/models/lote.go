package models

import "time"

// Calidad grades a lot.
type Calidad string

const (
	CalidadAlta  Calidad = "alta"
	CalidadMedia Calidad = "media"
	CalidadBaja  Calidad = "baja"
)

// FaseLote is the production phase a lot is currently in.
type FaseLote string

const (
	FaseLactancia  FaseLote = "lactancia"
	FaseTransicion FaseLote = "transicion"
	FaseCebo       FaseLote = "cebo"
	FaseVendido    FaseLote = "vendido"
)

// Lote is a batch of animals moving together through the production phases.
type Lote struct {
	ID                    string     `bson:"_id,omitempty" json:"id"`
	Codigo                string     `bson:"codigo" json:"codigo"`
	CentroID              string     `bson:"centroId" json:"centroId"`
	NumAnimales           int        `bson:"numAnimales" json:"numAnimales"`
	NumBajas              int        `bson:"numBajas" json:"numBajas"`
	PesoActual            string     `bson:"pesoActual" json:"pesoActual"`
	PesoObjetivo          string     `bson:"pesoObjetivo,omitempty" json:"pesoObjetivo,omitempty"`
	Calidad               Calidad    `bson:"calidad" json:"calidad"`
	Fase                  FaseLote   `bson:"fase" json:"fase"`
	FechaNacimiento       *time.Time `bson:"fechaNacimiento,omitempty" json:"fechaNacimiento,omitempty"`
	FechaDestete          *time.Time `bson:"fechaDestete,omitempty" json:"fechaDestete,omitempty"`
	FechaEntradaCebo      *time.Time `bson:"fechaEntradaCebo,omitempty" json:"fechaEntradaCebo,omitempty"`
	FechaVentaPrevista    *time.Time `bson:"fechaVentaPrevista,omitempty" json:"fechaVentaPrevista,omitempty"`
	EscenarioSeleccionado Escenario  `bson:"escenarioSeleccionado,omitempty" json:"escenarioSeleccionado,omitempty"`
	Notas                 string     `bson:"notas,omitempty" json:"notas,omitempty"`
	CreatedAt             time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time  `bson:"updatedAt" json:"updatedAt"`
}
