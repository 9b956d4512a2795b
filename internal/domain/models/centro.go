package models

import "time"

// TipoCentro distinguishes breeding sites from fattening sites.
type TipoCentro string

const (
	TipoCentroCria    TipoCentro = "cria"
	TipoCentroEngorde TipoCentro = "engorde"
)

// Centro is a physical production site with a fixed number of slots.
type Centro struct {
	ID             string     `bson:"_id,omitempty" json:"id"`
	Nombre         string     `bson:"nombre" json:"nombre"`
	Tipo           TipoCentro `bson:"tipo" json:"tipo"`
	Ubicacion      string     `bson:"ubicacion" json:"ubicacion"`
	Provincia      string     `bson:"provincia" json:"provincia"`
	CCAA           string     `bson:"ccaa" json:"ccaa"`
	PlazasTotales  int        `bson:"plazasTotales" json:"plazasTotales"`
	PlazasOcupadas int        `bson:"plazasOcupadas" json:"plazasOcupadas"`
	Descripcion    string     `bson:"descripcion,omitempty" json:"descripcion,omitempty"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// PlazasLibres returns the free slot count, never negative.
func (c Centro) PlazasLibres() int {
	libres := c.PlazasTotales - c.PlazasOcupadas
	if libres < 0 {
		return 0
	}
	return libres
}

// PlazasCeboDisponibles sums the free slots across fattening-type centers.
// This is the capacity figure the scenario engine checks cebo viability against.
func PlazasCeboDisponibles(centros []Centro) int {
	var total int
	for _, c := range centros {
		if c.Tipo == TipoCentroEngorde {
			total += c.PlazasLibres()
		}
	}
	return total
}
