package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EscenarioSnapshot is the persisted projection of one EscenarioResult inside
// a history record. Decimal values are stored as exact strings so nothing is
// lost to binary floating point between write and read.
type EscenarioSnapshot struct {
	PrecioKg            string `bson:"precioKg" json:"precioKg"`
	IngresosPorAnimal   string `bson:"ingresosPorAnimal" json:"ingresosPorAnimal"`
	CosteTotalPorAnimal string `bson:"costeTotalPorAnimal" json:"costeTotalPorAnimal"`
	MargenPorAnimal     string `bson:"margenPorAnimal" json:"margenPorAnimal"`
	MargenTotal         string `bson:"margenTotal" json:"margenTotal"`
	MargenPorPlazaDia   string `bson:"margenPorPlazaDia" json:"margenPorPlazaDia"`
	RentabilidadPct     string `bson:"rentabilidadPct" json:"rentabilidadPct"`
	MortalidadPct       string `bson:"mortalidadPct" json:"mortalidadPct"`
	Viable              bool   `bson:"viable" json:"viable"`
}

// SnapshotDeResultado projects a computed scenario into its persisted form.
func SnapshotDeResultado(r EscenarioResult) EscenarioSnapshot {
	return EscenarioSnapshot{
		PrecioKg:            r.PrecioKg.String(),
		IngresosPorAnimal:   r.IngresosPorAnimal.String(),
		CosteTotalPorAnimal: r.CosteTotalPorAnimal.String(),
		MargenPorAnimal:     r.MargenPorAnimal.String(),
		MargenTotal:         r.MargenTotal.String(),
		MargenPorPlazaDia:   r.MargenPorPlazaDia.String(),
		RentabilidadPct:     r.RentabilidadPct.String(),
		MortalidadPct:       r.MortalidadPct.String(),
		Viable:              r.Viable,
	}
}

// PreciosMercadoRef captures the market reference prices in effect when a
// computation was saved. Empty string means the price was not available.
type PreciosMercadoRef struct {
	Cebado   string `bson:"cebado,omitempty" json:"cebado,omitempty"`
	Lechon20 string `bson:"lechon20,omitempty" json:"lechon20,omitempty"`
	Lechon7  string `bson:"lechon7,omitempty" json:"lechon7,omitempty"`
	Pienso   string `bson:"pienso,omitempty" json:"pienso,omitempty"`
}

// HistorialCalculo is one persisted three-scenario computation. Records are
// written once and never updated afterwards; analytics only reads them.
type HistorialCalculo struct {
	ID                     string                          `bson:"_id,omitempty" json:"id"`
	UserID                 string                          `bson:"userId,omitempty" json:"userId,omitempty"`
	LoteID                 string                          `bson:"loteId,omitempty" json:"loteId,omitempty"`
	CodigoLote             string                          `bson:"codigoLote,omitempty" json:"codigoLote,omitempty"`
	NumAnimales            int                             `bson:"numAnimales" json:"numAnimales"`
	UsaCostesEstimados     bool                            `bson:"usaCostesEstimados" json:"usaCostesEstimados"`
	Escenarios             map[Escenario]EscenarioSnapshot `bson:"escenarios" json:"escenarios"`
	EscenarioRecomendado   Escenario                       `bson:"escenarioRecomendado,omitempty" json:"escenarioRecomendado,omitempty"`
	ConfianzaRecomendacion string                          `bson:"confianzaRecomendacion,omitempty" json:"confianzaRecomendacion,omitempty"`
	PreciosMercado         PreciosMercadoRef               `bson:"preciosMercado" json:"preciosMercado"`
	Notas                  string                          `bson:"notas,omitempty" json:"notas,omitempty"`
	CreatedAt              time.Time                       `bson:"createdAt" json:"createdAt"`
}

// MargenTotalDe parses the stored total margin of one scenario. The second
// return value is false when the scenario group is absent or empty.
func (h HistorialCalculo) MargenTotalDe(esc Escenario) (decimal.Decimal, bool) {
	snap, ok := h.Escenarios[esc]
	if !ok || snap.MargenTotal == "" {
		return decimal.Decimal{}, false
	}
	v, err := decimal.NewFromString(snap.MargenTotal)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return v, true
}
