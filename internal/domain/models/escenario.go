package models

import "github.com/shopspring/decimal"

// Escenario identifies one of the three fixed commercial exit points for a lot.
type Escenario string

const (
	// EscenarioLechon is the early-weaning sale at 5-7 kg.
	EscenarioLechon Escenario = "5-7kg"
	// EscenarioTransicion is the transition sale at 20-21 kg.
	EscenarioTransicion Escenario = "20-21kg"
	// EscenarioCebo is the finished-fattening sale at 100-110 kg.
	EscenarioCebo Escenario = "cebo"
)

// EscenariosOrdenados lists the scenarios in their canonical order. The order
// is load-bearing: it is the tie-break order of the recommendation engine.
var EscenariosOrdenados = []Escenario{EscenarioLechon, EscenarioTransicion, EscenarioCebo}

// Valido reports whether e is one of the three known scenarios.
func (e Escenario) Valido() bool {
	switch e {
	case EscenarioLechon, EscenarioTransicion, EscenarioCebo:
		return true
	}
	return false
}

// Nombre returns the human-readable commercial name of the scenario.
func (e Escenario) Nombre() string {
	switch e {
	case EscenarioLechon:
		return "Venta Lechón 5-7 kg"
	case EscenarioTransicion:
		return "Venta Transición 20-21 kg"
	case EscenarioCebo:
		return "Cebo Final 100-110 kg"
	}
	return string(e)
}

// EscenarioResult holds the full economics of one scenario for one herd size.
// It is derived from a parameter snapshot and never mutated after creation.
type EscenarioResult struct {
	Nombre              string          `json:"nombre"`
	Escenario           Escenario       `json:"escenario"`
	PesoVenta           decimal.Decimal `json:"pesoVenta"`
	PrecioKg            decimal.Decimal `json:"precioKg"`
	IngresosPorAnimal   decimal.Decimal `json:"ingresosPorAnimal"`
	IngresosTotales     decimal.Decimal `json:"ingresosTotales"`
	CostePienso         decimal.Decimal `json:"costePienso"`
	CosteSanidad        decimal.Decimal `json:"costeSanidad"`
	CosteFijosPorAnimal decimal.Decimal `json:"costeFijosPorAnimal"`
	CosteTotalPorAnimal decimal.Decimal `json:"costeTotalPorAnimal"`
	CostesTotales       decimal.Decimal `json:"costesTotales"`
	MortalidadPct       decimal.Decimal `json:"mortalidadPct"`
	AnimalesFinales     int64           `json:"animalesFinales"`
	MargenPorAnimal     decimal.Decimal `json:"margenPorAnimal"`
	MargenTotal         decimal.Decimal `json:"margenTotal"`
	DiasOcupacion       int             `json:"diasOcupacion"`
	MargenPorPlazaDia   decimal.Decimal `json:"margenPorPlazaDia"`
	RentabilidadPct     decimal.Decimal `json:"rentabilidadPct"`
	Viable              bool            `json:"viable"`
	RazonNoViable       string          `json:"razonNoViable,omitempty"`
}
