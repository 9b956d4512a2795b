package analisis

import (
	"errors"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// ErrMetricaNoValida is returned when an unknown evolution metric is requested.
var ErrMetricaNoValida = errors.New("métrica no válida")

// Metrica selects which scenario figure the evolution series plots.
type Metrica string

const (
	MetricaMargenTotal       Metrica = "margenTotal"
	MetricaMargenPorAnimal   Metrica = "margenPorAnimal"
	MetricaMargenPorPlazaDia Metrica = "margenPorPlazaDia"
	MetricaRentabilidadPct   Metrica = "rentabilidadPct"
	MetricaPrecioKg          Metrica = "precioKg"
)

// Valida reports whether m is a plottable metric.
func (m Metrica) Valida() bool {
	switch m {
	case MetricaMargenTotal, MetricaMargenPorAnimal, MetricaMargenPorPlazaDia, MetricaRentabilidadPct, MetricaPrecioKg:
		return true
	}
	return false
}

// PuntoEvolucion is one weekly bucket of the evolution series. Valores holds
// the per-scenario mean of the requested metric; nil means the scenario has
// no data in that week, which is distinct from a zero mean.
type PuntoEvolucion struct {
	Fecha    string                        `json:"fecha"`
	Valores  map[models.Escenario]*float64 `json:"valores"`
	Calculos int                           `json:"calculos"`
}

type cubo struct {
	valores  map[models.Escenario][]float64
	calculos int
}

// CalcularEvolucion groups records into weekly buckets keyed by the Monday
// starting each record's week and averages the requested metric per scenario.
// Buckets come out sorted ascending by week start. Pure and deterministic.
func CalcularEvolucion(historial []models.HistorialCalculo, metrica Metrica) ([]PuntoEvolucion, error) {
	if !metrica.Valida() {
		return nil, ErrMetricaNoValida
	}

	semanas := map[string]*cubo{}
	for _, calc := range historial {
		clave := lunesDeSemana(calc.CreatedAt).Format("2006-01-02")
		c, ok := semanas[clave]
		if !ok {
			c = &cubo{valores: map[models.Escenario][]float64{}}
			semanas[clave] = c
		}
		for _, esc := range models.EscenariosOrdenados {
			snap, ok := calc.Escenarios[esc]
			if !ok {
				continue
			}
			if valor, ok := valorMetrica(snap, metrica); ok {
				c.valores[esc] = append(c.valores[esc], valor)
			}
		}
		c.calculos++
	}

	claves := make([]string, 0, len(semanas))
	for clave := range semanas {
		claves = append(claves, clave)
	}
	sort.Strings(claves)

	serie := make([]PuntoEvolucion, 0, len(claves))
	for _, clave := range claves {
		c := semanas[clave]
		punto := PuntoEvolucion{Fecha: clave, Valores: map[models.Escenario]*float64{}, Calculos: c.calculos}
		for _, esc := range models.EscenariosOrdenados {
			valores := c.valores[esc]
			if len(valores) == 0 {
				punto.Valores[esc] = nil
				continue
			}
			media, err := stats.Mean(valores)
			if err != nil {
				punto.Valores[esc] = nil
				continue
			}
			redondeada, _ := stats.Round(media, 2)
			punto.Valores[esc] = &redondeada
		}
		serie = append(serie, punto)
	}
	return serie, nil
}

// lunesDeSemana returns midnight UTC of the Monday starting t's week.
// Sunday counts as day 7, so it maps to the Monday of the week just ended.
func lunesDeSemana(t time.Time) time.Time {
	t = t.UTC()
	dia := int(t.Weekday())
	if dia == 0 {
		dia = 7
	}
	lunes := t.AddDate(0, 0, 1-dia)
	return time.Date(lunes.Year(), lunes.Month(), lunes.Day(), 0, 0, 0, 0, time.UTC)
}

func valorMetrica(snap models.EscenarioSnapshot, metrica Metrica) (float64, bool) {
	var campo string
	switch metrica {
	case MetricaMargenTotal:
		campo = snap.MargenTotal
	case MetricaMargenPorAnimal:
		campo = snap.MargenPorAnimal
	case MetricaMargenPorPlazaDia:
		campo = snap.MargenPorPlazaDia
	case MetricaRentabilidadPct:
		campo = snap.RentabilidadPct
	case MetricaPrecioKg:
		campo = snap.PrecioKg
	}
	if campo == "" {
		return 0, false
	}
	valor, err := decimal.NewFromString(campo)
	if err != nil {
		return 0, false
	}
	f, _ := valor.Float64()
	return f, true
}
