package analisis

import (
	"time"

	"github.com/montanaflynn/stats"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// MargenDestacado points at the history record holding an extreme total margin.
type MargenDestacado struct {
	ID          string           `json:"id"`
	Margen      float64          `json:"margen"`
	Fecha       time.Time        `json:"fecha"`
	NumAnimales int              `json:"numAnimales"`
	Escenario   models.Escenario `json:"escenario,omitempty"`
}

// Stats summarizes a set of history records.
type Stats struct {
	TotalCalculos int                          `json:"totalCalculos"`
	MejorMargen   *MargenDestacado             `json:"mejorMargen"`
	PeorMargen    *MargenDestacado             `json:"peorMargen"`
	MediaMargen   map[models.Escenario]float64 `json:"mediaMargen"`
	UltimoCalculo *time.Time                   `json:"ultimoCalculo"`
}

// CalcularStats aggregates best/worst total margins and per-scenario means
// over the full record set. A record missing a scenario contributes zero to
// the best/worst scan but is excluded from that scenario's mean. Pure and
// deterministic; empty input degrades to zero counts and nil extremes.
func CalcularStats(historial []models.HistorialCalculo) Stats {
	resultado := Stats{
		TotalCalculos: len(historial),
		MediaMargen: map[models.Escenario]float64{
			models.EscenarioLechon:     0,
			models.EscenarioTransicion: 0,
			models.EscenarioCebo:       0,
		},
	}
	if len(historial) == 0 {
		return resultado
	}

	margenes := map[models.Escenario][]float64{}
	var mejor, peor *MargenDestacado
	var ultimo time.Time

	for _, calc := range historial {
		maxMargen, minMargen := 0.0, 0.0
		for i, esc := range models.EscenariosOrdenados {
			valor := 0.0
			if m, ok := calc.MargenTotalDe(esc); ok {
				valor, _ = m.Float64()
				margenes[esc] = append(margenes[esc], valor)
			}
			if i == 0 || valor > maxMargen {
				maxMargen = valor
			}
			if i == 0 || valor < minMargen {
				minMargen = valor
			}
		}

		if mejor == nil || maxMargen > mejor.Margen {
			mejor = &MargenDestacado{
				ID:          calc.ID,
				Margen:      maxMargen,
				Fecha:       calc.CreatedAt,
				NumAnimales: calc.NumAnimales,
				Escenario:   calc.EscenarioRecomendado,
			}
		}
		if peor == nil || minMargen < peor.Margen {
			peor = &MargenDestacado{
				ID:          calc.ID,
				Margen:      minMargen,
				Fecha:       calc.CreatedAt,
				NumAnimales: calc.NumAnimales,
				Escenario:   calc.EscenarioRecomendado,
			}
		}
		if calc.CreatedAt.After(ultimo) {
			ultimo = calc.CreatedAt
		}
	}

	for esc, valores := range margenes {
		if media, err := stats.Mean(valores); err == nil {
			redondeada, _ := stats.Round(media, 2)
			resultado.MediaMargen[esc] = redondeada
		}
	}

	resultado.MejorMargen = mejor
	resultado.PeorMargen = peor
	if !ultimo.IsZero() {
		resultado.UltimoCalculo = &ultimo
	}
	return resultado
}
