package mercado

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// ErrHistoricoInsuficiente is returned when a price series is too short to
// regress. The forecaster refuses to guess from fewer than two points.
var ErrHistoricoInsuficiente = errors.New("histórico de precios insuficiente para estimar")

// ventanaEstimacion is how many trailing observations feed the estimate.
const ventanaEstimacion = 8

// EstimacionPrecio is one forward price projection. MediaPonderada and
// Tendencia are the two ingredients of the blended estimate, exposed so each
// can be inspected on its own.
type EstimacionPrecio struct {
	Producto        models.ProductoMercado `json:"producto"`
	SemanasAdelante int                    `json:"semanasAdelante"`
	PrecioEstimado  float64                `json:"precioEstimado"`
	MediaPonderada  float64                `json:"mediaPonderada"`
	Tendencia       float64                `json:"tendencia"`
	Confianza       float64                `json:"confianza"`
}

// EstimarPrecio projects a price semanas weeks forward from a chronologically
// ordered series. The baseline is a rank-weighted moving average over the
// trailing window; the trend is the OLS slope over the same window; the
// estimate blends them as baseline + slope × horizon, floored at zero.
func EstimarPrecio(producto models.ProductoMercado, serie []models.PuntoPrecio, semanas int) (EstimacionPrecio, error) {
	precios := make([]float64, 0, len(serie))
	for _, punto := range serie {
		valor, err := decimal.NewFromString(punto.Precio)
		if err != nil {
			continue
		}
		f, _ := valor.Float64()
		precios = append(precios, f)
	}
	if len(precios) < 2 {
		return EstimacionPrecio{}, ErrHistoricoInsuficiente
	}
	if len(precios) > ventanaEstimacion {
		precios = precios[len(precios)-ventanaEstimacion:]
	}

	media := mediaPonderada(precios)
	pendiente, err := pendienteOLS(precios)
	if err != nil {
		return EstimacionPrecio{}, fmt.Errorf("ajustar tendencia: %w", err)
	}

	estimado := media + pendiente*float64(semanas)
	if estimado < 0 {
		estimado = 0
	}

	precioEstimado, _ := stats.Round(estimado, 4)
	mediaRedondeada, _ := stats.Round(media, 4)
	tendencia, _ := stats.Round(pendiente, 4)

	return EstimacionPrecio{
		Producto:        producto,
		SemanasAdelante: semanas,
		PrecioEstimado:  precioEstimado,
		MediaPonderada:  mediaRedondeada,
		Tendencia:       tendencia,
		Confianza:       Confianza(semanas),
	}, nil
}

// mediaPonderada weights observation i (1-indexed oldest to newest) by its
// rank, biasing the mean toward recent quotes without discarding old ones.
func mediaPonderada(precios []float64) float64 {
	var sumaPonderada, sumaPesos float64
	for i, precio := range precios {
		peso := float64(i + 1)
		sumaPonderada += precio * peso
		sumaPesos += peso
	}
	return sumaPonderada / sumaPesos
}

// pendienteOLS fits price against the unit-spaced sequence index and returns
// the per-week slope.
func pendienteOLS(precios []float64) (float64, error) {
	coords := make(stats.Series, len(precios))
	for i, precio := range precios {
		coords[i] = stats.Coordinate{X: float64(i), Y: precio}
	}
	ajuste, err := stats.LinearRegression(coords)
	if err != nil {
		return 0, err
	}
	// Fitted values over unit-spaced x, so the difference of any two
	// consecutive points is the slope itself.
	return ajuste[1].Y - ajuste[0].Y, nil
}

// Confianza decays linearly with the forecast horizon, floored at 0.10 and
// capped at 0.95.
func Confianza(semanas int) float64 {
	c := decimal.RequireFromString("0.85").
		Sub(decimal.NewFromInt(int64(semanas)).Mul(decimal.RequireFromString("0.05")))
	if c.LessThan(decimal.RequireFromString("0.10")) {
		c = decimal.RequireFromString("0.10")
	}
	if c.GreaterThan(decimal.RequireFromString("0.95")) {
		c = decimal.RequireFromString("0.95")
	}
	f, _ := c.Float64()
	return f
}
