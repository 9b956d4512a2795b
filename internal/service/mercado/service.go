package mercado

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// ErrProductoNoValido is returned when a request names an unknown market product.
var ErrProductoNoValido = errors.New("producto de mercado no válido")

// ErrHorizonteNoValido is returned when the forecast horizon falls outside 1-26 weeks.
var ErrHorizonteNoValido = errors.New("horizonte de estimación fuera de rango (1-26 semanas)")

// FeedClient is the external market feed. Implemented by pkg/clients/mercado.
type FeedClient interface {
	PreciosActuales(ctx context.Context) (*models.PreciosMercado, error)
	Noticias(ctx context.Context) ([]models.Noticia, error)
}

// Repository is the slice of the record store the market module needs.
type Repository interface {
	GetHistoricoPrecios(ctx context.Context, producto models.ProductoMercado, desde time.Time) ([]models.PuntoPrecio, error)
	SavePuntosPrecio(ctx context.Context, puntos []models.PuntoPrecio) error
}

// Service serves market quotes, price history, forecasts and sector news.
// Every lookup degrades to the seeded reference series when the feed or the
// store cannot answer, so the calculator never runs without prices.
type Service struct {
	feed   FeedClient
	repo   Repository
	logger *zap.Logger
}

// NewService wires a new market service. feed may be nil when no external
// feed is configured.
func NewService(feed FeedClient, repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{feed: feed, repo: repo, logger: logger}
}

// PreciosActuales returns the live quote sheet, falling back to the reference
// quotes when the feed is absent or failing.
func (s *Service) PreciosActuales(ctx context.Context) (*models.PreciosMercado, error) {
	if s.feed != nil {
		precios, err := s.feed.PreciosActuales(ctx)
		if err == nil {
			return precios, nil
		}
		s.logger.Warn("market feed unavailable, serving reference prices", zap.Error(err))
	}
	return preciosReferencia(time.Now()), nil
}

// Historico returns the stored price series for one product over the last
// meses months (default 6, capped at 24), oldest first. An empty store falls
// back to the seeded reference series.
func (s *Service) Historico(ctx context.Context, producto models.ProductoMercado, meses int) ([]models.PuntoPrecio, error) {
	if !producto.Valido() {
		return nil, fmt.Errorf("%w: %q", ErrProductoNoValido, producto)
	}
	if meses <= 0 {
		meses = 6
	}
	if meses > 24 {
		meses = 24
	}

	ahora := time.Now().UTC()
	desde := ahora.AddDate(0, -meses, 0)

	serie, err := s.repo.GetHistoricoPrecios(ctx, producto, desde)
	if err != nil {
		return nil, fmt.Errorf("load price history: %w", err)
	}
	if len(serie) > 0 {
		return serie, nil
	}

	referencia := serieReferencia(producto, ahora)
	recortada := referencia[:0:0]
	for _, punto := range referencia {
		if !punto.Fecha.Before(desde) {
			recortada = append(recortada, punto)
		}
	}
	return recortada, nil
}

// Estimar projects one product's price semanas weeks ahead from its history.
func (s *Service) Estimar(ctx context.Context, producto models.ProductoMercado, semanas int) (EstimacionPrecio, error) {
	if !producto.Valido() {
		return EstimacionPrecio{}, fmt.Errorf("%w: %q", ErrProductoNoValido, producto)
	}
	if semanas < 1 || semanas > 26 {
		return EstimacionPrecio{}, ErrHorizonteNoValido
	}

	serie, err := s.Historico(ctx, producto, 6)
	if err != nil {
		return EstimacionPrecio{}, err
	}
	return EstimarPrecio(producto, serie, semanas)
}

// Noticias returns the latest sector news, falling back to the seeded items.
func (s *Service) Noticias(ctx context.Context) ([]models.Noticia, error) {
	if s.feed != nil {
		noticias, err := s.feed.Noticias(ctx)
		if err == nil && len(noticias) > 0 {
			return noticias, nil
		}
		if err != nil {
			s.logger.Warn("market feed unavailable, serving reference news", zap.Error(err))
		}
	}
	return noticiasReferencia(time.Now()), nil
}

// RefrescarPrecios pulls the current quote sheet from the feed and appends
// one point per product to the stored history. Run weekly by the scheduler.
func (s *Service) RefrescarPrecios(ctx context.Context) (*models.PreciosMercado, error) {
	if s.feed == nil {
		return nil, errors.New("no market feed configured")
	}
	precios, err := s.feed.PreciosActuales(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch market prices: %w", err)
	}

	fecha := precios.Fecha
	if fecha.IsZero() {
		fecha = time.Now().UTC()
	}
	puntos := []models.PuntoPrecio{
		{Producto: models.ProductoCebado, Fecha: fecha, Precio: precioString(precios.Cebado), Fuente: precios.Fuente},
		{Producto: models.ProductoLechon20, Fecha: fecha, Precio: precioString(precios.Lechon20), Fuente: precios.Fuente},
		{Producto: models.ProductoLechon7, Fecha: fecha, Precio: precioString(precios.Lechon7), Fuente: precios.Fuente},
		{Producto: models.ProductoPienso, Fecha: fecha, Precio: precioString(precios.Pienso), Fuente: precios.Fuente},
	}
	if err := s.repo.SavePuntosPrecio(ctx, puntos); err != nil {
		return nil, fmt.Errorf("persist price snapshot: %w", err)
	}

	s.logger.Info("market prices refreshed",
		zap.Time("fecha", fecha),
		zap.Float64("cebado", precios.Cebado),
		zap.Float64("lechon20", precios.Lechon20),
		zap.Float64("lechon7", precios.Lechon7),
		zap.Float64("pienso", precios.Pienso))
	return precios, nil
}

func precioString(v float64) string {
	return decimal.NewFromFloat(v).Round(4).String()
}

func parsePrecio(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}
