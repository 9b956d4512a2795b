// Package mercado implements the HTTP client for the external market feed.
package mercado

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/aferrandiz/ventipro/internal/config"
	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// Client exposes the market feed operations the services consume.
type Client interface {
	PreciosActuales(ctx context.Context) (*models.PreciosMercado, error)
	Noticias(ctx context.Context) ([]models.Noticia, error)
}

// APIClient talks to the lonja feed over its JSON API.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient creates a feed client from configuration.
func NewClient(cfg config.MercadoConfig) *APIClient {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.FeedBaseURL, "/")).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("X-Api-Key", cfg.APIKey)
	}
	return &APIClient{httpClient: client}
}

type preciosResponse struct {
	Cebado   float64 `json:"cebado"`
	Lechon20 float64 `json:"lechon20"`
	Lechon7  float64 `json:"lechon7"`
	Pienso   float64 `json:"pienso"`
	Fecha    string  `json:"fecha"`
	Fuente   string  `json:"fuente"`
}

type noticiaResponse struct {
	Titulo  string `json:"titulo"`
	Fuente  string `json:"fuente"`
	Fecha   string `json:"fecha"`
	Resumen string `json:"resumen"`
	URL     string `json:"url"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PreciosActuales fetches the current porcine quote sheet.
func (c *APIClient) PreciosActuales(ctx context.Context) (*models.PreciosMercado, error) {
	var result preciosResponse
	var apiErr apiError

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&apiErr).
		Get("/v1/precios/porcino")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market prices: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("market feed returned %d: %s", resp.StatusCode(), apiErr.Message)
	}

	fecha, err := time.Parse("2006-01-02", result.Fecha)
	if err != nil {
		fecha = time.Now().UTC()
	}
	fuente := result.Fuente
	if fuente == "" {
		fuente = "lonja"
	}
	return &models.PreciosMercado{
		Cebado:   result.Cebado,
		Lechon20: result.Lechon20,
		Lechon7:  result.Lechon7,
		Pienso:   result.Pienso,
		Fecha:    fecha,
		Fuente:   fuente,
	}, nil
}

// Noticias fetches the latest porcine sector news items.
func (c *APIClient) Noticias(ctx context.Context) ([]models.Noticia, error) {
	var result []noticiaResponse
	var apiErr apiError

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&apiErr).
		Get("/v1/noticias/porcino")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market news: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("market feed returned %d: %s", resp.StatusCode(), apiErr.Message)
	}

	noticias := make([]models.Noticia, 0, len(result))
	for _, item := range result {
		fecha, err := time.Parse("2006-01-02", item.Fecha)
		if err != nil {
			fecha = time.Now().UTC()
		}
		noticias = append(noticias, models.Noticia{
			Titulo:  item.Titulo,
			Fuente:  item.Fuente,
			Fecha:   fecha,
			Resumen: item.Resumen,
			URL:     item.URL,
		})
	}
	return noticias, nil
}
