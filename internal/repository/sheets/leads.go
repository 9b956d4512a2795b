// Package sheets reads CRM leads maintained in a Google Sheets spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/aferrandiz/ventipro/internal/config"
	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// leadsRange covers the lead sheet columns: nombre, empresa, email, telefono,
// web, tipo, ccaa, provincia, municipio, especialidad, volumen, notas.
const leadsRange = "Leads!A2:L"

// LeadSource lists candidate customers maintained outside the application.
type LeadSource interface {
	ReadLeads(ctx context.Context) ([]models.Cliente, error)
}

// GoogleSheetLeadSource implements LeadSource using the official Google
// Sheets API.
type GoogleSheetLeadSource struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetLeadSource builds a Google Sheets backed lead source.
func NewGoogleSheetLeadSource(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (LeadSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetLeadSource{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// ReadLeads fetches the lead sheet and maps each row to a Cliente. Rows
// without a name are skipped. Imported leads start at the "nuevo" stage with
// medium priority.
func (s *GoogleSheetLeadSource) ReadLeads(ctx context.Context) ([]models.Cliente, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, leadsRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", leadsRange, err)
	}

	leads := make([]models.Cliente, 0, len(resp.Values))
	for _, row := range resp.Values {
		nombre := cell(row, 0)
		if nombre == "" {
			continue
		}
		leads = append(leads, models.Cliente{
			Nombre:          nombre,
			Empresa:         cell(row, 1),
			Email:           cell(row, 2),
			Telefono:        cell(row, 3),
			Web:             cell(row, 4),
			TipoCliente:     tipoCliente(cell(row, 5)),
			Estado:          models.EstadoClienteNuevo,
			Prioridad:       models.PrioridadMedia,
			CCAA:            cell(row, 6),
			Provincia:       cell(row, 7),
			Municipio:       cell(row, 8),
			Especialidad:    cell(row, 9),
			VolumenHabitual: cell(row, 10),
			OrigenCliente:   "google_sheets",
			Notas:           cell(row, 11),
		})
	}

	s.logger.Debug("leads read from sheet", zap.Int("count", len(leads)))
	return leads, nil
}

func cell(row []interface{}, idx int) string {
	if idx >= len(row) {
		return ""
	}
	value, ok := row[idx].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func tipoCliente(raw string) models.TipoCliente {
	tipo := models.TipoCliente(strings.ToLower(raw))
	switch tipo {
	case models.TipoClienteComprador57, models.TipoClienteComprador2021, models.TipoClienteCompradorCebo,
		models.TipoClienteMatadero, models.TipoClienteIntermediario:
		return tipo
	}
	return models.TipoClienteOtro
}
