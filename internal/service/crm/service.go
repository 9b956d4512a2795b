// Package crm manages customers, lead imports and commercial offers.
package crm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aferrandiz/ventipro/internal/domain/models"
	"github.com/aferrandiz/ventipro/pkg/clients/notify"
)

// ErrNoEncontrado is returned when a referenced customer or offer does not exist.
var ErrNoEncontrado = errors.New("registro no encontrado")

// ErrImportacionDeshabilitada is returned when the sheet import endpoint is
// called with no lead source configured.
var ErrImportacionDeshabilitada = errors.New("importación de leads no configurada")

// Repository is the slice of the record store the CRM module needs.
type Repository interface {
	CreateCliente(ctx context.Context, cliente models.Cliente) (models.Cliente, error)
	GetClientes(ctx context.Context, filtros models.ClientesFiltros) ([]models.Cliente, error)
	GetClientePorID(ctx context.Context, id string) (*models.Cliente, error)
	UpdateCliente(ctx context.Context, cliente models.Cliente) error
	DeleteCliente(ctx context.Context, id string) error

	CreateOferta(ctx context.Context, oferta models.Oferta) (models.Oferta, error)
	GetOfertas(ctx context.Context, clienteID, loteID string) ([]models.Oferta, error)
	GetOfertaPorID(ctx context.Context, id string) (*models.Oferta, error)
	UpdateOferta(ctx context.Context, oferta models.Oferta) error

	LogActividad(ctx context.Context, entrada models.ActividadLog) error
}

// LeadSource lists externally maintained candidate customers.
type LeadSource interface {
	ReadLeads(ctx context.Context) ([]models.Cliente, error)
}

// Service implements the CRM operations. leads may be nil when no external
// lead sheet is configured.
type Service struct {
	repo     Repository
	leads    LeadSource
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewService wires a new CRM service instance.
func NewService(repo Repository, leads LeadSource, notifier notify.Notifier, logger *zap.Logger) *Service {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, leads: leads, notifier: notifier, logger: logger}
}

// CrearCliente validates and persists a new lead, notifying the owner.
func (s *Service) CrearCliente(ctx context.Context, cliente models.Cliente) (models.Cliente, error) {
	if cliente.Nombre == "" {
		return models.Cliente{}, errors.New("el cliente necesita un nombre")
	}
	if cliente.Estado == "" {
		cliente.Estado = models.EstadoClienteNuevo
	}
	if cliente.Prioridad == "" {
		cliente.Prioridad = models.PrioridadMedia
	}
	if cliente.TipoCliente == "" {
		cliente.TipoCliente = models.TipoClienteOtro
	}

	creado, err := s.repo.CreateCliente(ctx, cliente)
	if err != nil {
		return models.Cliente{}, err
	}

	s.logActividad(ctx, "cliente_creado", fmt.Sprintf("Cliente creado: %s (%s)", creado.Nombre, creado.TipoCliente))
	s.notificar(ctx, "Nuevo cliente", fmt.Sprintf("Se ha dado de alta el cliente %s (%s).", creado.Nombre, creado.TipoCliente))
	return creado, nil
}

// Clientes lists leads matching the filters.
func (s *Service) Clientes(ctx context.Context, filtros models.ClientesFiltros) ([]models.Cliente, error) {
	return s.repo.GetClientes(ctx, filtros)
}

// Cliente returns one lead.
func (s *Service) Cliente(ctx context.Context, id string) (*models.Cliente, error) {
	cliente, err := s.repo.GetClientePorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, ErrNoEncontrado
	}
	return cliente, nil
}

// ActualizarCliente overwrites one lead.
func (s *Service) ActualizarCliente(ctx context.Context, cliente models.Cliente) error {
	if cliente.ID == "" {
		return errors.New("falta el id del cliente")
	}
	if err := s.repo.UpdateCliente(ctx, cliente); err != nil {
		return err
	}
	s.logActividad(ctx, "cliente_actualizado", fmt.Sprintf("Cliente actualizado: %s (estado %s)", cliente.Nombre, cliente.Estado))
	return nil
}

// EliminarCliente removes one lead.
func (s *Service) EliminarCliente(ctx context.Context, id string) error {
	if err := s.repo.DeleteCliente(ctx, id); err != nil {
		return err
	}
	s.logActividad(ctx, "cliente_eliminado", fmt.Sprintf("Cliente eliminado: %s", id))
	return nil
}

// Stats summarizes the CRM pipeline.
func (s *Service) Stats(ctx context.Context) (models.ClientesStats, error) {
	clientes, err := s.repo.GetClientes(ctx, models.ClientesFiltros{})
	if err != nil {
		return models.ClientesStats{}, err
	}
	return models.CalcularClientesStats(clientes), nil
}

// ResultadoImportacion reports how a lead import went.
type ResultadoImportacion struct {
	Importados int `json:"importados"`
	Omitidos   int `json:"omitidos"`
}

// ImportarLeads pulls leads from the external sheet and inserts the ones not
// already present.
func (s *Service) ImportarLeads(ctx context.Context) (ResultadoImportacion, error) {
	if s.leads == nil {
		return ResultadoImportacion{}, ErrImportacionDeshabilitada
	}

	nuevos, err := s.leads.ReadLeads(ctx)
	if err != nil {
		return ResultadoImportacion{}, fmt.Errorf("read leads: %w", err)
	}

	resultado, err := s.insertarNuevos(ctx, nuevos)
	if err != nil {
		return resultado, err
	}

	s.logActividad(ctx, "leads_importados", fmt.Sprintf("Importación de leads: %d nuevos, %d omitidos", resultado.Importados, resultado.Omitidos))
	if resultado.Importados > 0 {
		s.notificar(ctx, "Leads importados", fmt.Sprintf("Se han importado %d leads nuevos desde la hoja de cálculo.", resultado.Importados))
	}
	return resultado, nil
}

// ImportarClientes bulk-inserts pre-parsed customer rows, skipping the ones
// already present. Rows without a name are skipped too.
func (s *Service) ImportarClientes(ctx context.Context, clientes []models.Cliente) (ResultadoImportacion, error) {
	filas := make([]models.Cliente, 0, len(clientes))
	omitidosSinNombre := 0
	for _, cliente := range clientes {
		if strings.TrimSpace(cliente.Nombre) == "" {
			omitidosSinNombre++
			continue
		}
		if cliente.Estado == "" {
			cliente.Estado = models.EstadoClienteNuevo
		}
		if cliente.Prioridad == "" {
			cliente.Prioridad = models.PrioridadMedia
		}
		if cliente.TipoCliente == "" {
			cliente.TipoCliente = models.TipoClienteOtro
		}
		if cliente.OrigenCliente == "" {
			cliente.OrigenCliente = "importacion"
		}
		filas = append(filas, cliente)
	}

	resultado, err := s.insertarNuevos(ctx, filas)
	resultado.Omitidos += omitidosSinNombre
	if err != nil {
		return resultado, err
	}

	s.logActividad(ctx, "clientes_importados", fmt.Sprintf("Importación de clientes: %d nuevos, %d omitidos", resultado.Importados, resultado.Omitidos))
	return resultado, nil
}

// insertarNuevos inserts the given rows unless an existing customer already
// matches, by email first and by name when the row has no email.
func (s *Service) insertarNuevos(ctx context.Context, nuevos []models.Cliente) (ResultadoImportacion, error) {
	existentes, err := s.repo.GetClientes(ctx, models.ClientesFiltros{})
	if err != nil {
		return ResultadoImportacion{}, err
	}
	porEmail := make(map[string]bool, len(existentes))
	porNombre := make(map[string]bool, len(existentes))
	for _, c := range existentes {
		if c.Email != "" {
			porEmail[strings.ToLower(c.Email)] = true
		}
		porNombre[strings.ToLower(c.Nombre)] = true
	}

	var resultado ResultadoImportacion
	for _, cliente := range nuevos {
		if cliente.Email != "" && porEmail[strings.ToLower(cliente.Email)] {
			resultado.Omitidos++
			continue
		}
		if cliente.Email == "" && porNombre[strings.ToLower(cliente.Nombre)] {
			resultado.Omitidos++
			continue
		}
		if _, err := s.repo.CreateCliente(ctx, cliente); err != nil {
			return resultado, fmt.Errorf("insert cliente %q: %w", cliente.Nombre, err)
		}
		if cliente.Email != "" {
			porEmail[strings.ToLower(cliente.Email)] = true
		}
		porNombre[strings.ToLower(cliente.Nombre)] = true
		resultado.Importados++
	}
	return resultado, nil
}

// CrearOferta validates and persists a new offer. The customer must exist.
// Offers get a readable code and derive the total from volume × weight × price
// when the caller leaves it empty.
func (s *Service) CrearOferta(ctx context.Context, oferta models.Oferta) (models.Oferta, error) {
	if oferta.ClienteID == "" {
		return models.Oferta{}, errors.New("la oferta necesita un cliente")
	}
	if !oferta.Escenario.Valido() {
		return models.Oferta{}, fmt.Errorf("escenario no válido: %q", oferta.Escenario)
	}
	if oferta.NumAnimales < 1 {
		return models.Oferta{}, errors.New("la oferta necesita al menos un animal")
	}
	cliente, err := s.repo.GetClientePorID(ctx, oferta.ClienteID)
	if err != nil {
		return models.Oferta{}, err
	}
	if cliente == nil {
		return models.Oferta{}, fmt.Errorf("%w: cliente %s", ErrNoEncontrado, oferta.ClienteID)
	}

	if oferta.Codigo == "" {
		oferta.Codigo = nuevoCodigoOferta(time.Now())
	}
	if oferta.Estado == "" {
		oferta.Estado = models.EstadoOfertaBorrador
	}
	if oferta.PrecioTotal == "" {
		if total, ok := precioTotal(oferta); ok {
			oferta.PrecioTotal = total
		}
	}

	creada, err := s.repo.CreateOferta(ctx, oferta)
	if err != nil {
		return models.Oferta{}, err
	}

	s.logActividad(ctx, "oferta_creada", fmt.Sprintf("Oferta %s creada para %s: %d animales (%s)", creada.Codigo, cliente.Nombre, creada.NumAnimales, creada.Escenario))
	return creada, nil
}

// Ofertas lists offers, optionally narrowed by customer and/or lot.
func (s *Service) Ofertas(ctx context.Context, clienteID, loteID string) ([]models.Oferta, error) {
	return s.repo.GetOfertas(ctx, clienteID, loteID)
}

// Oferta returns one offer.
func (s *Service) Oferta(ctx context.Context, id string) (*models.Oferta, error) {
	oferta, err := s.repo.GetOfertaPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if oferta == nil {
		return nil, ErrNoEncontrado
	}
	return oferta, nil
}

// ActualizarOferta overwrites one offer.
func (s *Service) ActualizarOferta(ctx context.Context, oferta models.Oferta) error {
	if oferta.ID == "" {
		return errors.New("falta el id de la oferta")
	}
	if err := s.repo.UpdateOferta(ctx, oferta); err != nil {
		return err
	}
	s.logActividad(ctx, "oferta_actualizada", fmt.Sprintf("Oferta %s actualizada (estado %s)", oferta.Codigo, oferta.Estado))
	return nil
}

// EnviarOferta marks an offer as sent and notifies the owner. Only draft
// offers can be sent.
func (s *Service) EnviarOferta(ctx context.Context, id string) (*models.Oferta, error) {
	oferta, err := s.Oferta(ctx, id)
	if err != nil {
		return nil, err
	}
	if oferta.Estado != models.EstadoOfertaBorrador {
		return nil, fmt.Errorf("la oferta %s no está en borrador (estado %s)", oferta.Codigo, oferta.Estado)
	}

	ahora := time.Now().UTC()
	oferta.Estado = models.EstadoOfertaEnviada
	oferta.EmailEnviado = true
	oferta.FechaEnvio = &ahora
	if err := s.repo.UpdateOferta(ctx, *oferta); err != nil {
		return nil, err
	}

	s.logActividad(ctx, "oferta_enviada", fmt.Sprintf("Oferta %s enviada", oferta.Codigo))
	s.notificar(ctx, "Oferta enviada", fmt.Sprintf("La oferta %s (%d animales, %s) se ha marcado como enviada.", oferta.Codigo, oferta.NumAnimales, oferta.Escenario))
	return oferta, nil
}

// nuevoCodigoOferta builds a readable offer code: VP-YYMM-XXXXXX.
func nuevoCodigoOferta(ahora time.Time) string {
	sufijo := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("VP-%s-%s", ahora.Format("0601"), sufijo)
}

func precioTotal(oferta models.Oferta) (string, bool) {
	peso, err := decimal.NewFromString(oferta.PesoEstimado)
	if err != nil {
		return "", false
	}
	precio, err := decimal.NewFromString(oferta.PrecioKg)
	if err != nil {
		return "", false
	}
	total := precio.Mul(peso).Mul(decimal.NewFromInt(int64(oferta.NumAnimales))).Round(2)
	return total.String(), true
}

func (s *Service) logActividad(ctx context.Context, tipo, descripcion string) {
	if err := s.repo.LogActividad(ctx, models.ActividadLog{Tipo: tipo, Descripcion: descripcion, Modulo: "crm"}); err != nil {
		s.logger.Warn("failed to log activity", zap.Error(err))
	}
}

func (s *Service) notificar(ctx context.Context, titulo, contenido string) {
	if err := s.notifier.Notificar(ctx, notify.Notificacion{Titulo: titulo, Contenido: contenido}); err != nil {
		s.logger.Warn("failed to send notification", zap.Error(err))
	}
}
