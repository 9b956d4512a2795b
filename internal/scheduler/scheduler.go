package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aferrandiz/ventipro/internal/config"
	"github.com/aferrandiz/ventipro/internal/service/mercado"
	"github.com/aferrandiz/ventipro/pkg/clients/notify"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron       *cron.Cron
	mercadoSvc *mercado.Service
	notifier   notify.Notifier
	cfg        config.SchedulerConfig
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance. The cron runs in the
// configured timezone so quotes land on the right local Monday.
func NewScheduler(cfg config.SchedulerConfig, mercadoSvc *mercado.Service, notifier notify.Notifier, logger *zap.Logger) (*Scheduler, error) {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		mercadoSvc: mercadoSvc,
		notifier:   notifier,
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("precios_cron", s.cfg.PreciosCron))

	if _, err := s.cron.AddFunc(s.cfg.PreciosCron, s.refrescarPrecios); err != nil {
		s.logger.Error("failed to schedule price refresh", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refrescarPrecios() {
	s.logger.Info("refreshing market prices")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	precios, err := s.mercadoSvc.RefrescarPrecios(ctx)
	if err != nil {
		s.logger.Error("failed to refresh market prices", zap.Error(err))
		return
	}

	resumen := fmt.Sprintf(
		"Cotizaciones de la semana: cebado %.3f €/kg, lechón 20 kg %.2f €, lechón 5-7 kg %.2f €/kg, pienso %.2f €/t.",
		precios.Cebado, precios.Lechon20, precios.Lechon7, precios.Pienso)

	if err := s.notifier.Notificar(ctx, notify.Notificacion{
		Titulo:    "Precios de mercado actualizados",
		Contenido: resumen,
	}); err != nil {
		s.logger.Warn("failed to send price summary", zap.Error(err))
	}
}
