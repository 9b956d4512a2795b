package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/aferrandiz/ventipro/internal/config"
	"github.com/aferrandiz/ventipro/internal/repository/mongodb"
	"github.com/aferrandiz/ventipro/internal/repository/sheets"
	"github.com/aferrandiz/ventipro/internal/scheduler"
	"github.com/aferrandiz/ventipro/internal/server/handlers"
	"github.com/aferrandiz/ventipro/internal/server/router"
	analisissvc "github.com/aferrandiz/ventipro/internal/service/analisis"
	calculadorasvc "github.com/aferrandiz/ventipro/internal/service/calculadora"
	crmsvc "github.com/aferrandiz/ventipro/internal/service/crm"
	granjasvc "github.com/aferrandiz/ventipro/internal/service/granja"
	mercadosvc "github.com/aferrandiz/ventipro/internal/service/mercado"
	parametrossvc "github.com/aferrandiz/ventipro/internal/service/parametros"
	mercadoclient "github.com/aferrandiz/ventipro/pkg/clients/mercado"
	"github.com/aferrandiz/ventipro/pkg/clients/notify"
	"github.com/aferrandiz/ventipro/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var leadSource sheets.LeadSource
	if cfg.SheetsEnabled() {
		leadSource, err = sheets.NewGoogleSheetLeadSource(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets lead source", zap.Error(err))
		}
		baseLogger.Info("google sheets lead import enabled")
	} else {
		baseLogger.Warn("google sheets credentials missing, lead import disabled")
	}

	notifier := notify.NewNotifier(cfg.Notify)
	feedClient := mercadoclient.NewClient(cfg.Mercado)

	calculadoraSvc := calculadorasvc.NewService(mongoRepo, baseLogger.Named("svc.calculadora"))
	analisisSvc := analisissvc.NewService(mongoRepo, baseLogger.Named("svc.analisis"))
	mercadoSvc := mercadosvc.NewService(feedClient, mongoRepo, baseLogger.Named("svc.mercado"))
	granjaSvc := granjasvc.NewService(mongoRepo, baseLogger.Named("svc.granja"))
	crmSvc := crmsvc.NewService(mongoRepo, leadSource, notifier, baseLogger.Named("svc.crm"))
	parametrosSvc := parametrossvc.NewService(mongoRepo, baseLogger.Named("svc.parametros"))

	engine := router.New(router.Handlers{
		Calculadora: handlers.NewCalculadoraHandler(calculadoraSvc, baseLogger.Named("handlers.calculadora")),
		Analisis:    handlers.NewAnalisisHandler(analisisSvc, baseLogger.Named("handlers.analisis")),
		Mercado:     handlers.NewMercadoHandler(mercadoSvc, baseLogger.Named("handlers.mercado")),
		Granja:      handlers.NewGranjaHandler(granjaSvc, baseLogger.Named("handlers.granja")),
		CRM:         handlers.NewCRMHandler(crmSvc, baseLogger.Named("handlers.crm")),
		Parametros:  handlers.NewParametrosHandler(parametrosSvc, baseLogger.Named("handlers.parametros")),
	}, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Scheduler, mercadoSvc, notifier, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
