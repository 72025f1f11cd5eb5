package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoapi "github.com/trezcool/labhub/apps/api/echo"
	"github.com/trezcool/labhub/core"
	"github.com/trezcool/labhub/core/catalog"
	"github.com/trezcool/labhub/core/report"
	"github.com/trezcool/labhub/core/viva"
	emailsvc "github.com/trezcool/labhub/services/email"
	llmsvc "github.com/trezcool/labhub/services/llm"
	logsvc "github.com/trezcool/labhub/services/logger"
	"github.com/trezcool/labhub/storage/filesystem"
	inmemdb "github.com/trezcool/labhub/storage/inmem"
)

const (
	shutdownTimeout = 10 * time.Second
	reloadTimeout   = 30 * time.Second
)

func main() {
	// =========================================================================
	// Set up Dependencies

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf, err := core.LoadConfig()
	if err != nil {
		std.Fatalf("%+v", err)
	}

	// set up loggers
	var logger core.Logger
	if conf.Debug || conf.TestMode {
		logger = logsvc.NewConsoleLogger(std, "debug")
	} else {
		rollbarLogger := logsvc.NewRollbarLogger(std, conf)
		defer rollbarLogger.Close()
		logger = rollbarLogger
	}

	// set up DB
	db, err := inmemdb.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, std, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	catalogStore := inmemdb.NewCatalogStore(db)
	catalogSvc := catalog.NewService(
		filesystem.NewSource(conf.Catalog.DataDir),
		catalogStore,
		catalog.Options{DefaultYear: conf.Catalog.DefaultYear, DefaultSemester: conf.Catalog.DefaultSemester},
		logger,
	)

	llm, err := llmsvc.NewProvider(conf.LLM)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up llm provider: %v", err), err)
	}
	vivaSvc := viva.NewService(llm)
	reportSvc := report.NewService(conf, mailSvc)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	_, err = catalogSvc.Reload(ctx)
	cancel()
	if err != nil {
		if core.IsConfigError(err) {
			logger.Fatal(fmt.Sprintf("invalid catalog data in %q: %v", conf.Catalog.DataDir, err), err)
		}
		logger.Fatal(fmt.Sprintf("building catalog: %v", err), err)
	}

	validate, translator := core.NewValidator()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			Catalogs:   catalogSvc,
			VivaGen:    vivaSvc,
			Reporter:   reportSvc,
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// SIGHUP rebuilds the catalog; the current one is kept on failure
	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	defer signal.Stop(reload)

	// =========================================================================
	// Shutdown

	for {
		select {
		case <-reload:
			logger.Info("SIGHUP: reloading catalog...")
			ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
			if _, err := catalogSvc.Reload(ctx); err != nil {
				logger.Error(fmt.Sprintf("reloading catalog: %v", err), err)
			} else {
				version, updatedAt := catalogStore.Version()
				logger.Info(fmt.Sprintf("catalog v%d published at %s", version, updatedAt.Format(time.RFC3339)))
			}
			cancel()

		case err = <-server.Errors():
			logger.Fatal(fmt.Sprintf("server error: %v", err), err)

		case sig := <-server.ShutdownSignal():
			logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

			// give outstanding requests a deadline for completion
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			// asking listener to shutdown and shed load
			if err = server.Shutdown(ctx); err != nil {
				logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

				if err = server.Close(); err != nil {
					logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
				}
			}
			return
		}
	}
}
