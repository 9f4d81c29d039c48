package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"orderdesk/cmd/orderdeskapi/config"
	"orderdesk/internal/deskapi"
	"orderdesk/internal/deskapi/data/database"
	"orderdesk/internal/deskapi/data/dbrepository"
	"orderdesk/internal/deskapi/data/memrepository"
	"orderdesk/internal/deskapi/service"
	"orderdesk/pkg/logging"
	"orderdesk/pkg/pgxstorage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewZapLogger(zapcore.DebugLevel)
	if err != nil {
		log.Fatal(err)
	}

	var (
		repository         service.Repository
		transactionManager service.TransactionManager
	)
	if cfg.DB.ConnectionString == "" {
		// no DATABASE_URI: run on the in-memory store
		repository = memrepository.New()
		transactionManager = memrepository.NewTransactionsManager()
	} else {
		dbFactory := database.NewPgxDatabaseFactory(cfg.DB)
		storage, err := pgxstorage.New(dbFactory)
		if err != nil {
			log.Fatal(err)
		}
		defer storage.Close()

		repository = dbrepository.New(storage, logger)
		transactionManager = pgxstorage.NewTransactionsManager(storage)
	}

	clientsService := service.NewClients(repository)
	productsService := service.NewProducts(repository)
	ordersService := service.NewOrders(repository, transactionManager)
	orderItemsService := service.NewOrderItems(repository, transactionManager)

	server := deskapi.NewServer(
		cfg.Server,
		clientsService,
		productsService,
		ordersService,
		orderItemsService,
		logger,
	)

	rootCtx, cancelCtx := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelCtx()

	if err := run(rootCtx, cfg, server, logger); err != nil {
		logger.ErrorCtx(rootCtx, "Server shutdown with error", zap.Error(err))
	} else {
		logger.InfoCtx(rootCtx, "Server shutdown gracefully")
	}
}

func run(rootCtx context.Context, cfg *config.Config, server *deskapi.Server, logger *logging.ZapLogger) error {
	g, ctx := errgroup.WithContext(rootCtx)

	context.AfterFunc(ctx, func() {
		ctx, cancelCtx := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelCtx()

		<-ctx.Done()
		log.Fatal("failed to gracefully shutdown the server")
	})

	g.Go(func() error {
		if err := server.Run(); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		defer logger.InfoCtx(ctx, "Shutting down server")
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("goroutine error occured: %w", err)
	}

	return nil
}
