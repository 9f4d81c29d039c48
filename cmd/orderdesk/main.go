package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"orderdesk/cmd/orderdesk/config"
	"orderdesk/internal/desk/frontend"
	"orderdesk/internal/desk/gateway"
	"orderdesk/internal/desk/viewmodel"
	"orderdesk/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewZapLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	api := gateway.NewAPIClient(cfg.Gateway)

	clients := viewmodel.NewClientsViewModel(gateway.NewClientsGateway(api), logger)
	products := viewmodel.NewProductsViewModel(gateway.NewProductsGateway(api), logger)
	orders := viewmodel.NewOrdersViewModel(gateway.NewOrdersGateway(api), logger)
	items := viewmodel.NewOrderProductsViewModel(gateway.NewOrderProductsGateway(api), logger)

	console := frontend.NewConsole(os.Stdin, os.Stdout, clients, products, orders, items, logger)

	rootCtx, cancelCtx := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelCtx()

	if err := console.Run(rootCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
