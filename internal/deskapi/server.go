package deskapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"orderdesk/internal/deskapi/handlers"
	"orderdesk/internal/deskapi/middleware"
	"orderdesk/pkg/logging"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
}

type Server struct {
	logger     *logging.ZapLogger
	httpServer *http.Server
	cfg        Config
}

func NewServer(
	cfg Config,
	clientsService handlers.ClientsService,
	productsService handlers.ProductsService,
	ordersService handlers.OrdersService,
	orderItemsService handlers.OrderItemsService,
	logger *logging.ZapLogger,
) *Server {
	srv := &http.Server{
		Addr: cfg.ServerAddress,
		Handler: CreateMux(
			clientsService,
			productsService,
			ordersService,
			orderItemsService,
			logger,
		),
	}

	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: srv,
	}
}

func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server ListenAndServe failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func CreateMux(
	clientsService handlers.ClientsService,
	productsService handlers.ProductsService,
	ordersService handlers.OrdersService,
	orderItemsService handlers.OrderItemsService,
	logger *logging.ZapLogger,
) *chi.Mux {
	clientsHandler := handlers.NewClientsHandler(clientsService, logger)
	productsHandler := handlers.NewProductsHandler(productsService, logger)
	ordersHandler := handlers.NewOrdersHandler(ordersService, logger)
	orderProductsHandler := handlers.NewOrderProductsHandler(orderItemsService, logger)

	router := chi.NewRouter()
	router.Use(middleware.NewLoggerContext().CreateHandler)
	router.Use(middleware.NewPanicRecover(logger).CreateHandler)

	router.Get("/health", handlers.NewHealthHandler(logger))

	router.Route("/clients", func(router chi.Router) {
		router.Get("/", clientsHandler.List)
		router.Post("/", clientsHandler.Create)
		router.Get("/{id}", clientsHandler.Get)
		router.Put("/{id}", clientsHandler.Update)
		router.Delete("/{id}", clientsHandler.Delete)
	})

	router.Route("/products", func(router chi.Router) {
		router.Get("/", productsHandler.List)
		router.Post("/", productsHandler.Create)
		router.Get("/{id}", productsHandler.Get)
		router.Put("/{id}", productsHandler.Update)
		router.Delete("/{id}", productsHandler.Delete)
	})

	router.Route("/orders", func(router chi.Router) {
		router.Get("/", ordersHandler.List)
		router.Post("/", ordersHandler.Create)
		router.Get("/{id}", ordersHandler.Get)
		router.Put("/{id}", ordersHandler.Update)
		router.Delete("/{id}", ordersHandler.Delete)

		router.Route("/{id}/products", func(router chi.Router) {
			router.Get("/", orderProductsHandler.List)
			router.Post("/", orderProductsHandler.Add)
			router.Put("/{itemID}", orderProductsHandler.Update)
			router.Delete("/{itemID}", orderProductsHandler.Delete)
		})
	})

	return router
}
