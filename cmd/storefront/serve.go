package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	httpapi "github.com/andreasstove999/ecommerce-system/storefront-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storefront"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/submission"
)

type serveCmd struct {
	Store  config.Store  `embed:""`
	Server config.Server `embed:""`
}

func (c *serveCmd) Run(ctx context.Context, logger *zap.Logger) error {
	if err := c.Server.Validate(); err != nil {
		return err
	}

	cat, err := catalog.LoadFile(c.Server.CatalogPath)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", zap.String("path", c.Server.CatalogPath), zap.Int("products", len(cat.Products())))

	store, closeStore, err := openStore(ctx, c.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	dispatcher, closeSenders, err := c.dispatcher(logger)
	if err != nil {
		return err
	}
	defer closeSenders()

	session := storefront.NewSession(cat, store, dispatcher,
		storefront.WithLogger(logger.Named("session")),
		storefront.WithDefaultPaymentMethod(c.Server.DefaultPaymentMethod()),
	)

	router := httpapi.NewRouter(httpapi.NewHandler(session, logger.Named("http")), httpapi.RouterConfig{
		Logger:           logger.Named("access"),
		CORSAllowOrigins: c.Server.CORSAllowOrigins,
		AdminEnabled:     c.Server.AdminEnabled,
	})

	addr := net.JoinHostPort("", c.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening",
			zap.String("addr", addr),
			zap.String("counter_backend", c.Store.Backend),
			zap.Bool("admin", c.Server.AdminEnabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("http server failed", zap.Error(serveErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}

	waitDispatches(shutdownCtx, dispatcher, logger)

	if serveErr != nil {
		return fmt.Errorf("http server: %w", serveErr)
	}
	return nil
}

// dispatcher wires every configured order sender. The cleanup closes broker
// connections.
func (c *serveCmd) dispatcher(logger *zap.Logger) (*submission.Dispatcher, func(), error) {
	opts := []submission.Option{
		submission.WithTimeout(c.Server.SubmitTimeout),
		submission.WithLogger(logger.Named("submission")),
	}
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if c.Server.CollectorURL != "" {
		collector, err := clients.NewCollector(c.Server.CollectorURL, &http.Client{Timeout: c.Server.SubmitTimeout})
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, submission.WithSender("collector", collector))
	}

	if c.Server.RabbitMQURL != "" {
		conn, err := events.Dial(c.Server.RabbitMQURL)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { _ = conn.Close() })

		pub, err := events.NewPublisher(conn)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = pub.Close() })
		opts = append(opts, submission.WithSender("events", pub))
	}

	return submission.NewDispatcher(opts...), cleanup, nil
}

func waitDispatches(ctx context.Context, d *submission.Dispatcher, logger *zap.Logger) {
	done := make(chan struct{})
	go func() {
		d.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn("shutdown timed out with order submissions still in flight")
	}
}
