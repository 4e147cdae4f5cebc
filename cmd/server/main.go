package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-storefront-api/auth"
	"github.com/jrsteele09/go-storefront-api/internal/config"
	"github.com/jrsteele09/go-storefront-api/internal/metrics"
	"github.com/jrsteele09/go-storefront-api/internal/storage"
	"github.com/jrsteele09/go-storefront-api/products"
	"github.com/jrsteele09/go-storefront-api/server"
	"github.com/jrsteele09/go-storefront-api/token"
	"github.com/jrsteele09/go-storefront-api/users"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	setupLogging(c)
	displayAppname(c.GetAppName())

	ctx := context.Background()
	stores, err := storage.Open(ctx, c)
	if err != nil {
		return fmt.Errorf("storage.Open: %w", err)
	}
	defer closeStores(stores)

	handler, err := newServer(c, stores)
	if err != nil {
		return err
	}
	defer handler.Close()

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- listenAndServe(httpServer) }()

	select {
	case err := <-errCh:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func newServer(c config.Config, stores *storage.Stores) (*server.Server, error) {
	tokens, err := token.New(c.GetJWTSecret())
	if err != nil {
		return nil, fmt.Errorf("token.New: %w", err)
	}

	accounts, err := auth.NewAccountService(
		stores.Users,
		users.NewBcryptHasher(c.GetBcryptCost()),
		tokens,
		auth.WithTokenTTLs(c.GetAccessTokenExpiry(), c.GetRefreshTokenExpiry()),
		auth.WithSystemUserID(c.GetSystemUserID()),
	)
	if err != nil {
		return nil, fmt.Errorf("auth.NewAccountService: %w", err)
	}

	productService, err := products.NewService(stores.Products, products.WithSystemUserID(c.GetSystemUserID()))
	if err != nil {
		return nil, fmt.Errorf("products.NewService: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return server.New(c, server.Dependencies{
		Accounts: accounts,
		Products: productService,
		Tokens:   tokens,
		Metrics:  metrics.NewCollector(reg),
		Gatherer: reg,
	})
}

func setupLogging(c config.EnvConfig) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func closeStores(stores *storage.Stores) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := stores.Close(ctx); err != nil {
		log.Error().Err(err).Msg("failed to close stores")
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
