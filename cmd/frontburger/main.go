package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/juanbetancurm/frontBurger/internal/auth"
	"github.com/juanbetancurm/frontBurger/internal/availability"
	"github.com/juanbetancurm/frontBurger/internal/backend"
	"github.com/juanbetancurm/frontBurger/internal/cart"
	"github.com/juanbetancurm/frontBurger/internal/catalog"
	"github.com/juanbetancurm/frontBurger/internal/checkout"
	"github.com/juanbetancurm/frontBurger/internal/config"
	"github.com/juanbetancurm/frontBurger/internal/httpserver"
	"github.com/juanbetancurm/frontBurger/internal/logging"
	"github.com/juanbetancurm/frontBurger/internal/purchase"
	"github.com/juanbetancurm/frontBurger/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	logger := logging.New(cfg.LogLevel)

	sessions, err := session.Open(cfg.SessionDBPath, logger)
	if err != nil {
		log.Fatalf("session store error: %v", err)
	}
	sessions.OnInvalidate(func() {
		logger.Warn("session invalidated by backend, user logged out")
	})

	mainAPI, err := backend.NewClient(cfg.MainAPIURL, cfg.HTTPTimeout, sessions, logger)
	if err != nil {
		log.Fatalf("main api client: %v", err)
	}
	cartAPI, err := backend.NewClient(cfg.CartAPIURL, cfg.HTTPTimeout, sessions, logger)
	if err != nil {
		log.Fatalf("cart api client: %v", err)
	}

	authClient := auth.NewClient(mainAPI, logger)
	catalogClient := catalog.NewClient(mainAPI, logger)
	purchaseClient := purchase.NewClient(mainAPI, logger)
	cartClient := cart.NewClient(cartAPI, logger)

	resolver := availability.NewResolver(purchaseClient, catalogClient, logger)
	orchestrator := checkout.NewOrchestrator(cartClient, purchaseClient, catalogClient, logger)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(httpserver.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	httpserver.Register(e, &httpserver.Deps{
		Sessions:        sessions,
		AuthHandler:     &httpserver.AuthHandler{Auth: authClient, Sessions: sessions},
		ProductsHandler: &httpserver.ProductsHandler{Catalog: catalogClient},
		CartHandler:     &httpserver.CartHandler{Cart: cartClient},
		CheckoutHandler: &httpserver.CheckoutHandler{Checkout: orchestrator},
		AdminHandler:    &httpserver.AdminHandler{Resolver: resolver, Purchases: purchaseClient},
	})

	go func() {
		logger.Info("starting POS frontend", "port", cfg.ServerPort)
		if err := e.Start(":" + strconv.Itoa(cfg.ServerPort)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}
	if err := sessions.Close(); err != nil {
		logger.Error("session store close", "error", err)
	}
}
