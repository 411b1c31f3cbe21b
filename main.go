package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"tiketi/auth"
	"tiketi/client"
	"tiketi/clock"
	"tiketi/handlers"
	"tiketi/services"
	"tiketi/store"
	"tiketi/web"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	authSecret := os.Getenv("AUTH_SECRET")
	if authSecret == "" {
		logrus.Fatal("AUTH_SECRET not set")
	}

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":4000"
	}

	clk := clock.NewSystem()
	tokens := auth.NewTokens(authSecret, clk)

	// API_BASE_URL switches the whole app onto a remote deployment;
	// otherwise everything runs against the seeded in-memory store.
	var api *client.Client
	if base := os.Getenv("API_BASE_URL"); base != "" {
		api = client.NewHTTP(base)
		logrus.WithField("baseURL", base).Info("using remote API")
	} else {
		opts := []store.Option{store.WithClock(clk)}
		if os.Getenv("MOCK_LATENCY") == "off" {
			opts = append(opts, store.WithLatency(store.Latency{}))
		}
		api = client.NewLocal(store.NewSeeded(opts...), tokens)
		logrus.Info("using seeded in-memory store")
	}

	processors := []services.PaymentProcessor{
		services.NewMpesaProcessor(),
		services.NewCardProcessor(),
	}

	apiHandlers := handlers.NewAPI(api, tokens, processors...)
	pages := web.NewPages(api, clk, processors...)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(handlers.RequestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Mount("/api", apiHandlers.Routes())
	r.Mount("/", pages.Routes())

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		logrus.WithField("addr", addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("shutdown failed")
	}
}
