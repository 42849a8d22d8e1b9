package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VighnaRajan/Adyen-Dropin-Applepay/docs"
	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/adyen"
	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/domainverify"
	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/ratelimiter"
	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/relay"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config      config
	logger      *zap.SugaredLogger
	relay       *relay.Service
	domainAssoc http.Handler
	rateLimiter ratelimiter.Limiter
}

type config struct {
	addr         string
	env          string
	apiURL       string
	logLevel     string
	publicDir    string
	adyen        adyen.Config
	relay        relay.Config
	domainVerify domainverify.Config
	auth         authConfig
	rateLimiter  ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
}

type basicConfig struct {
	user string
	pass string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// processor calls are bounded by the adyen client timeout, this is the outer limit
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", app.healthCheckHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if app.config.auth.basic.user != "" {
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)
	}

	r.Method(http.MethodGet, domainverify.WellKnownPath, app.domainAssoc)
	r.Method(http.MethodHead, domainverify.WellKnownPath, app.domainAssoc)

	r.Route("/api/adyen", func(r chi.Router) {
		r.Use(app.RateLimiterMiddleware)
		r.Post("/applepay/sessions", app.createMerchantSessionHandler)
		r.Post("/payments", app.createPaymentHandler)
	})

	// SPA fallback
	r.Get("/*", app.spaHandler)

	return r
}

func (app *application) run(mux http.Handler) error {
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
