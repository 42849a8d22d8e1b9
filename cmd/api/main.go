package main

import (
	"errors"
	"expvar"
	"fmt"
	"io/fs"
	"log"
	"os"
	"runtime"

	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/adyen"
	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/domainverify"
	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/ratelimiter"
	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/relay"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap logger with color.
func NewLogger(level string) (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), lvl)

	return zap.New(core).Sugar(), nil
}

var version = "1.0.0"

//	@title			Apple Pay Relay API
//	@description	Relays Apple Pay merchant validation and payment authorization to Adyen.

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath	/
func main() {
	// .env is optional; hosted environments inject variables directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg := loadConfig()
	if err := validateConfig(cfg); err != nil {
		log.Fatal(err)
	}

	logger, err := NewLogger(cfg.logLevel)
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	if cfg.adyen.APIKey == "" {
		logger.Warn("ADYEN_API_KEY is not set; relay endpoints will answer 500")
	}

	app, err := newApplication(cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}

	//Metrics collected http://localhost:3000/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	if err := app.run(mux); err != nil {
		logger.Fatal(err)
	}
}

func newApplication(cfg config, logger *zap.SugaredLogger) (*application, error) {
	processor := adyen.NewClient(cfg.adyen, logger)

	svc, err := relay.NewService(cfg.relay, processor, logger)
	if err != nil {
		return nil, err
	}

	return &application{
		config:      cfg,
		logger:      logger,
		relay:       svc,
		domainAssoc: domainverify.NewResponder(cfg.domainVerify, logger),
		rateLimiter: ratelimiter.NewFixedWindowLimiter(
			cfg.rateLimiter.RequestsPerTimeFrame,
			cfg.rateLimiter.TimeFrame,
		),
	}, nil
}
