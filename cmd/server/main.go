package main

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/rcarvalho-pb/payment_routing-go/internal/application/orchestrator"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/ledger"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infra/config"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infra/logging"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infra/metrics"
	httpapi "github.com/rcarvalho-pb/payment_routing-go/internal/infrastructure/http"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infrastructure/persistence/inmemory"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infrastructure/persistence/redisledger"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infrastructure/persistence/sqlite"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infrastructure/processor"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infrastructure/registry"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infrastructure/scorer"
)

func main() {
	cfg := config.Load()

	reg, err := buildRegistry(cfg)
	if err != nil {
		log.Fatal(err)
	}

	outcomeLedger, err := buildLedger(cfg)
	if err != nil {
		log.Fatal(err)
	}

	logger := &logging.StdoutLogger{}
	counters := &metrics.Counters{}

	core := &orchestrator.Orchestrator{
		Registry:  reg,
		Ledger:    outcomeLedger,
		Processor: processor.NewSimulated(),
		Scorer:    scorer.NewStatistical(0),
		Logger:    logger,
		Metrics:   counters,
		Window:    cfg.HistoryWindow,
	}

	handler := &httpapi.PaymentHandler{
		Orchestrator: core,
		Ledger:       outcomeLedger,
		Registry:     reg,
	}

	router := httpapi.NewRouter(handler)

	log.Printf("payment routing server listening on %s (ledger: %s)", cfg.Addr, cfg.LedgerBackend)
	log.Fatal(http.ListenAndServe(cfg.Addr, router))
}

func buildRegistry(cfg config.Config) (method.Registry, error) {
	if cfg.RegistryFile != "" {
		return registry.LoadFile(cfg.RegistryFile)
	}
	return registry.NewDefault(), nil
}

func buildLedger(cfg config.Config) (ledger.Ledger, error) {
	switch cfg.LedgerBackend {
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := sqlite.RunMigrations(db); err != nil {
			return nil, err
		}
		return sqlite.NewLedger(db), nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, err
		}
		return redisledger.NewLedger(client, ""), nil

	default:
		return inmemory.NewLedger(), nil
	}
}
