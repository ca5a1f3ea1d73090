package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	entitlementmodule "github.com/promoflow/entitlements/modules/entitlement"
	"github.com/promoflow/entitlements/pkg/assignment"
	"github.com/promoflow/entitlements/pkg/config"
	"github.com/promoflow/entitlements/pkg/entitlement"
	"github.com/promoflow/entitlements/pkg/httpserver"
	"github.com/promoflow/entitlements/pkg/logger"
	"github.com/promoflow/entitlements/pkg/mongo"
	"github.com/promoflow/entitlements/pkg/plan"
	"github.com/promoflow/entitlements/pkg/redis"
	"github.com/promoflow/entitlements/pkg/tenant"
	"github.com/promoflow/entitlements/pkg/usage"
)

type appConfig struct {
	PlansFile     string        `env:"PLANS_FILE" envDefault:"plans.yaml"`
	CacheEnabled  bool          `env:"USAGE_CACHE_ENABLED" envDefault:"false"`
	CacheTTL      time.Duration `env:"USAGE_CACHE_TTL" envDefault:"30s"`
	ServiceName   string        `env:"SERVICE_NAME" envDefault:"entitlements"`
	StartupWindow time.Duration `env:"STARTUP_TIMEOUT" envDefault:"30s"`
}

func main() {
	var (
		appCfg    appConfig
		logCfg    logger.Config
		mongoCfg  mongo.Config
		redisCfg  redis.Config
		serverCfg httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&logCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&serverCfg)

	log := logger.NewFromConfig(logCfg, logger.WithService(appCfg.ServiceName))
	slog.SetDefault(log)

	ctx := context.Background()
	startupCtx, cancel := context.WithTimeout(ctx, appCfg.StartupWindow)
	defer cancel()

	db, err := mongo.ConnectDatabase(startupCtx, mongoCfg)
	if err != nil {
		log.Error("mongo connection failed", logger.Error(err))
		os.Exit(1)
	}

	catalog, err := plan.NewCatalog(startupCtx, plan.NewFileSource(appCfg.PlansFile))
	if err != nil {
		log.Error("plan catalog load failed", logger.Error(err))
		os.Exit(1)
	}

	store := tenant.NewMongoStore(db)
	resolver := tenant.NewResolver(store)

	var counter usage.Counter = usage.NewMongoCounter(db)
	health := []func(context.Context) error{mongo.Healthcheck(db.Client())}

	if appCfg.CacheEnabled {
		config.MustLoad(&redisCfg)
		rdb, err := redis.Connect(startupCtx, redisCfg)
		if err != nil {
			log.Error("redis connection failed", logger.Error(err))
			os.Exit(1)
		}
		counter = usage.NewCachedCounter(counter, rdb, appCfg.CacheTTL)
		health = append(health, redis.Healthcheck(rdb))
	}

	evaluator := entitlement.NewEvaluator(resolver, catalog, counter)
	gate := entitlement.NewGate(resolver, catalog)
	manager := assignment.NewManager(catalog, resolver, store, log)

	module := entitlementmodule.NewModule(evaluator, gate, manager, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/health", httpserver.HealthCheckHandler(log, health...))
	r.Mount("/", module.Router())

	srv := httpserver.New(serverCfg, log)
	if err := srv.Run(ctx, r); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}
