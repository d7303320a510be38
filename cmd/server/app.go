package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adoptmenow/formvalidation/modules/adoption"
	"github.com/adoptmenow/formvalidation/pkg/clientip"
	"github.com/adoptmenow/formvalidation/pkg/config"
	"github.com/adoptmenow/formvalidation/pkg/flash"
	"github.com/adoptmenow/formvalidation/pkg/formrules"
	"github.com/adoptmenow/formvalidation/pkg/formvalidator"
	"github.com/adoptmenow/formvalidation/pkg/httpserver"
	"github.com/adoptmenow/formvalidation/pkg/i18n"
	"github.com/adoptmenow/formvalidation/pkg/logger"
	"github.com/adoptmenow/formvalidation/pkg/metrics"
	"github.com/adoptmenow/formvalidation/pkg/ratelimiter"
	"github.com/adoptmenow/formvalidation/pkg/redis"
	"github.com/adoptmenow/formvalidation/pkg/requestid"
)

type appConfig struct {
	Env              string   `env:"APP_ENV" envDefault:"development"`
	Name             string   `env:"APP_NAME" envDefault:"adoptmenow"`
	Language         string   `env:"APP_LANGUAGE" envDefault:"es"`
	RulesFile        string   `env:"RULES_FILE"`
	RedisEnabled     bool     `env:"REDIS_ENABLED" envDefault:"false"`
	RegistryKey      string   `env:"EMAIL_REGISTRY_KEY" envDefault:"formvalidation:emails"`
	MetricsNamespace string   `env:"METRICS_NAMESPACE" envDefault:"formvalidation"`
	IPHeaders        []string `env:"CLIENT_IP_HEADERS" envSeparator:","`
}

// deps are the collaborators of the HTTP router.
type deps struct {
	log        *slog.Logger
	translator *i18n.Translator
	module     *adoption.Module
	metrics    *metrics.Collector
	limiter    *ratelimiter.Limiter
	ips        *clientip.Resolver
	ready      []func(context.Context) error
}

func run(ctx context.Context) error {
	var (
		app      appConfig
		httpCfg  httpserver.Config
		formCfg  formvalidator.Config
		rateCfg  ratelimiter.Config
		flashCfg flash.Config
	)
	for _, v := range []func() error{
		func() error { return config.Load(&app) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&formCfg) },
		func() error { return config.Load(&rateCfg) },
		func() error { return config.Load(&flashCfg) },
	} {
		if err := v(); err != nil {
			return err
		}
	}

	log := logger.New(
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithContextExtractors(requestid.LogExtractor(), clientip.LogExtractor()),
		logger.WithContextValue("locale", i18n.LocaleKey),
	)
	logger.SetAsDefault(log)

	tr, err := i18n.NewDefault(ctx,
		i18n.WithDefaultLanguage(app.Language),
		i18n.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("loading translations: %w", err)
	}

	col := metrics.NewCollector(app.MetricsNamespace)

	store := formrules.NewStore(formrules.DefaultPresets())
	var watcher *formrules.Watcher
	if app.RulesFile != "" {
		if err := store.ReloadFile(app.RulesFile); err != nil {
			return err
		}
		watcher, err = formrules.NewWatcher(store, app.RulesFile,
			formrules.WithWatcherLogger(log),
			formrules.OnReload(col.Reloaded),
		)
		if err != nil {
			return err
		}
	}

	var (
		emails    formrules.EmailRegistry = formrules.NewMemoryRegistry()
		rateStore ratelimiter.Store
		ready     []func(context.Context) error
	)
	if app.RedisEnabled {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		emails = formrules.NewRedisRegistry(client, app.RegistryKey)
		rateStore = ratelimiter.NewRedisStore(client, "")
		ready = append(ready, redis.Healthcheck(client))
	} else {
		mem := ratelimiter.NewMemoryStore()
		defer mem.Close()
		rateStore = mem
	}
	limiter, err := ratelimiter.New(rateStore, rateCfg)
	if err != nil {
		return err
	}

	v := formrules.NewValidator(store,
		formrules.WithLogger(log),
		formrules.WithTranslator(tr),
		formrules.WithEmailRegistry(emails),
		formrules.WithObserver(col),
	)
	modOpts := []adoption.Option{
		adoption.WithLogger(log),
		adoption.WithTranslator(tr),
		adoption.WithEmailRegistry(emails),
		adoption.WithObserver(col),
		adoption.WithEngineOptions(formvalidator.WithConfig(formCfg)),
	}
	// Flash messages are off until FLASH_SECRETS is set.
	if flashCfg.Secrets != "" {
		fl, err := flash.New(flashCfg)
		if err != nil {
			return err
		}
		modOpts = append(modOpts, adoption.WithFlash(fl))
	}
	mod, err := adoption.New(v, modOpts...)
	if err != nil {
		return err
	}

	router := newRouter(deps{
		log:        log,
		translator: tr,
		module:     mod,
		metrics:    col,
		limiter:    limiter,
		ips:        clientip.New(app.IPHeaders...),
		ready:      ready,
	})

	opts := []httpserver.Option{httpserver.WithLogger(log)}
	if watcher != nil {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		opts = append(opts,
			httpserver.WithStartHook(func() {
				go func() {
					if err := watcher.Run(watchCtx); err != nil {
						log.Error("presets watcher stopped", logger.Error(err))
					}
				}()
			}),
			httpserver.WithStopHook(func() {
				if err := watcher.Stop(); err != nil {
					log.Error("failed to stop presets watcher", logger.Error(err))
				}
			}),
		)
	}
	return httpserver.NewFromConfig(httpCfg, opts...).Run(ctx, router)
}

func newRouter(d deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware(),
		d.ips.Middleware,
		i18n.Middleware(d.translator),
	)

	r.Get("/health/live", httpserver.HealthCheckHandler(d.log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(d.log, d.ready...))
	r.Handle("/metrics", d.metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(ratelimiter.Middleware(d.limiter, ratelimiter.ByClientIP(d.ips),
			ratelimiter.WithLogger(d.log),
			ratelimiter.OnLimited(func(r *http.Request, _ string) { d.metrics.Throttled(r.URL.Path) }),
		))
		r.Mount("/", d.module.Handle())
	})
	return r
}
