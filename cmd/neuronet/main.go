package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/auth"
	"github.com/SonGokuFan1996/NeuroNet/internal/cache"
	"github.com/SonGokuFan1996/NeuroNet/internal/config"
	"github.com/SonGokuFan1996/NeuroNet/internal/feed"
	"github.com/SonGokuFan1996/NeuroNet/internal/moderation"
	logctx "github.com/SonGokuFan1996/NeuroNet/internal/pkg/log"
	"github.com/SonGokuFan1996/NeuroNet/internal/purchases"
	"github.com/SonGokuFan1996/NeuroNet/internal/scheduler"
	"github.com/SonGokuFan1996/NeuroNet/internal/share"
	"github.com/SonGokuFan1996/NeuroNet/internal/storage"
	badgerstore "github.com/SonGokuFan1996/NeuroNet/internal/storage/badger"
	miniostore "github.com/SonGokuFan1996/NeuroNet/internal/storage/minio"
	mongostore "github.com/SonGokuFan1996/NeuroNet/internal/storage/mongo"
	pgstore "github.com/SonGokuFan1996/NeuroNet/internal/storage/postgres"
	"github.com/SonGokuFan1996/NeuroNet/internal/theme"
	nnhttp "github.com/SonGokuFan1996/NeuroNet/internal/transport/http"
	"github.com/SonGokuFan1996/NeuroNet/internal/transport/http/handlers"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting neuronet", "env", cfg.Env, "storage", cfg.Storage.Driver)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	posts, closePosts, err := openPosts(rootCtx, cfg)
	if err != nil {
		log.Error("posts_storage_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	closers = append(closers, closePosts)

	feedDeps := feed.Deps{Posts: posts}

	if cfg.Mongo.URL != "" {
		ctx, cancel := context.WithTimeout(rootCtx, cfg.Timeouts.Connect)
		mg, err := mongostore.New(ctx, cfg.Mongo.URL)
		cancel()
		if err != nil {
			log.Error("mongo_init_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		closers = append(closers, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mg.Close(ctx); err != nil {
				log.Warn("mongo_close_failed", slog.String("err", err.Error()))
			}
		})
		feedDeps.Comments = mg
		log.Info("comments_source", slog.String("driver", "mongo"))
	}

	if cfg.Share.TelegramToken != "" {
		tg, err := share.NewTelegram(cfg.Share.TelegramToken, cfg.Share.TelegramChatID)
		if err != nil {
			log.Error("telegram_init_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		feedDeps.Sharer = tg
		log.Info("share_target", slog.String("target", "telegram"))
	}

	var media storage.MediaStorage
	if cfg.S3.Endpoint != "" {
		ctx, cancel := context.WithTimeout(rootCtx, cfg.Timeouts.Connect)
		m, err := miniostore.New(ctx, cfg.S3)
		cancel()
		if err != nil {
			log.Error("s3_init_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		media = m
		log.Info("media_storage", slog.String("bucket", cfg.S3.Bucket))
	}

	fc := feed.New(feedDeps, cfg.Feed)
	closers = append(closers, fc.Close)

	ac, err := auth.New(cfg.Auth)
	if err != nil {
		log.Error("auth_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	closers = append(closers, ac.Close)

	tc := theme.New()
	closers = append(closers, tc.Close)

	svc, closeSvc, err := openPurchases(rootCtx, cfg, log)
	if err != nil {
		log.Error("purchases_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	closers = append(closers, closeSvc)

	flow := purchases.NewFlow(svc, fc)

	sched, err := scheduler.New(cfg.Scheduler.Timezone, log)
	if err != nil {
		log.Error("scheduler_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	if err := scheduler.Register(sched, cfg.Scheduler, flow, auth.MockUser().ID, fc); err != nil {
		log.Error("scheduler_register_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	apiHandler := nnhttp.NewRouter(handlers.Deps{
		Feed:       fc,
		Auth:       ac,
		Theme:      tc,
		Moderation: moderation.New(cfg.Moderation),
		Media:      media,
		Purchases:  flow,
		Jobs:       sched,
	}, nnhttp.Options{
		Logger:   log,
		Timeout:  cfg.Timeouts.Request,
		BasePath: cfg.HTTP.BasePath,
		Tokens:   ac,
	})

	var ready int32 // 0 — not ready; 1 — ready
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}
	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	// Первая загрузка ленты: до неё снапшот в состоянии загрузки.
	go func() {
		_ = fc.Fetch(logctx.Into(rootCtx, log))
	}()

	sched.Start()

	atomic.StoreInt32(&ready, 1)
	log.Info("neuronet_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	select {
	case <-sched.Stop().Done():
		log.Info("scheduler_stopped")
	case <-shutdownCtx.Done():
		log.Warn("scheduler_stop_timeout")
	}

	log.Info("service_stopped")
}

// openPosts открывает источник постов по storage.driver.
func openPosts(ctx context.Context, cfg *config.Config) (storage.PostsStorage, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		connCtx, cancel := context.WithTimeout(ctx, cfg.Timeouts.Connect)
		defer cancel()

		pg, err := pgstore.New(connCtx, cfg.Storage.PostgresURL)
		if err != nil {
			return nil, nil, err
		}

		return pg, pg.Close, nil
	case config.DriverBadger:
		bg, err := badgerstore.New(cfg.Storage.BadgerPath)
		if err != nil {
			return nil, nil, err
		}

		return bg, func() {
			if err := bg.Close(); err != nil {
				slog.Default().Warn("badger_close_failed", slog.String("err", err.Error()))
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// openPurchases — RevenueCat при наличии ключа, иначе заглушка; Redis-кэш поверх.
func openPurchases(ctx context.Context, cfg *config.Config, log *slog.Logger) (purchases.Service, func(), error) {
	var svc purchases.Service = purchases.Disabled{}
	if cfg.Purchases.APIKey != "" {
		svc = purchases.NewRevenueCat(cfg.Purchases, nil)
		log.Info("purchases_provider", slog.String("provider", "revenuecat"))
	}

	if cfg.Redis.URL == "" {
		return svc, func() {}, nil
	}

	connCtx, cancel := context.WithTimeout(ctx, cfg.Timeouts.Connect)
	defer cancel()

	c, err := cache.NewRedisCache(connCtx, cfg.Redis.URL, cfg.Redis.Prefix)
	if err != nil {
		return nil, nil, err
	}
	log.Info("entitlement_cache", slog.String("driver", "redis"), slog.Duration("ttl", cfg.Redis.TTL))

	return purchases.NewCached(svc, c, cfg.Redis.TTL), func() {
		if err := c.Close(); err != nil {
			log.Warn("redis_close_failed", slog.String("err", err.Error()))
		}
	}, nil
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
