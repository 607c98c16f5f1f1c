package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/todo/api/handler"
	"github.com/fastygo/todo/api/view"
	"github.com/fastygo/todo/internal/config"
	"github.com/fastygo/todo/internal/infrastructure/monitor"
	"github.com/fastygo/todo/internal/lifecycle"
	"github.com/fastygo/todo/internal/middleware"
	"github.com/fastygo/todo/internal/router"
	"github.com/fastygo/todo/internal/session"
	"github.com/fastygo/todo/pkg/httpcontext"
	"github.com/fastygo/todo/pkg/logger"
	"github.com/fastygo/todo/pkg/password"
	authUC "github.com/fastygo/todo/usecase/auth"
	taskUC "github.com/fastygo/todo/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.UsesDevSecret() {
		zapLogger.Warn("SESSION_SECRET is not set, using the development secret")
	}

	appCtx := context.Background()
	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	mon := monitor.New(0, zapLogger)

	data, err := openDataStore(appCtx, cfg, manager, mon, zapLogger)
	if err != nil {
		zapLogger.Fatal("database setup failed", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}

	sessionRepo, err := openSessionStore(appCtx, cfg, manager, mon, zapLogger)
	if err != nil {
		zapLogger.Fatal("session store setup failed", zap.String("store", cfg.Session.Store), zap.Error(err))
	}

	hasher, err := password.New(cfg.Password.Scheme, cfg.Password.Cost)
	if err != nil {
		zapLogger.Fatal("password hasher setup failed", zap.Error(err))
	}

	views, err := view.New()
	if err != nil {
		zapLogger.Fatal("template parsing failed", zap.Error(err))
	}

	sessions := session.NewManager(sessionRepo, session.Config{
		Secret:       []byte(cfg.Session.Secret),
		CookieName:   cfg.Session.CookieName,
		Secure:       cfg.Session.Secure,
		Lifetime:     cfg.Session.Lifetime,
		AnonymousTTL: cfg.Session.AnonymousTTL,
	}, zapLogger)

	authUseCase := authUC.New(data.users, hasher, zapLogger)
	taskUseCase := taskUC.New(data.tasks, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, views, zapLogger),
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, views, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	handler := router.New(handlers,
		middleware.Recovery(zapLogger),
		middleware.AccessLog(zapLogger),
		middleware.Sessions(sessions, ctxAdapter, zapLogger),
	)

	server := &fasthttp.Server{
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}
	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	zapLogger.Info("server started",
		zap.String("address", cfg.Address()),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("session_store", cfg.Session.Store))

	if err := manager.Run(appCtx, func() error {
		return server.ListenAndServe(cfg.Address())
	}); err != nil {
		zapLogger.Error("server stopped with error", zap.Error(err))
	}
}
