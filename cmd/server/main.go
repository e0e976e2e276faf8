package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/yoga_studio/internal/config"
	"github.com/Skotchmaster/yoga_studio/internal/db"
	"github.com/Skotchmaster/yoga_studio/internal/es"
	"github.com/Skotchmaster/yoga_studio/internal/httpserver"
	"github.com/Skotchmaster/yoga_studio/internal/logging"
	middleware "github.com/Skotchmaster/yoga_studio/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/yoga_studio/internal/middleware/logging"
	"github.com/Skotchmaster/yoga_studio/internal/mykafka"
	"github.com/Skotchmaster/yoga_studio/internal/repo"
	"github.com/Skotchmaster/yoga_studio/internal/service"
	"github.com/Skotchmaster/yoga_studio/internal/tokens"
)

type publisher interface {
	service.EventPublisher
	io.Closer
}

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if cfg.SeedDemoData {
		if err := db.Seed(context.Background(), gdb); err != nil {
			log.Fatalf("db seed: %v", err)
		}
	}

	events := newPublisher(cfg)
	users := &repo.Users{DB: gdb}
	teachers := &repo.Teachers{DB: gdb}
	sessions := &repo.Sessions{DB: gdb}
	tokenSvc := tokens.NewService(cfg.JWTSecret, cfg.JWTExpiration)

	sessionSvc := &service.SessionService{
		Sessions: sessions,
		Teachers: teachers,
		Events:   events,
		Search:   sessions,
	}
	if index := newSessionIndex(cfg); index != nil {
		sessionSvc.Index = index
		sessionSvc.Search = index
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if n, err := sessionSvc.Reindex(ctx); err != nil {
			logger.Error("reindex_failed", "indexed", n, "error", err)
		} else {
			logger.Info("reindex_done", "indexed", n)
		}
		cancel()
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	if len(cfg.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	} else {
		e.Use(echomw.CORS())
	}

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: &service.AuthService{Users: users, Tokens: tokenSvc, Events: events}},
		SessionHandler: &httpserver.SessionHTTP{
			Svc:    sessionSvc,
			Ledger: &service.Ledger{Sessions: sessions, Users: users, Events: events},
		},
		UserHandler:    &httpserver.UserHTTP{Svc: &service.UserService{Users: users, Events: events}},
		TeacherHandler: &httpserver.TeacherHTTP{Svc: &service.TeacherService{Teachers: teachers}},
		AuthMW:         middleware.NewBearerAuth(tokenSvc, users),
		Ready:          func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	closeAll(logger, gdb, events)
	logger.Info("stopped")
}

func newPublisher(cfg *config.Config) publisher {
	if len(cfg.KafkaBrokers) == 0 {
		slog.Warn("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
		return mykafka.NopPublisher{}
	}
	if err := mykafka.EnsureTopics(cfg.KafkaBrokers[0], cfg.KafkaTopic); err != nil {
		slog.Warn("kafka_topic_check_failed", "topic", cfg.KafkaTopic, "error", err)
	}
	p, err := mykafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		log.Fatalf("kafka producer: %v", err)
	}
	return p
}

// newSessionIndex returns nil when search runs on the database.
func newSessionIndex(cfg *config.Config) *es.SessionIndex {
	if cfg.ESURL == "" {
		slog.Warn("elasticsearch_disabled", "reason", "ES_URL is empty")
		return nil
	}
	client, err := es.NewClient(cfg)
	if err != nil {
		log.Fatalf("elasticsearch: %v", err)
	}
	index := &es.SessionIndex{Client: client, Index: cfg.ESIndex}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := index.EnsureIndex(ctx); err != nil {
		log.Fatalf("elasticsearch index: %v", err)
	}
	return index
}

func closeAll(l *slog.Logger, gdb *gorm.DB, events io.Closer) {
	if err := events.Close(); err != nil {
		l.Error("kafka_close", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		l.Error("db_close", "error", err)
	}
}
