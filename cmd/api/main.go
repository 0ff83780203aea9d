package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	rediscache "loanbook-backend/internal/adapter/cache"
	"loanbook-backend/internal/adapter/events"
	httpadp "loanbook-backend/internal/adapter/http"
	"loanbook-backend/internal/adapter/middleware"
	"loanbook-backend/internal/adapter/repository/mysql"
	"loanbook-backend/internal/config"
	"loanbook-backend/internal/domain/event"
	"loanbook-backend/internal/infrastructure/cache"
	"loanbook-backend/internal/infrastructure/db"
	"loanbook-backend/internal/infrastructure/logging"
	"loanbook-backend/internal/infrastructure/scheduler"
	"loanbook-backend/internal/infrastructure/token"
	"loanbook-backend/internal/usecase/borrower"
	"loanbook-backend/internal/usecase/lender"
	"loanbook-backend/internal/usecase/loan"
	"loanbook-backend/internal/usecase/reminder"
	"loanbook-backend/internal/validation"
	"loanbook-backend/pkg/id"
)

func main() {
	// a missing .env is fine; the environment wins anyway
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config: load")
	}
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("config: invalid")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Open(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("db: open")
	}
	if cfg.DBAutoMigrate {
		if err := db.AutoMigrate(gdb); err != nil {
			log.WithError(err).Fatal("db: migrate")
		}
	}

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("redis: open")
	}
	defer func() { _ = rdb.Close() }()

	publisher, closePublisher := openPublisher(cfg, log)
	defer closePublisher()

	jwt, err := token.NewJWT(cfg.JWTSecret, cfg.JWTTTL())
	if err != nil {
		log.WithError(err).Fatal("jwt: init")
	}

	loans := mysql.NewLoanRepository(gdb)
	installments := mysql.NewInstallmentRepository(gdb)
	borrowers := mysql.NewBorrowerRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	loanUC := loan.NewUsecase(loans, installments, tx, log).
		WithCache(rediscache.NewStatsCache(rdb, cfg.StatsCacheTTL())).
		WithPublisher(publisher)
	borrowerUC := borrower.NewUsecase(borrowers, loans, tx, log)
	lenderUC := lender.NewUsecase(mysql.NewLenderRepository(gdb), jwt, log)

	sched := scheduler.New(log)
	if cfg.ReminderSchedule != "" {
		job := reminder.NewJob(installments, publisher, cfg.ReminderWindow(), log).
			WithMarks(rediscache.NewReminderMarks(rdb))
		if err := sched.Register(ctx, cfg.ReminderSchedule, "installment-reminder", job.Run); err != nil {
			log.WithError(err).Fatal("scheduler: register")
		}
	}
	sched.Start()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = httpadp.HTTPErrorHandler(log)
	e.Use(
		echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: id.NewID32}),
		requestLogger(log),
		echomw.Recover(),
	)

	httpadp.Register(e, httpadp.Routes{
		Health:    httpadp.NewHandler(httpadp.Check{Name: "db", Ping: dbPing(gdb)}, httpadp.Check{Name: "redis", Ping: cache.Ping(rdb)}),
		Auth:      httpadp.NewAuthHandler(lenderUC, log),
		Borrowers: httpadp.NewBorrowerHandler(borrowerUC, log),
		Loans:     httpadp.NewLoanHandler(loanUC, log),
	},
		middleware.Auth(jwt, log),
		middleware.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL(), log),
	)

	go func() {
		addr := ":" + cfg.AppPort
		log.WithField("addr", addr).Info("http: listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http: serve")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http: shutdown")
	}
	select {
	case <-sched.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn("scheduler: jobs still running at exit")
	}
}

// openPublisher prefers RabbitMQ and falls back to logging events when no
// broker is configured or it cannot be reached.
func openPublisher(cfg *config.Config, log *logrus.Logger) (event.Publisher, func()) {
	if cfg.AMQPURL == "" {
		log.Info("events: AMQP_URL unset, logging events only")
		return events.NewLogPublisher(log), func() {}
	}
	p, err := events.NewRabbitPublisher(cfg.AMQPURL, cfg.EventsExchange, log)
	if err != nil {
		log.WithError(err).Warn("events: broker unavailable, logging events only")
		return events.NewLogPublisher(log), func() {}
	}
	log.WithField("exchange", cfg.EventsExchange).Info("events: publishing to rabbitmq")
	return p, p.Close
}

func requestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomw.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"route":   v.RoutePath,
				"status":  v.Status,
				"latency": v.Latency.String(),
				"rid":     v.RequestID,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	})
}

func dbPing(gdb *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
