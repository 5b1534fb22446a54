package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/AchintyaNigam/my-rail/config"
	"github.com/AchintyaNigam/my-rail/internal/consumer"
	"github.com/AchintyaNigam/my-rail/internal/fare"
	"github.com/AchintyaNigam/my-rail/internal/flow"
	"github.com/AchintyaNigam/my-rail/internal/handler"
	"github.com/AchintyaNigam/my-rail/internal/middleware"
	"github.com/AchintyaNigam/my-rail/internal/models"
	"github.com/AchintyaNigam/my-rail/internal/records"
	"github.com/AchintyaNigam/my-rail/internal/repository"
	"github.com/AchintyaNigam/my-rail/internal/service"
	"github.com/AchintyaNigam/my-rail/pkg/cache"
	"github.com/AchintyaNigam/my-rail/pkg/database"
	"github.com/AchintyaNigam/my-rail/pkg/rabbitmq"
)

var CLI struct {
	EnvFile  string `help:"Path to .env file" default:".env" type:"path"`
	Coaches  string `help:"Path to coach table YAML; compiled-in table when empty" type:"path"`
	LogLevel string `help:"Log level" default:"info" enum:"debug,info,warn,error"`
}

func main() {
	kong.Parse(&CLI, kong.Description("my-rail train booking service"))

	logger := logrus.StandardLogger()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	level, _ := logrus.ParseLevel(CLI.LogLevel)
	logger.SetLevel(level)

	cfg := config.Load(CLI.EnvFile)

	coaches := fare.DefaultCoaches
	custom, err := config.LoadCoaches(CLI.Coaches)
	if err != nil {
		logger.WithError(err).Fatal("failed to load coach table")
	}
	if custom != nil {
		coaches = make([]models.CoachType, len(custom))
		for i, c := range custom {
			coaches[i] = models.CoachType{ID: c.ID, Name: c.Name, Surcharge: c.Surcharge}
		}
	}
	coachTable := fare.NewCoachTable(coaches)

	db := database.NewPostgresDB(cfg.DSN(), logger)
	ticketRepo := repository.NewTicketRepository(db)

	// RabbitMQ carries booked tickets to the ledger. Without it the booking
	// service writes the ledger itself.
	var publisher service.EventPublisher
	mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		logger.WithError(err).Warn("[RabbitMQ] unavailable, writing ticket ledger directly")
	} else {
		defer mqPublisher.Close()
		publisher = mqPublisher

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect ticket consumer")
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			logger.WithError(err).Fatal("failed to start consuming")
		}
		consumer.NewTicketConsumer(ticketRepo, logger).Start(msgs)
	}

	var sessions repository.SessionRepository
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to redis")
		}
		defer rdb.Close()
		sessions = repository.NewRedisSessionRepository(rdb, cfg.SessionTTL, cfg.RecordAPITimeout+5*time.Second, logger)
	} else {
		logger.Info("REDIS_ADDR not set, keeping booking sessions in memory")
		sessions = repository.NewMemorySessionRepository()
	}

	recordClient := records.NewClient(cfg.RecordAPIURL, cfg.RecordAPITimeout)

	bookingSvc := service.NewBookingService(flow.NewController(coachTable), sessions, recordClient, publisher, ticketRepo, logger)
	authSvc := service.NewAuthService(recordClient, cfg.JWTSecret, cfg.TokenTTL, logger)
	ticketSvc := service.NewTicketService(ticketRepo)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.NewErrorHandler(logger)
	e.Validator = middleware.NewValidator()
	e.Use(echoMw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "my-rail"})
	})

	handler.NewScheduleHandler(coachTable.All()).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewPaymentHandler(bookingSvc).RegisterRoutes(e)
	handler.NewAuthHandler(authSvc).RegisterRoutes(e)
	handler.NewTicketHandler(ticketSvc).RegisterRoutes(e)

	go func() {
		logger.WithField("port", cfg.ServerPort).Info("my-rail starting")
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.WithField("signal", sig).Info("received signal, shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
	logger.Info("my-rail stopped")
}
