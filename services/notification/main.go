package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/middleware"

	"github.com/mealmesh/mealmesh/pkg"
	"github.com/mealmesh/mealmesh/pkg/event"
	"github.com/mealmesh/mealmesh/pkg/session"
	"github.com/mealmesh/mealmesh/services/notification/internal/mongo"
	"github.com/mealmesh/mealmesh/services/notification/internal/notification"
)

const (
	appNamespace = "NOTIFICATION"
	appName      = "notification"
	appVersion   = "0.1.0"
)

func main() {
	config, err := apt.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := apt.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	baseRepo := mongo.NewBaseRepo(config, logger)
	err = baseRepo.Start(ctx)
	if err != nil {
		log.Fatalf("%s(%s) cannot start base repository: %v", appName, appVersion, err)
	}

	db := baseRepo.GetDatabase()
	if db == nil {
		log.Fatalf("%s(%s) cannot initialize repository database: %v", appName, appVersion, errors.New("repository database is nil"))
	}

	notificationRepo := mongo.NewNotificationRepo(db)

	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")

	sub, err := pkg.NewNATSSubscriber(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS subscriber: %v", appName, appVersion, err)
	}

	stream, err := pkg.NewNATSStream(pkg.NATSStreamConfig{
		URL:          natsURL,
		StreamName:   "NOTIFICATION_EVENTS",
		Topic:        event.NotificationsTopic,
		ConsumerName: config.GetStringOrDef("nats.consumer", "notification-replay"),
		MaxAge:       24 * time.Hour,
	})
	if err != nil {
		log.Fatalf("%s(%s) cannot initialize NATS stream: %v", appName, appVersion, err)
	}

	hub := notification.NewHub(logger)
	eventSub := notification.NewEventSubscriber(sub, notificationRepo, hub, logger)
	sseHandler := notification.NewSSEHandler(hub, stream, logger)

	hd := notification.HandlerDeps{
		Repo: notificationRepo,
		SSE:  sseHandler,
	}

	handler := notification.NewHandler(hd, config, logger)

	subLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			hub.Close()
			if err := sub.Close(); err != nil {
				return err
			}
			return stream.Close()
		},
	}

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger: logger,
	})
	stack = append(stack, session.Middleware)

	options := []apt.Option{
		apt.WithConfig(config),
		apt.WithLogger(logger),
		apt.WithHTTPMiddleware(stack...),
		apt.WithHTTPServerModules("web.port", handler),
		apt.WithLifecycle(
			apt.LifecycleHooks{OnStop: baseRepo.Stop},
			eventSub,
			subLifecycle,
		),
		apt.WithHealthChecks(appName),
	}

	ms := apt.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	err = ms.Run(ctx)
	if err != nil {
		_ = baseRepo.Stop(context.Background())
		log.Fatalf("%s(%s) stopped: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}
