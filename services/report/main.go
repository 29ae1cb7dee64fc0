package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/middleware"

	"github.com/mealmesh/mealmesh/pkg"
	"github.com/mealmesh/mealmesh/pkg/session"
	"github.com/mealmesh/mealmesh/services/report/internal/mongo"
	"github.com/mealmesh/mealmesh/services/report/internal/report"
)

const (
	appNamespace = "REPORT"
	appName      = "report"
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

	reportRepo := mongo.NewProblemReportRepo(db)
	chatRepo := mongo.NewSupportChatRepo(db)

	orderSource, err := report.NewAPIOrderSource(config, logger)
	if err != nil {
		log.Fatalf("%s(%s) cannot create order service client: %v", appName, appVersion, err)
	}

	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")

	pub, err := pkg.NewNATSPublisher(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS publisher: %v", appName, appVersion, err)
	}

	sub, err := pkg.NewNATSSubscriber(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS subscriber: %v", appName, appVersion, err)
	}

	hub := report.NewHub(logger)
	eventSub := report.NewEventSubscriber(sub, hub, logger)

	hd := report.HandlerDeps{
		Repo:      reportRepo,
		Chats:     chatRepo,
		Orders:    orderSource,
		Publisher: pub,
		Hub:       hub,
	}

	handler := report.NewHandler(hd, config, logger)

	subLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			hub.Close()
			if err := pub.Close(); err != nil {
				return err
			}
			return sub.Close()
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
