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
	"github.com/mealmesh/mealmesh/services/order/internal/mongo"
	"github.com/mealmesh/mealmesh/services/order/internal/order"
)

const (
	appNamespace = "ORDER"
	appName      = "order"
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

	orderRepo := mongo.NewOrderRepo(db)

	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")

	pub, err := pkg.NewNATSPublisher(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS publisher: %v", appName, appVersion, err)
	}

	sub, err := pkg.NewNATSSubscriber(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS subscriber: %v", appName, appVersion, err)
	}

	restaurantURL, _ := config.GetString("services.restaurant.url")
	restaurantClient := apt.NewServiceClient(restaurantURL)
	scopeCache := order.NewRestaurantScopeCache(restaurantClient, logger)

	// Kitchen and courier apps push status changes over NATS
	statusSub := order.NewStatusSubscriber(sub, orderRepo, logger)

	publisherLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	}

	subLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			return sub.Close()
		},
	}

	hd := order.HandlerDeps{
		OrderRepo:  orderRepo,
		ScopeCache: scopeCache,
		Publisher:  pub,
	}

	handler := order.NewHandler(hd, config, logger)

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
			statusSub,
			publisherLifecycle,
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
