package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ops-console/internal/api/http"
	"github.com/spec-kit/ops-console/internal/api/http/handlers"
	"github.com/spec-kit/ops-console/internal/auth"
	"github.com/spec-kit/ops-console/internal/config"
	"github.com/spec-kit/ops-console/internal/events"
	"github.com/spec-kit/ops-console/internal/observability"
	"github.com/spec-kit/ops-console/internal/persistence"
	"github.com/spec-kit/ops-console/internal/repository"
	"github.com/spec-kit/ops-console/internal/service"
	"github.com/spec-kit/ops-console/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	budgetRepo := repository.NewBudgetRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	groupRepo := repository.NewGroupRepository(pool)
	calendarRepo := repository.NewCalendarRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(func(event events.Event, err error) {
		logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	})

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		ClientRepo: clientRepo,
		Dispatcher: dispatcher,
	})
	clientService := service.NewClientService(clientRepo)
	budgetService := service.NewBudgetService(budgetRepo, clientRepo)
	calendarService := service.NewCalendarService(calendarRepo, ticketRepo)
	authService := service.NewAuthService(*cfg, userRepo)
	directoryService := service.NewDirectoryService(service.DirectoryDependencies{
		UserRepo:  userRepo,
		GroupRepo: groupRepo,
		Cache:     redis.Client,
		CacheTTL:  cfg.Directory.CacheTTL(),
		Logger:    logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)
	worker.NewCalendarWorker(calendarService, logger).Start(dispatcher)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Clients:        handlers.NewClientsHandler(clientService),
		Budgets:        handlers.NewBudgetsHandler(budgetService),
		Users:          handlers.NewUsersHandler(authService, directoryService),
		Directory:      handlers.NewDirectoryHandler(directoryService),
		Calendar:       handlers.NewCalendarHandler(calendarService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
