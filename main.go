package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ruma/config"
	"ruma/cron"
	"ruma/database"
	"ruma/database/repository"
	"ruma/handlers"
	"ruma/middleware"
	"ruma/routes"
	"ruma/services/dialogue"
	"ruma/services/gateway"
	"ruma/services/messaging"
	"ruma/services/session"
	"ruma/services/tasks"
	"ruma/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories.
	var (
		repos       repository.Set
		mongoClient *mongo.Client
	)
	switch config.AppConfig.DatabaseDriver {
	case "memory":
		logger.Warn("main: using in-memory repositories, data is lost on restart")
		repos = repository.NewMemorySet()
	default:
		if err := database.InitDB(logger.Named("mongo")); err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		mongoClient = database.MongoClient
		repos = repository.NewMongoSet(database.Database())
	}

	gw := &gateway.DefaultGateway{
		Bookings: repos.Bookings,
		Rooms:    repos.Rooms,
		Admins:   repos.Admins,
		Logger:   logger.Named("gateway"),
	}
	if cfg := config.AppConfig; cfg.AdminUsername != "" {
		created, err := gw.EnsureAdmin(rootCtx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to bootstrap admin: %v", err)
		}
		if created {
			logger.Info("main: bootstrap admin created", zap.String("username", cfg.AdminUsername))
		}
	}

	// sessions.
	var (
		sessions    session.Store
		redisClient *redis.Client
	)
	switch config.AppConfig.SessionBackend {
	case "redis":
		if err := utils.InitSessionCache(); err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		redisClient = utils.GetSessionCacheClient()
		sessions = session.NewRedisStore(redisClient, config.AppConfig.SessionTTL, logger.Named("sessions"))
	default:
		mem := session.NewMemoryStore(config.AppConfig.SessionTTL)
		mem.StartSweeper(rootCtx, time.Minute)
		sessions = mem
	}

	messenger, err := messaging.NewLineMessenger(config.AppConfig.LineChannelToken, logger.Named("line"))
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	engine := dialogue.New(sessions, gw, logger.Named("dialogue"), config.AppConfig.Location())

	// reminders.
	var (
		reminderClient *asynq.Client
		reminderWorker *asynq.Server
	)
	if config.AppConfig.ReminderEnabled {
		redisOpts := asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}
		reminderClient = asynq.NewClient(redisOpts)
		engine.Reminders = tasks.NewAsynqScheduler(reminderClient, config.AppConfig.Location(), config.AppConfig.ReminderLead, logger.Named("reminders"))
		reminderWorker = cron.InitReminderWorker(rootCtx, messenger, gw, logger.Named("reminders"))
	}

	utils.StartHealthMonitor(rootCtx, redisClient, mongoClient)

	webhookHandler := handlers.NewWebhookHandler(config.AppConfig.LineChannelSecret, engine, messenger, logger.Named("webhook"))
	handlerBundle := &handlers.HandlerBundle{
		WebhookHandler: webhookHandler.HandleWebhook,
		HealthHandler:  handlers.HealthHandler,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(utils.ErrorHandler())
	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.MaxRequestsPerMin)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	stop()

	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}
	if reminderClient != nil {
		_ = reminderClient.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := database.Close(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to close MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
