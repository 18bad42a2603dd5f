package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestBody = 64 << 10 // chat events and API writes are all small

type handlers struct {
	events     *handler.EventsHandler
	activities *handler.ActivitiesHandler
	goals      *handler.GoalsHandler
	habits     *handler.HabitsHandler
	summary    *handler.SummaryHandler
}

func setupRouter(cfg *config.Config, h handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(maxRequestBody))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// The transport bridge authenticates with its own shared secret upstream;
	// everything else is the web view behind short-lived tokens.
	router.POST("/api/events", h.events.HandleEvent)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		activities := protected.Group("/activities")
		{
			activities.GET("/ready", h.activities.ListReady)
			activities.GET("/completed", h.activities.ListCompleted)
			activities.POST("/:id/organize", h.activities.Organize)
			activities.POST("/:id/focus/start", h.activities.StartFocus)
			activities.POST("/:id/focus/finish", h.activities.FinishFocus)
			activities.POST("/:id/evaluate", h.activities.Evaluate)
			activities.POST("/:id/split", h.activities.Split)
			activities.POST("/:id/abandon", h.activities.Abandon)
		}

		goals := protected.Group("/goals")
		{
			goals.GET("/", h.goals.List)
			goals.PATCH("/:id/status", h.goals.SetStatus)
		}

		habits := protected.Group("/habits")
		{
			habits.GET("/", h.habits.List)
			habits.POST("/:id/log", h.habits.Log)
		}

		protected.GET("/summary", h.summary.Get)
	}

	return router
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("priority_tag", utils.PriorityTagRule)
	}

	client, err := config.NewMongoClient(cfg.Database)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := repository.SetupIndexes(client.Database(cfg.Database.DatabaseName)); err != nil {
		log.Fatalf("indexes: %v", err)
	}

	store := repository.NewStore(client, cfg.Database)
	stores := usecase.Stores{
		Users:         store.Users(),
		Goals:         store.Goals(),
		Activities:    store.Activities(),
		Habits:        store.Habits(),
		Sessions:      store.Sessions(),
		Conversations: store.Conversations(),
		Atomic:        store,
	}

	var wizardCache usecase.ConversationCache
	var sweepLocker usecase.SweepLocker
	cache, err := services.NewConversationCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Redis unavailable, wizard state served from mongo only: %v", err)
	} else {
		wizardCache = cache
		sweepLocker = cache
		defer cache.Close()
	}

	users := usecase.NewUserService(stores)
	goals := usecase.NewGoalService(stores)
	activities := usecase.NewActivityService(stores)
	habits := usecase.NewHabitService(stores)
	wizard := usecase.NewWizardService(stores, wizardCache, users, goals, activities, habits)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OutboundWebhookURL != "" {
		notifier := services.NewWebhookNotifier(cfg.OutboundWebhookURL)
		reminders := usecase.NewReminderService(stores, wizard, notifier, sweepLocker)
		go reminders.Run(ctx, cfg.SweepInterval)
	} else {
		log.Println("OUTBOUND_WEBHOOK_URL not set, reminder sweeps disabled")
	}

	if cfg.SystemMetricsEnabled {
		utils.StartSystemMetrics(15 * time.Second)
	}

	router := setupRouter(cfg, handlers{
		events:     handler.NewEventsHandler(users, activities, wizard, cfg.JWTSecret, cfg.TokenTTL, cfg.AppBaseURL),
		activities: handler.NewActivitiesHandler(activities),
		goals:      handler.NewGoalsHandler(goals),
		habits:     handler.NewHabitsHandler(habits),
		summary:    handler.NewSummaryHandler(users),
	})

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
