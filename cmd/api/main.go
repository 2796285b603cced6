package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/jurisconnect/jurisconnect-api/internal/config"
	"github.com/jurisconnect/jurisconnect-api/internal/database"
	"github.com/jurisconnect/jurisconnect-api/internal/handlers"
	"github.com/jurisconnect/jurisconnect-api/internal/jobs"
	"github.com/jurisconnect/jurisconnect-api/internal/middleware"
	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/repository"
	"github.com/jurisconnect/jurisconnect-api/internal/services"
	"github.com/jurisconnect/jurisconnect-api/internal/storage"
	"github.com/jurisconnect/jurisconnect-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Initialize attachment storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage", "path", cfg.StoragePath)

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services and handlers
	svcs := services.NewServices(repos, worker, store, cfg)
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Health check (public, outside the rate limit)
	router.GET("/health", h.Health.Index)

	// API routes, rate limited per client IP
	api := router.Group("/api")
	api.Use(rateLimit(cfg))
	{
		// Authentication (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signin", h.Auth.SignIn)
			auth.POST("/register/client", h.Auth.RegisterClient)
			auth.POST("/register/correspondent", h.Auth.RegisterCorrespondent)
			auth.POST("/verify", middleware.Auth(cfg.JWTSecret), h.Auth.Verify)
		}

		// Protected routes (requires authentication)
		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Demand lifecycle
			demands := protected.Group("/demandas")
			{
				demands.POST("", middleware.RequireProfile(models.ProfileClient), h.Demand.Create)
				demands.GET("/minhas", h.Demand.Mine)
				demands.GET("/:id", h.Demand.Show)
				demands.PUT("/:id", h.Demand.Update)
				demands.PATCH("/status/:id", h.Demand.UpdateStatus)
				demands.PATCH("/assign/:id", middleware.RequireAdmin(), h.Demand.Assign)
				demands.GET("/:id/logs", h.Demand.Logs)
				demands.POST("/:id/anexos", h.Attachment.Upload)
				demands.GET("/:id/anexos", h.Attachment.List)
			}

			// Attachments
			attachments := protected.Group("/anexos")
			{
				attachments.GET("/:id/download", h.Attachment.Download)
				attachments.DELETE("/:id", h.Attachment.Delete)
			}

			// Client roster (admin only)
			clients := protected.Group("/clientes")
			clients.Use(middleware.RequireAdmin())
			{
				clients.GET("", h.Client.Index)
				clients.POST("", h.Client.Create)
				clients.GET("/:id", h.Client.Show)
				clients.PUT("/:id", h.Client.Update)
				clients.PATCH("/:id/status", h.Client.SetActive)
			}

			// Correspondent roster (admin only)
			correspondents := protected.Group("/correspondentes")
			correspondents.Use(middleware.RequireAdmin())
			{
				correspondents.GET("", h.Correspondent.Index)
				correspondents.POST("", h.Correspondent.Create)
				correspondents.GET("/disponiveis", h.Correspondent.Available)
				correspondents.GET("/pendentes", h.Correspondent.Pending)
				correspondents.GET("/:id", h.Correspondent.Show)
				correspondents.PUT("/:id", h.Correspondent.Update)
				correspondents.PATCH("/:id/aprovar", h.Correspondent.Approve)
				correspondents.PATCH("/:id/reprovar", h.Correspondent.Reject)
				correspondents.PATCH("/:id/status", h.Correspondent.SetActive)
			}

			// Financial ledger (admin only)
			financial := protected.Group("/financeiro")
			financial.Use(middleware.RequireAdmin())
			{
				financial.POST("", h.Financial.Create)
				financial.GET("", h.Financial.Index)
				financial.GET("/resumo", h.Financial.Summary)
				financial.GET("/:id", h.Financial.Show)
				financial.PUT("/:id", h.Financial.Update)
				financial.DELETE("/:id", h.Financial.Delete)
			}

			// Reports (admin only)
			reports := protected.Group("/relatorios")
			reports.Use(middleware.RequireAdmin())
			{
				reports.GET("/demandas-status", h.Report.DemandsByStatus)
				reports.GET("/faturamento-mensal", h.Report.MonthlyRevenue)
				reports.GET("/novos-usuarios", h.Report.NewUsers)
				reports.GET("/desempenho-correspondentes", h.Report.CorrespondentPerformance)
				reports.GET("/financeiro/export", h.Report.ExportFinancial)
			}

			// Dashboard (admin only)
			protected.GET("/dashboard", middleware.RequireAdmin(), h.Dashboard.Index)
		}
	}

	return router
}

// rateLimit applies a fixed-window per-IP limit to the API surface
func rateLimit(cfg *config.Config) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: time.Duration(cfg.RateLimitWindowMinute) * time.Minute,
		Limit:  cfg.RateLimitRequests,
	}
	instance := limiter.New(memory.NewStore(), rate)

	return mgin.NewMiddleware(instance, mgin.WithLimitReachedHandler(func(c *gin.Context) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"message": "Muitas requisições. Tente novamente em alguns minutos",
		})
	}))
}
