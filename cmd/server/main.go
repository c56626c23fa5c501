package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kasrah-cms/internal/auth"
	"kasrah-cms/internal/cache"
	"kasrah-cms/internal/config"
	"kasrah-cms/internal/data"
	"kasrah-cms/internal/handler"
	"kasrah-cms/internal/logger"
	"kasrah-cms/internal/middleware"
	"kasrah-cms/internal/service"
	"kasrah-cms/internal/sitegen"
	"kasrah-cms/internal/sports"
	"kasrah-cms/web"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Pre-flight Checks ---
	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		log.Warn("Admin credentials are not configured; the admin API will reject all logins.")
	}

	// --- Database Initialization and Migration ---
	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(cfg.DB.Driver, cfg.DB.DSN, "migrations"); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB.Driver, cfg.DB.DSN, cfg.DB.MaxOpenConns)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- Session Management Setup ---
	sessionManager := scs.New()
	if cfg.DB.Driver == "sqlite3" {
		sessionManager.Store = sqlite3store.New(db.DB)
	} else {
		sessionManager.Store = mysqlstore.New(db.DB)
	}
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	// --- Authorization Setup ---
	log.Info("Initializing authorization...")
	enforcer, err := auth.NewEnforcer(cfg.DB.Driver, cfg.DB.DSN, "auth_model.conf")
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)
	log.Info("Authorization initialized and policies seeded.")

	// --- Cache Initialization ---
	log.Info("Initializing SQLite cache...")
	sportsCache, err := cache.New(cfg.Sports.CachePath)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer sportsCache.Close()
	log.Info("Cache initialized.")

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	articleRepository := data.NewSQLArticleRepository(db)
	settingsRepository := data.NewSQLSettingsRepository(db)
	adsRepository := data.NewSQLAdsRepository(db)

	generator := sitegen.NewGenerator(articleRepository, settingsRepository, log, cfg.Site, web.TemplateFS)
	regenerator := sitegen.NewRegenerator(generator, log, cfg.Sitemap.Interval)

	articleService := service.NewArticleService(articleRepository, regenerator, log)
	settingsService := service.NewSettingsService(settingsRepository, regenerator, log)
	adsService := service.NewAdsService(adsRepository)
	sportsClient := sports.NewClient(cfg.Sports, sportsCache, log)

	handlers := handler.Handlers{
		Articles: handler.NewArticleHandler(articleService, log),
		Auth:     handler.NewAuthHandler(cfg.Admin, sessionManager),
		Settings: handler.NewSettingsHandler(settingsService, log),
		Ads:      handler.NewAdsHandler(adsService),
		Sports:   handler.NewSportsHandler(sportsClient, log),
		Seo:      handler.NewSeoHandler(cfg.Site.URL, cfg.Site.OutputRoot),
		Static:   handler.NewStaticHandler(cfg.Site.OutputRoot, cfg.Site.ArticlesDir),
		Generate: handler.NewGenerateHandler(regenerator, log),
	}

	authzMiddleware := middleware.Authorizer(enforcer, sessionManager)
	errorMiddleware := middleware.Error(log)

	// --- Router Setup ---
	// The router is the central hub that directs incoming requests to the correct handlers.
	router := handler.NewRouter(handlers, authzMiddleware, errorMiddleware, sessionManager)

	// --- Startup Regeneration and Sitemap Schedule ---
	regenCtx, cancelRegen := context.WithCancel(context.Background())
	defer cancelRegen()
	go func() {
		succeeded, failed, err := regenerator.RegenerateAll(regenCtx)
		if err != nil {
			log.Error(err, "Startup site regeneration failed")
		} else {
			log.Info(fmt.Sprintf("Startup regeneration complete: %d pages built, %d failures", succeeded, failed))
		}
		// Start generates the sitemap immediately, then keeps it fresh on
		// the configured interval.
		regenerator.Start(regenCtx)
	}()

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err, "Could not start HTTP server")
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	cancelRegen()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
