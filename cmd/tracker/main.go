package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/mowglila/lugia-tracker/internal/client/ebay"
	"github.com/mowglila/lugia-tracker/internal/client/pricecharting"
	"github.com/mowglila/lugia-tracker/internal/config"
	cronrunner "github.com/mowglila/lugia-tracker/internal/cron"
	"github.com/mowglila/lugia-tracker/internal/db"
	"github.com/mowglila/lugia-tracker/internal/handler"
	"github.com/mowglila/lugia-tracker/internal/logger"
	"github.com/mowglila/lugia-tracker/internal/models"
	gormrepository "github.com/mowglila/lugia-tracker/internal/repository/gorm"
	"github.com/mowglila/lugia-tracker/internal/service"

	_ "github.com/mowglila/lugia-tracker/docs"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CT_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("CT_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	settingsSvc := &service.SystemSettingsService{Repo: store}
	if err := settingsSvc.EnsureDefaultSwitches(context.Background()); err != nil {
		logger.Warn("init default system switches failed", zap.Error(err))
	}

	if err := seedTrackedCard(context.Background(), store, cfg.TrackedCard, logger); err != nil {
		logger.Fatal("seed tracked card failed", zap.Error(err))
	}

	ebayHTTP := &http.Client{Timeout: cfg.Ebay.Timeout}
	ebayClient := ebay.NewClient(ebayHTTP, ebay.Options{
		BaseURL:      cfg.Ebay.BaseURL,
		TokenURL:     cfg.Ebay.TokenURL,
		ClientID:     cfg.Ebay.ClientID,
		ClientSecret: cfg.Ebay.ClientSecret,
		Marketplace:  cfg.Ebay.Marketplace,
		CategoryID:   cfg.Ebay.CategoryID,
	})
	pcHTTP := &http.Client{Timeout: cfg.PriceCharting.Timeout}
	pcClient := pricecharting.NewClient(pcHTTP, cfg.PriceCharting.BaseURL, cfg.PriceCharting.APIKey)

	listingSyncSvc := &service.ListingSyncService{
		Repo:      store,
		Feed:      ebayClient,
		Logger:    logger,
		PageLimit: cfg.ListingSync.PageLimit,
		MaxPages:  cfg.ListingSync.MaxPages,
	}
	marketValueSvc := &service.MarketValueSyncService{
		Repo:        store,
		Source:      pcClient,
		Logger:      logger,
		MinInterval: cfg.MarketValueSync.MinInterval,
	}
	querySvc := &service.ListingQueryService{Repo: store}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	cardsHandler := &handler.CardsHandler{Repo: store}
	cardsHandler.Register(engine)
	listingsHandler := &handler.ListingsHandler{Query: querySvc}
	listingsHandler.Register(engine)
	marketValuesHandler := &handler.MarketValuesHandler{Repo: store}
	marketValuesHandler.Register(engine)
	syncHandler := &handler.SyncHandler{
		Repo:        store,
		Listings:    listingSyncSvc,
		MarketValue: marketValueSvc,
		Settings:    settingsSvc,
	}
	syncHandler.Register(engine)
	settingsHandler := &handler.SettingsHandler{Repo: store}
	settingsHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled && cfg.ListingSync.Enabled {
		_, err := cronRunner.Add(cfg.Cron.ListingSync, func(ctx context.Context) {
			if !settingsSvc.IsEnabled(ctx, service.FeatureListingSync, true) {
				return
			}
			results, err := listingSyncSvc.SyncAll(ctx)
			if err != nil {
				logger.Warn("cron listing sync failed", zap.Error(err))
				return
			}
			for _, result := range results {
				logger.Info("cron listing sync ok",
					zap.Uint64("card_id", result.CardID),
					zap.Int("pages", result.Pages),
					zap.Int("found", result.TotalFound),
					zap.Int("valid", result.Valid),
					zap.Int("deactivated", result.Deactivated),
					zap.Bool("complete", result.Complete),
				)
			}
		})
		if err != nil {
			logger.Warn("cron register listing sync failed", zap.Error(err))
		}
	}
	if cfg.Cron.Enabled && cfg.MarketValueSync.Enabled {
		_, err := cronRunner.Add(cfg.Cron.MarketValueSync, func(ctx context.Context) {
			if !settingsSvc.IsEnabled(ctx, service.FeatureMarketValueSync, true) {
				return
			}
			results, err := marketValueSvc.SyncAll(ctx)
			if err != nil {
				logger.Warn("cron market value sync failed", zap.Error(err))
				return
			}
			for _, result := range results {
				if result.Skipped {
					continue
				}
				logger.Info("cron market value sync ok",
					zap.Uint64("card_id", result.CardID),
					zap.Int("grades", result.Grades),
				)
			}
		})
		if err != nil {
			logger.Warn("cron register market value sync failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// seedTrackedCard inserts the configured card on first boot. An existing
// row for the same search query is left untouched.
func seedTrackedCard(ctx context.Context, store *gormrepository.Store, cfg config.TrackedCardConfig, logger *zap.Logger) error {
	if cfg.SearchQuery == "" {
		return nil
	}
	existing, err := store.GetTrackedCardByQuery(ctx, cfg.SearchQuery)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	card := &models.TrackedCard{
		CardName:        cfg.CardName,
		SetName:         cfg.SetName,
		CardNumber:      cfg.CardNumber,
		SearchQuery:     cfg.SearchQuery,
		PriceChartingID: cfg.PriceChartingID,
		Active:          true,
	}
	if err := store.UpsertTrackedCard(ctx, card); err != nil {
		return err
	}
	logger.Info("seeded tracked card",
		zap.String("card", cfg.CardName),
		zap.String("query", cfg.SearchQuery),
	)
	return nil
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
