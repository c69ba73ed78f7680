package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ronautumn/hhnyc-api/cart"
	"github.com/ronautumn/hhnyc-api/config"
	checkoutController "github.com/ronautumn/hhnyc-api/controllers/checkout"
	orderController "github.com/ronautumn/hhnyc-api/controllers/order"
	"github.com/ronautumn/hhnyc-api/models"
	"github.com/ronautumn/hhnyc-api/notify"
	"github.com/ronautumn/hhnyc-api/routes"
	"github.com/ronautumn/hhnyc-api/store"
	"github.com/ronautumn/hhnyc-api/store/airtable"
	"github.com/ronautumn/hhnyc-api/store/catalog"
	"github.com/ronautumn/hhnyc-api/store/database"
	"github.com/ronautumn/hhnyc-api/store/local"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	log.Info("✅ Starting HHNYC storefront API...")

	// Local JSON staging store, always available.
	staging, err := local.New(cfg.DataDir, log)
	if err != nil {
		log.Fatalf("❌ Failed to open local data store: %v", err)
	}

	// Remote record store. Missing credentials drop the catalog into
	// local-only mode; the sync endpoints push staged records once the
	// remote comes back.
	var products store.ProductStore = staging
	var categories store.CategoryStore = staging
	var syncer *store.Syncer
	remote, err := airtable.New(cfg.AirtableAPIKey, cfg.AirtableBaseID, log)
	if err != nil {
		log.Warnw("⚠️ Airtable not configured, catalog runs from local files", "error", err)
	} else {
		products = remote
		categories = remote
		syncer = store.NewSyncer(staging, remote, log)
	}

	// Catalog cache in front of whichever store won.
	rdb := initRedis(cfg, log)
	cache := catalog.New(products, categories, rdb, cfg.CatalogCacheTTL, log)

	// Orders: relational store when configured, local file store otherwise.
	var orders store.OrderStore = staging
	var settings checkoutController.SettingsSource = staticSettings{}
	if cfg.HasDatabase() {
		db := initDatabase(cfg, log)
		dbStore := database.New(db)
		if err := dbStore.SeedDeliverySettings(context.Background()); err != nil {
			log.Fatalf("❌ Failed to seed delivery settings: %v", err)
		}
		orders = dbStore
		settings = dbStore
	} else {
		log.Warn("⚠️ Postgres not configured, orders run from local files")
	}

	// Gin setup
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, routes.Deps{
		Cfg:        cfg,
		Products:   cache,
		Categories: cache,
		Orders:     orders,
		Settings:   settings,
		Syncer:     syncer,
		Carts:      cart.NewStore(),
		Mailer:     notify.New(cfg.SMTP, log),
		Feed:       orderController.NewFeed(),
		Log:        log,
	})

	// Nightly backup of the data/ JSON files at 2 AM, keeping 4 days.
	go startDailyBackupAtFixedTime(cfg.DataDir, filepath.Join(cfg.DataDir, "backup"), 4*24*time.Hour, 2, 0, log)

	log.Infof("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// staticSettings is the borough schedule used when no database is configured.
type staticSettings struct{}

func (staticSettings) DeliverySettings(ctx context.Context) ([]models.DeliverySetting, error) {
	return []models.DeliverySetting{
		{Borough: "Manhattan", DeliveryFee: 10, FreeDeliveryMinimum: 100},
		{Borough: "Brooklyn", DeliveryFee: 5, FreeDeliveryMinimum: 50},
		{Borough: "Queens", DeliveryFee: 7, FreeDeliveryMinimum: 75},
		{Borough: "Bronx", DeliveryFee: 8, FreeDeliveryMinimum: 100},
		{Borough: "Staten Island", DeliveryFee: 10, FreeDeliveryMinimum: 125},
	}, nil
}

// initDatabase sets up the GORM DB connection and runs migrations.
func initDatabase(cfg *config.Config, log *zap.SugaredLogger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.DeliverySetting{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}
	return db
}

// initRedis connects the catalog cache. Redis is optional; nil disables it.
func initRedis(cfg *config.Config, log *zap.SugaredLogger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warnw("⚠️ Redis unreachable, catalog cache disabled", "error", err)
		return nil
	}
	return rdb
}

// startDailyBackupAtFixedTime backs up the JSON data files daily at a fixed
// hour and removes old backups.
func startDailyBackupAtFixedTime(srcDir, backupDir string, retention time.Duration, hour, min int, log *zap.SugaredLogger) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		time.Sleep(next.Sub(now))

		timestamp := time.Now().Format("2006-01-02_15-04-05")
		destDir := filepath.Join(backupDir, timestamp)

		if err := copyJSONFiles(srcDir, destDir); err != nil {
			log.Warnf("❌ Failed to back up data files: %v", err)
		} else {
			log.Infof("✅ Data files backed up to %s", destDir)
		}

		cleanupOldBackups(backupDir, retention, log)
	}
}

// copyJSONFiles copies the top-level .json files from src into dest.
func copyJSONFiles(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := copyFile(filepath.Join(src, entry.Name()), filepath.Join(dest, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// cleanupOldBackups removes backup folders older than retention duration.
func cleanupOldBackups(backupDir string, retention time.Duration, log *zap.SugaredLogger) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-retention)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folderPath := filepath.Join(backupDir, entry.Name())
		info, err := os.Stat(folderPath)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(folderPath); err != nil {
				log.Warnf("❌ Failed to remove old backup %s: %v", folderPath, err)
			}
		}
	}
}
