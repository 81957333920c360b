package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	cartControllers "github.com/DevNutsPk/demoEcommerce/controllers/cart"
	"github.com/DevNutsPk/demoEcommerce/gateway"
	"github.com/DevNutsPk/demoEcommerce/models"
	"github.com/DevNutsPk/demoEcommerce/reconciler"
	"github.com/DevNutsPk/demoEcommerce/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.GuestDevice{},
		&models.GuestCartRecord{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Upstream gateways
	remote, err := gateway.NewCartServiceClient()
	if err != nil {
		log.Fatalf("❌ Cart service gateway setup failed: %v", err)
	}
	catalog, err := gateway.NewCatalogClient()
	if err != nil {
		log.Fatalf("❌ Catalog gateway setup failed: %v", err)
	}

	// Cart session manager
	manager := reconciler.NewManager(db, remote, catalog)
	manager.SetNotifier(cartControllers.BroadcastSyncEvent)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, manager)

	// Expire stale guest devices once a day
	go startGuestDeviceCleanup(db, 24*time.Hour)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// startGuestDeviceCleanup removes expired guest devices and their cart
// records on a fixed interval.
func startGuestDeviceCleanup(db *gorm.DB, interval time.Duration) {
	for {
		time.Sleep(interval)

		var expired []models.GuestDevice
		if err := db.Where("expires_at < ?", time.Now()).Find(&expired).Error; err != nil {
			log.Printf("❌ Failed to list expired guest devices: %v", err)
			continue
		}
		for _, device := range expired {
			if err := db.Delete(&models.GuestCartRecord{}, "storage_key = ?", "guest_cart:"+device.ID).Error; err != nil {
				log.Printf("❌ Failed to remove cart record for %s: %v", device.ID, err)
				continue
			}
			if err := db.Delete(&device).Error; err != nil {
				log.Printf("❌ Failed to remove guest device %s: %v", device.ID, err)
				continue
			}
		}
		if len(expired) > 0 {
			log.Printf("🗑️ Removed %d expired guest devices", len(expired))
		}
	}
}
