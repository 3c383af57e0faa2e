package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/rotatijuca/excursio-backend/handlers"
	"github.com/rotatijuca/excursio-backend/repository"
	"github.com/rotatijuca/excursio-backend/routes"
	"github.com/rotatijuca/excursio-backend/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Initialize New Relic
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("Excursio API"),
		newrelic.ConfigLicense(os.Getenv("NEW_RELIC_LICENSE_KEY")),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize New Relic: %v", err)
	}

	// Pick the backing store
	store, err := buildStore()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer repository.CloseDB()

	// Initialize services
	hub := services.NewEventHub()
	splitService := services.NewSplitService()
	ledgerService := services.NewLedgerService(store)
	excursionService := services.NewExcursionService(store, hub)
	paymentService := services.NewPaymentService(ledgerService, splitService, hub, paymentDelay())
	bookingService := services.NewBookingService(store, excursionService, paymentService, hub)
	withdrawalService := services.NewWithdrawalService(store, ledgerService)
	chatService := services.NewChatService(store, excursionService, hub)
	analyticsService := services.NewAnalyticsService(store)
	excelService := services.NewExcelService(ledgerService, withdrawalService, excursionService)
	authService := services.NewAuthService(adminPassword())

	api := handlers.New(
		excursionService,
		bookingService,
		paymentService,
		ledgerService,
		withdrawalService,
		chatService,
		analyticsService,
		excelService,
		authService,
		hub,
	)

	// Set up Gin router
	router := gin.Default()

	// Add New Relic middleware
	if app != nil {
		router.Use(nrgin.Middleware(app))
	}

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Change to your frontend URL in production
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Set up routes
	routes.SetupRoutes(router, api)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	log.Printf("Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildStore selects the storage backend from the STORAGE environment
// variable: "postgres" for the database, anything else for the in-memory
// store with an optional JSON snapshot file.
func buildStore() (repository.Store, error) {
	if os.Getenv("STORAGE") == "postgres" {
		if err := repository.InitDB(); err != nil {
			return nil, err
		}
		store := repository.NewPostgresStore(repository.GetDB())
		if err := store.EnsureSchema(); err != nil {
			return nil, err
		}
		log.Println("Using PostgreSQL storage")
		return store, nil
	}

	snapshotPath := os.Getenv("SNAPSHOT_FILE")
	if snapshotPath == "" {
		snapshotPath = "excursio-data.json"
	}
	store, err := repository.NewMemStore(snapshotPath)
	if err != nil {
		return nil, err
	}
	log.Printf("Using in-memory storage with snapshot %s", snapshotPath)
	return store, nil
}

func adminPassword() string {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("Warning: ADMIN_PASSWORD not set, using default")
	}
	return password
}

func paymentDelay() time.Duration {
	ms, err := strconv.Atoi(os.Getenv("PAYMENT_DELAY_MS"))
	if err != nil || ms < 0 {
		ms = 2000
	}
	return time.Duration(ms) * time.Millisecond
}
