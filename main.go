package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	api "github.com/bbarboza/portfolio-backend/api"
	"github.com/bbarboza/portfolio-backend/database"
	"github.com/bbarboza/portfolio-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	seedCfg := database.SeedConfig{
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminName:     getEnv("ADMIN_NAME", ""),
		SampleContent: getEnv("SEED_SAMPLE_CONTENT", "true") == "true",
	}

	ctx := context.Background()

	var store database.Store
	dbType := getEnv("DB_TYPE", "memory")
	fmt.Printf("DB_TYPE: %s\n", dbType)
	switch dbType {
	case "memory":
		memStore, err := database.NewMemory(seedCfg)
		if err != nil {
			fmt.Printf("Error initializing in-memory store: %v\n", err)
			os.Exit(1)
		}
		store = memStore

	case "postgres":
		connStr := getEnv("DATABASE_URL", "")
		if connStr == "" {
			connStr = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
				getEnv("DB_HOST", "localhost"),
				getEnv("DB_USER", "postgres"),
				getEnv("DB_PASSWORD", ""),
				getEnv("DB_NAME", "portfolio"),
				getEnv("DB_PORT", "5432"),
				getEnv("DB_SSLMODE", "disable"),
			)
		}
		fmt.Println("Connecting to Postgres database...")

		newLogger := logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             10 * time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		)

		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  connStr,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt:    false,
			Logger:         newLogger,
			TranslateError: true,
		})
		if err != nil {
			fmt.Printf("Error connecting to database: %v\n", err)
			os.Exit(1)
		}

		// Enable required PostgreSQL extensions
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
			fmt.Printf("Error enabling uuid-ossp extension: %v\n", err)
			os.Exit(1)
		}

		// Test database connection
		var result int
		if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
			fmt.Printf("Error testing database connection: %v\n", err)
			os.Exit(1)
		}

		pgStore := database.NewPostgres(db)
		if replicaURL := getEnv("DATABASE_REPLICA_URL", ""); replicaURL != "" {
			if err := pgStore.UseReplica(postgres.Open(replicaURL)); err != nil {
				fmt.Printf("Error registering read replica: %v\n", err)
				os.Exit(1)
			}
		}

		if err := pgStore.Migrate(ctx); err != nil {
			fmt.Printf("Error migrating database schema: %v\n", err)
			os.Exit(1)
		}
		if err := pgStore.Seed(ctx, seedCfg); err != nil {
			fmt.Printf("Error seeding database: %v\n", err)
			os.Exit(1)
		}
		store = pgStore

	default:
		fmt.Println("Unsupported DB_TYPE. Exiting...")
		os.Exit(1)
	}

	mailer := services.NewMailer(
		getEnv("RESEND_API_KEY", ""),
		getEnv("RESEND_FROM_EMAIL", ""),
	)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(store, asMailer(mailer))
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// asMailer keeps a nil *services.Mailer from becoming a non-nil interface.
func asMailer(m *services.Mailer) api.Mailer {
	if m == nil {
		return nil
	}
	return m
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

// getEnv returns the value of the environment variable key or a fallback value.
func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
