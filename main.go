package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mkobayashi-dev/portfolio-site-backend/api"
	"github.com/mkobayashi-dev/portfolio-site-backend/auth"
	appconfig "github.com/mkobayashi-dev/portfolio-site-backend/config"
	"github.com/mkobayashi-dev/portfolio-site-backend/database"
	"github.com/mkobayashi-dev/portfolio-site-backend/models"
	"github.com/mkobayashi-dev/portfolio-site-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		connStr = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			getEnv("SUPABASE_DB_HOST", ""),
			getEnv("SUPABASE_DB_USER", ""),
			getEnv("SUPABASE_DB_PASSWORD", ""),
			getEnv("SUPABASE_DB_NAME", ""),
			getEnv("SUPABASE_DB_PORT", "5432"),
		)
	}

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
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		fmt.Printf("Error testing database connection: %v\n", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		fmt.Printf("Error migrating database schema: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	if err := seedAdminUser(currentDB); err != nil {
		fmt.Printf("Error seeding admin user: %v\n", err)
		os.Exit(1)
	}

	uploader, err := buildUploader()
	if err != nil {
		fmt.Printf("Error initializing storage client: %v\n", err)
		os.Exit(1)
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, uploader)
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

// buildUploader constructs the S3 client, provisioner and uploader from
// the server-only storage credentials.
func buildUploader() (*storage.Uploader, error) {
	c := appconfig.New()

	client, err := storage.NewClient(context.Background(), storage.Config{
		Endpoint:  appconfig.GetString(c, "STORAGE_ENDPOINT", ""),
		Region:    appconfig.GetString(c, "STORAGE_REGION", "us-east-1"),
		AccessKey: appconfig.GetString(c, "STORAGE_ACCESS_KEY", ""),
		SecretKey: appconfig.GetString(c, "STORAGE_SECRET_KEY", ""),
	})
	if err != nil {
		return nil, err
	}

	provisioner := storage.NewProvisioner(client)
	publicBaseURL := appconfig.GetString(c, "STORAGE_PUBLIC_BASE_URL", appconfig.GetString(c, "STORAGE_ENDPOINT", ""))
	maxBytes := appconfig.GetInt64(c, "MAX_UPLOAD_BYTES", storage.DefaultMaxUploadBytes)

	return storage.NewUploader(client, provisioner, publicBaseURL, maxBytes), nil
}

// seedAdminUser creates the admin account on first boot so the mutation
// surface is reachable without manual database edits.
func seedAdminUser(db database.Database) error {
	count, err := db.UserRepo().Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		fmt.Println("No users exist and ADMIN_EMAIL/ADMIN_PASSWORD are unset; skipping admin seed")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         getEnv("ADMIN_NAME", "Admin"),
		PasswordHash: hash,
	}
	if err := db.UserRepo().Add(&admin); err != nil {
		return err
	}

	fmt.Printf("Seeded admin user %s\n", email)
	return nil
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
