package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"canela-backend/internal/client"
	"canela-backend/internal/config"
	"canela-backend/internal/repository"
	"canela-backend/internal/server"
	"canela-backend/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitMysqlClient(cfg.DatabaseURL)

	ctx := context.Background()
	uploader, err := client.NewStorageClient(ctx, &cfg.Storage)
	if err != nil {
		log.Fatalf("Storage client init failed: %v", err)
	}
	mailer, err := client.NewMailClient(&cfg.Mail)
	if err != nil {
		log.Fatalf("Mail client init failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	pendingRepo := repository.NewPendingPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)

	svcs := server.Services{
		Auth:    service.NewAuthService(userRepo, mailer, cfg.JWTSecret, cfg.ClientURL),
		User:    service.NewUserService(userRepo),
		Product: service.NewProductService(productRepo, uploader),
		Cart:    service.NewCartService(cartRepo, productRepo),
		Order: service.NewOrderService(
			db,
			orderRepo,
			productRepo,
			cartRepo,
			pendingRepo,
			userRepo,
			mailer,
			cfg.Mail.OperatorAddress,
			cfg.Mail.FallbackAddress,
		),
		Review:      service.NewReviewService(reviewRepo, userRepo, uploader),
		Application: service.NewApplicationService(appRepo, uploader, mailer, cfg.Mail.OperatorAddress),
		Invoice:     service.NewInvoiceService(invoiceRepo),
		Recipe:      service.NewRecipeService(recipeRepo, uploader),
		Chat:        service.NewChatService(),
	}

	srv := server.NewServer(svcs, uploader, mailer, cfg.Mail.OperatorAddress)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
