package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"assetverse/billing"
	"assetverse/config"
	"assetverse/database"
	"assetverse/events"
	"assetverse/handlers"
	"assetverse/middleware"
	"assetverse/routes"
	"assetverse/store"
	"assetverse/utils"
	"assetverse/workflow"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	cfg := config.Load()

	client, err := database.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Disconnect(client)

	st := store.New(client, cfg.DBName)
	hub := events.NewHub()
	gateway := billing.NewStripeGateway(cfg.StripeSecretKey)
	wf := workflow.New(st, hub, gateway, cfg.ClientURL)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := wf.Billing.SeedPackages(seedCtx); err != nil {
		log.Printf("package seed warning: %v", err)
	}
	cancelSeed()

	tokens := utils.NewTokenIssuer(cfg.JWTKey, cfg.JWTExpiration)
	auth := middleware.NewAuthenticator(tokens)
	h := handlers.New(wf, tokens, hub)

	router := mux.NewRouter()
	routes.Register(router, h, auth)

	router.Use(middleware.Logging)
	router.Use(middleware.Recovery)
	router.Use(middleware.CORS)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("AssetVerse backend running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
