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

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"hotel-lifecycle-backend/config"
	"hotel-lifecycle-backend/controllers"
	"hotel-lifecycle-backend/middleware"
	"hotel-lifecycle-backend/routes"
	"hotel-lifecycle-backend/services"
)

var configPath string

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	rootCmd := &cobra.Command{
		Use:   "hotel-lifecycle-backend",
		Short: "Room/booking lifecycle and availability coordinator",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")

	rootCmd.AddCommand(serveCmd(), migrateCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			db, err := config.Connect(&cfg.Database)
			if err != nil {
				return fmt.Errorf("database connect: %w", err)
			}
			if err := config.Seed(db); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			log.Println("Database connection established and migrations applied")

			middleware.InitJWT(cfg.Auth.JWTSecret)

			// Services
			coordinator := services.NewCoordinator(db)
			roomService := services.NewRoomService(db)
			bookingService := services.NewBookingService(db, coordinator)
			maintenanceService := services.NewMaintenanceService(db)
			staffService := services.NewStaffService(db)
			statsService := services.NewStatsService(db, coordinator, time.Duration(cfg.Stats.CacheTTLSeconds)*time.Second)
			defer statsService.Close()

			// Controllers
			roomController := controllers.NewRoomController(roomService, coordinator)
			bookingController := controllers.NewBookingController(bookingService, coordinator)
			maintenanceController := controllers.NewMaintenanceController(maintenanceService, coordinator)
			authController := controllers.NewAuthController(staffService, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
			statsController := controllers.NewStatsController(statsService)

			router := routes.SetupRouter(cfg, roomController, bookingController, maintenanceController, authController, statsController)

			addr := fmt.Sprintf(":%d", cfg.Server.Port)
			srv := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadTimeout:       10 * time.Second,
				ReadHeaderTimeout: 5 * time.Second,
				WriteTimeout:      20 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			go func() {
				log.Printf("Server starting on %s", addr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("ListenAndServe(): %v", err)
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			<-quit
			log.Println("Shutdown signal received, shutting down server...")

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("forced shutdown: %w", err)
			}

			log.Println("Server stopped gracefully")
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if _, err := config.Connect(&cfg.Database); err != nil {
				return fmt.Errorf("database connect: %w", err)
			}
			log.Println("Migrations applied")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the default staff account and starter rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			db, err := config.Connect(&cfg.Database)
			if err != nil {
				return fmt.Errorf("database connect: %w", err)
			}
			if err := config.Seed(db); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			log.Println("Seeding complete")
			return nil
		},
	}
}
