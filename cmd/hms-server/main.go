package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/platform/importer"
	"github.com/hms/hms/internal/platform/middleware"
	"github.com/hms/hms/internal/platform/telemetry"
	"github.com/hms/hms/internal/records"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms-server",
		Short: "Hospital Management API Server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the hospital management API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			importFile, _ := cmd.Flags().GetString("import")
			seed, _ := cmd.Flags().GetBool("seed")
			return runServer(importFile, seed)
		},
	}
	cmd.Flags().String("import", "", "CSV dataset to load before serving")
	cmd.Flags().Bool("seed", false, "Load demo data before serving")
	return cmd
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Validate a CSV patient dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if file == "" {
				file = cfg.ImportFile
			}
			if file == "" {
				return fmt.Errorf("--file is required (or set IMPORT_FILE)")
			}

			logger := newLogger(cfg)
			svc := records.NewService()
			count, err := importer.Run(svc, file, logger)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			fmt.Printf("Imported %d patient(s) from %s\n", count, file)
			return nil
		},
	}
	cmd.Flags().String("file", "", "Path to the CSV dataset")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Print the demo dataset loaded by serve --seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := records.NewService()
			seedDemoData(svc)
			for _, p := range svc.AllPatients() {
				fmt.Println(p)
			}
			for _, a := range svc.AllAppointments() {
				fmt.Println(a)
			}
			for _, l := range svc.AllBilling() {
				fmt.Println(l)
			}
			return nil
		},
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

// seedDemoData populates a fresh service with a small, fixed dataset so the
// API has something to show out of the box.
func seedDemoData(svc *records.Service) {
	svc.AddPatient(1, "Asha Rao", 42, "555-0101")
	svc.AddPatient(2, "Ben Otieno", 58, "555-0102")
	svc.AddPatient(3, "Carla Mendes", 30, "555-0103")

	svc.AddMedicalHistory(1, "Hypertension")
	svc.AddMedicalHistory(2, "Type 2 Diabetes")

	svc.ScheduleAppointment(1, "2026-09-03", "09:30")
	svc.ScheduleAppointment(2, "2026-09-01", "11:00")
	svc.ScheduleAppointment(3, "2026-09-02", "14:15")

	svc.AddToWaitingList(2)
	svc.AddToWaitingList(3)

	svc.GenerateBill(1, 250.00)
	svc.GenerateBill(2, 480.50)
	svc.AddPayment(2, 200.00, "2026-08-28")

	vp := svc.CreateVisitPlan(1, "2026-08-20", "Follow-up", "Dr. Keller")
	if vp != nil {
		svc.UpdateVisitPlanReport(vp.ID, "Stable hypertension", "Continue current medication", "Review in 3 months")
		svc.SetVisitPlanStatus(vp.ID, "Completed")
	}
}

func runServer(importFile string, seed bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)

	svc := records.NewService()
	if seed {
		seedDemoData(svc)
		logger.Info().Msg("loaded demo dataset")
	}
	if importFile == "" {
		importFile = cfg.ImportFile
	}
	if importFile != "" {
		count, err := importer.Run(svc, importFile, logger)
		if err != nil {
			logger.Fatal().Err(err).Str("file", importFile).Msg("failed to import dataset")
		}
		logger.Info().Int("patients", count).Str("file", importFile).Msg("imported dataset")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	metrics := telemetry.NewHTTPMetrics()
	e.Use(metrics.Middleware())
	e.GET("/metrics", metrics.Handler())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))
	records.NewHandler(svc).RegisterRoutes(apiV1)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
