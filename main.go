package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Autoloads .env file to supply environment variables
	_ "github.com/joho/godotenv/autoload"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"runcoach/internal/cache"
	"runcoach/internal/coach"
	"runcoach/internal/config"
	"runcoach/internal/database"
	"runcoach/internal/domain"
	"runcoach/internal/metrics"
	"runcoach/internal/middleware"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]

	if command == "help" {
		printUsage()
		return
	}

	// Load configuration
	cfg := config.Load()

	if command == "serve" {
		runServer(cfg)
		return
	}

	// Disable structured logging for CLI commands
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors
	})))

	svc, cleanup := buildService(cfg)
	defer cleanup()

	ctx := context.Background()

	switch command {
	case "import-plan":
		handleImportPlan(ctx, svc, os.Args[2:])
	case "import-activity":
		handleImportActivity(ctx, svc, os.Args[2:])
	case "show":
		handleShow(ctx, svc, os.Args[2:])
	case "weekly":
		handleWeekly(ctx, svc, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Error: Unknown command '%s'\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: runcoach <command> [args]

Commands:
  import-plan <file>             Import a training plan (JSON) into the session store
  import-activity <file> [date]  Archive recorded telemetry, segment laps and mark the session completed
  show [date]                    Show the session record for a date (default: today)
  weekly [week-start]            Show the weekly rollup (default: current week's Monday)
  serve                          Run the health/metrics server
  help                           Show this help`)
}

// buildService opens the store and optional cache and wires the service.
func buildService(cfg *config.Config) (*coach.Service, func()) {
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to open database: %v\n", err)
		os.Exit(1)
	}
	if err := db.Init(); err != nil {
		db.Close()
		fmt.Fprintf(os.Stderr, "Error: Failed to initialize database: %v\n", err)
		os.Exit(1)
	}

	var c cache.Cache
	if cfg.RedisURL != "" {
		c, err = cache.NewRedisCache(context.Background(), cfg.RedisURL)
		if err != nil {
			db.Close()
			fmt.Fprintf(os.Stderr, "Error: Failed to connect to redis: %v\n", err)
			os.Exit(1)
		}
	}

	return coach.NewService(db, c), func() { db.Close() }
}

func handleImportPlan(ctx context.Context, svc *coach.Service, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: import-plan requires a plan file")
		os.Exit(1)
	}

	payload, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to read plan file: %v\n", err)
		os.Exit(1)
	}

	if err := svc.ImportPlanPayload(ctx, payload); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to import plan: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Training plan imported")
}

func handleImportActivity(ctx context.Context, svc *coach.Service, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: import-activity requires a telemetry file")
		os.Exit(1)
	}

	payload, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to read telemetry file: %v\n", err)
		os.Exit(1)
	}

	var rec domain.ActivityRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to parse telemetry file: %v\n", err)
		os.Exit(1)
	}

	date := ""
	if len(args) > 1 {
		date = args[1]
	}

	if err := svc.ImportActivity(ctx, date, &rec); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to import activity: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Activity %d imported\n", rec.ActivityID)
}

func handleShow(ctx context.Context, svc *coach.Service, args []string) {
	var rec *domain.SessionRecord
	var err error
	if len(args) > 0 {
		rec, err = svc.Session(ctx, args[0])
	} else {
		rec, err = svc.TodaysSession(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to read session: %v\n", err)
		os.Exit(1)
	}
	if rec == nil {
		fmt.Println("No session found.")
		return
	}

	printSession(rec)
}

func printSession(rec *domain.SessionRecord) {
	fmt.Printf("%s (%s): %s", rec.Date, rec.DayOfWeek, rec.Type)
	if rec.PlannedDistanceKm > 0 {
		fmt.Printf(" %s planned", domain.FormatDistance(rec.PlannedDistanceKm*1000))
	}
	fmt.Println()
	if rec.Notes != "" {
		fmt.Printf("  Notes: %s\n", rec.Notes)
	}
	for _, e := range rec.Calendar {
		fmt.Printf("  Calendar: %s-%s %s\n", e.Start, e.End, e.Title)
	}
	for _, w := range rec.Weather {
		fmt.Printf("  Weather: %s %.0f°C %s\n", w.Time, w.TempC, w.Description)
	}
	for _, item := range rec.TimeScheduled {
		fmt.Printf("  Scheduled: %s-%s %s (%s)", item.Start, item.End, item.Title, item.Status)
		if item.ActualStart != "" {
			fmt.Printf(" started %s", item.ActualStart)
		}
		fmt.Println()
	}
	if rec.SessionCompleted {
		fmt.Printf("  Completed")
		if rec.ActualDistanceKm != nil {
			fmt.Printf(": %s", domain.FormatDistance(*rec.ActualDistanceKm*1000))
		}
		if rec.ActivityID != nil {
			fmt.Printf(" (activity %d)", *rec.ActivityID)
		}
		fmt.Println()
	}
	if rec.DataPoints != nil {
		for _, lap := range rec.DataPoints.Laps {
			pace := "N/A"
			if lap.PaceMS != nil {
				pace = domain.FormatPace(*lap.PaceMS)
			}
			fmt.Printf("  Lap %d: %s %s %s\n", lap.LapIndex,
				domain.FormatDistance(lap.DistanceMeters), pace, lap.Segment)
		}
	}
	if rec.CoachFeedback != "" {
		fmt.Printf("  Feedback: %s\n", rec.CoachFeedback)
	}
}

func handleWeekly(ctx context.Context, svc *coach.Service, args []string) {
	weekStart := currentWeekStart()
	if len(args) > 0 {
		weekStart = args[0]
	}

	summary, err := svc.Weekly(ctx, weekStart)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to compute weekly summary: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Week of %s: %d/%d sessions completed (%.1f%%)\n",
		summary.WeekStart, summary.CompletedSessions, summary.TotalSessions, summary.CompletionRate)
	fmt.Printf("  Planned %s, completed %s\n",
		domain.FormatDistance(summary.TotalDistancePlanned*1000),
		domain.FormatDistance(summary.TotalDistanceCompleted*1000))
	for _, day := range summary.Days {
		marker := " "
		if day.IsToday {
			marker = ">"
		}
		if !day.HasSession {
			fmt.Printf("%s %s %s: no session\n", marker, day.DayName[:3], day.Date)
			continue
		}
		status := "○"
		if day.SessionCompleted {
			status = "✓"
		}
		fmt.Printf("%s %s %s: %s (%.1fkm) %s\n", marker, day.DayName[:3], day.Date,
			day.SessionType, day.PlannedKm, status)
	}
}

func currentWeekStart() string {
	now := time.Now()
	offset := (int(now.Weekday()) + 6) % 7
	return now.AddDate(0, 0, -offset).Format(domain.DateFormat)
}

func runServer(cfg *config.Config) {
	// Set up logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting runcoach metrics server",
		"host", cfg.MetricsHost,
		"port", cfg.MetricsPort,
		"database", cfg.DatabasePath,
		"log_level", cfg.LogLevel)

	// Open database
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Init(); err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	logger.Info("Database opened successfully")

	// Start the training state collector
	if cfg.MetricsEnabled {
		collectorCtx, collectorCancel := context.WithCancel(context.Background())
		defer collectorCancel()
		go metrics.StartStateCollector(collectorCtx, db, 30*time.Second)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/health", middleware.WrapHandler("health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Health(); err != nil {
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))

	addr := fmt.Sprintf("%s:%d", cfg.MetricsHost, cfg.MetricsPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in background
	go func() {
		logger.Info("Metrics server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Metrics server shutdown failed", "error", err)
	}

	logger.Info("Server stopped")
}
