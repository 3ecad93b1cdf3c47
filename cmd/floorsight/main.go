/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Floorsight production dashboard engine.
  Handles configuration, dependency injection, and graceful shutdown.

COMMANDS:
  serve     Run the HTTP server with the background snapshot refresher
  snapshot  Compute one dashboard snapshot and print it as JSON

STARTUP SEQUENCE (serve):
  1. Parse command-line flags
  2. Initialize SQLite store
  3. Apply the optional YAML settings file
  4. Create API handler with dependencies
  5. Start the snapshot refresher and HTTP server with graceful shutdown

COMMAND-LINE FLAGS:
  serve:
    --addr      Listen address (default: :8080)
    --db        SQLite database path (default: floorsight.db)
                Use ":memory:" for in-memory database
    --settings  YAML settings file applied to the store at startup
    --refresh   Run the background snapshot refresher (default: true)
  snapshot:
    --db --settings as above
    --from --to  Date range (YYYY-MM-DD), both optional
    --line       Narrow the snapshot to one production line

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the snapshot refresher
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./floorsight serve --db="./data/plant.db"

  # Run with a settings file on another port
  ./floorsight serve --addr=":3000" --settings="./settings.yaml"

  # Print last month's snapshot for one line
  ./floorsight snapshot --from=2025-07-01 --to=2025-07-31 --line=line-1

SEE ALSO:
  - api/server.go: Router configuration
  - api/refresher.go: Background snapshot refresher
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/floorsight/production-engine/api"
	"github.com/floorsight/production-engine/metrics"
	"github.com/floorsight/production-engine/settings"
	"github.com/floorsight/production-engine/store/sqlite"
)

var (
	serveAddr     string
	serveDB       string
	serveSettings string
	serveRefresh  bool

	snapDB       string
	snapSettings string
	snapFrom     string
	snapTo       string
	snapLine     string
)

var rootCmd = &cobra.Command{
	Use:   "floorsight",
	Short: "Floorsight production dashboard engine",
	Long: `Floorsight turns shift reports, standard times and the cost-center ledger
into a factory dashboard: KPIs, per-line breakdowns, plan health, alerts
and a single 0-100 health score.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the dashboard HTTP API backed by a SQLite store.

The background refresher recomputes the current-month snapshot on the
interval the settings document configures, keeping the health-score gauge
warm between dashboard requests.`,
	RunE: runServe,
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Compute one dashboard snapshot and print it as JSON",
	Long: `Compute the dashboard snapshot for a date range and write it to stdout
as indented JSON, without starting the server. Empty --from/--to leave
that side of the range open.`,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snapshotCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "HTTP listen address")
	serveCmd.Flags().StringVar(&serveDB, "db", "floorsight.db", "SQLite database path")
	serveCmd.Flags().StringVar(&serveSettings, "settings", "", "YAML settings file applied at startup")
	serveCmd.Flags().BoolVar(&serveRefresh, "refresh", true, "Run the background snapshot refresher")

	snapshotCmd.Flags().StringVar(&snapDB, "db", "floorsight.db", "SQLite database path")
	snapshotCmd.Flags().StringVar(&snapSettings, "settings", "", "YAML settings file applied before computing")
	snapshotCmd.Flags().StringVar(&snapFrom, "from", "", "Range start (YYYY-MM-DD)")
	snapshotCmd.Flags().StringVar(&snapTo, "to", "", "Range end (YYYY-MM-DD)")
	snapshotCmd.Flags().StringVar(&snapLine, "line", "", "Narrow the snapshot to one line")
}

func main() {
	// Structured logging with sane defaults
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := sqlite.New(serveDB)
	if err != nil {
		return fmt.Errorf("open database %s: %w", serveDB, err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := applySettingsFile(ctx, st, serveSettings); err != nil {
		return err
	}

	cfg, err := st.Settings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	handler := api.NewHandler(st, api.NewInstruments())
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         serveAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	refresher := api.NewSnapshotRefresher(handler)
	refresher.Interval = time.Duration(cfg.RefreshSeconds) * time.Second
	refresher.Enabled = serveRefresh
	refresher.Start()

	go func() {
		log.Info().Str("addr", serveAddr).Str("db", serveDB).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	from := metrics.DateKey(snapFrom)
	if from != "" && !from.Valid() {
		return fmt.Errorf("invalid --from date %q (use YYYY-MM-DD)", snapFrom)
	}
	to := metrics.DateKey(snapTo)
	if to != "" && !to.Valid() {
		return fmt.Errorf("invalid --to date %q (use YYYY-MM-DD)", snapTo)
	}

	st, err := sqlite.New(snapDB)
	if err != nil {
		return fmt.Errorf("open database %s: %w", snapDB, err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := applySettingsFile(ctx, st, snapSettings); err != nil {
		return err
	}

	handler := api.NewHandler(st, nil)

	var out any
	if snapLine != "" {
		out, err = handler.LineSnapshotDTO(ctx, metrics.LineID(snapLine), from, to)
	} else {
		out, err = handler.SnapshotDTO(ctx, from, to)
	}
	if err != nil {
		return fmt.Errorf("compute snapshot: %w", err)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// applySettingsFile loads the YAML document and persists it as the store's
// settings row. An empty path is a no-op.
func applySettingsFile(ctx context.Context, st *sqlite.Store, path string) error {
	if path == "" {
		return nil
	}
	cfg, err := settings.Load(path)
	if err != nil {
		return err
	}
	if err := st.SaveSettings(ctx, cfg); err != nil {
		return fmt.Errorf("apply settings: %w", err)
	}
	log.Info().Str("path", path).Msg("settings file applied")
	return nil
}
