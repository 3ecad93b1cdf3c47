/*
refresher.go - Background snapshot refresher

PURPOSE:
  Periodically recomputes the current-month dashboard snapshot in the
  background so the health-score gauge and compute-duration histogram
  stay current even when no client is polling the dashboard.

DESIGN:
  - Runs a background goroutine with a configurable interval
  - Recomputes the snapshot for the current month window
  - Feeds the same Prometheus instruments the HTTP path feeds

CONFIGURATION:
  - Interval: How often to recompute (default: 30 seconds, usually
    overridden from the settings document's refresh_seconds)
  - Enabled: Whether the refresher is active (default: true)

USAGE:
  refresher := NewSnapshotRefresher(handler)
  refresher.Start()
  // ... later
  refresher.Stop()

SEE ALSO:
  - handlers.go: computeSnapshot (shared compute path)
  - metrics.go: Instruments fed by each refresh
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/floorsight/production-engine/metrics"
)

// SnapshotRefresher recomputes the dashboard snapshot on a timer.
type SnapshotRefresher struct {
	Handler  *Handler
	Interval time.Duration
	Enabled  bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewSnapshotRefresher creates a refresher with the default interval.
func NewSnapshotRefresher(handler *Handler) *SnapshotRefresher {
	return &SnapshotRefresher{
		Handler:  handler,
		Interval: 30 * time.Second,
		Enabled:  true,
		stop:     make(chan bool),
	}
}

// Start begins the refresher.
func (sr *SnapshotRefresher) Start() {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if !sr.Enabled {
		log.Info().Str("component", "refresher").Msg("disabled, not starting")
		return
	}

	sr.ticker = time.NewTicker(sr.Interval)
	sr.wg.Add(1)

	go sr.run()

	log.Info().Str("component", "refresher").Dur("interval", sr.Interval).Msg("started")
}

// Stop stops the refresher.
func (sr *SnapshotRefresher) Stop() {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if sr.ticker != nil {
		sr.ticker.Stop()
		close(sr.stop)
		sr.wg.Wait()
		log.Info().Str("component", "refresher").Msg("stopped")
	}
}

func (sr *SnapshotRefresher) run() {
	defer sr.wg.Done()

	// Run immediately on start
	sr.refresh()

	for {
		select {
		case <-sr.ticker.C:
			sr.refresh()
		case <-sr.stop:
			return
		}
	}
}

func (sr *SnapshotRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	month := metrics.ThisMonth()
	snap, _, err := sr.Handler.computeSnapshot(ctx, month.FirstDay(), month.LastDay())
	if err != nil {
		log.Error().Err(err).Str("component", "refresher").Msg("snapshot refresh failed")
		return
	}

	log.Debug().
		Str("component", "refresher").
		Int("health_score", snap.HealthScore).
		Int("alerts", len(snap.Alerts)).
		Msg("snapshot refreshed")
}

// RunNow triggers an immediate refresh (for testing/admin).
func (sr *SnapshotRefresher) RunNow() {
	sr.refresh()
}

// NextRunTime returns when the next scheduled refresh will occur.
func (sr *SnapshotRefresher) NextRunTime() time.Time {
	return time.Now().Add(sr.Interval)
}
