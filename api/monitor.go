/*
monitor.go - Background board refresher

PURPOSE:
  Periodically recomputes the muster report and caches the latest result so
  dashboard views polling /api/board/cached read a fresh classification
  without paying for a store round-trip per request.

DESIGN:
  - Runs a background goroutine with a configurable refresh interval
  - Each refresh takes one directory snapshot and classifies it at the
    current wall clock - the ONLY place outside handlers where a clock is
    read; the engine itself stays clock-free
  - Latest() hands out the cached report under a read lock

CONFIGURATION:
  - RefreshInterval: How often to recompute (default: 1 minute)
  - Enabled: Whether the monitor is active (default: true)

USAGE:
  monitor := NewBoardMonitor(store)
  monitor.Start()
  // ... later
  monitor.Stop()

SEE ALSO:
  - handlers.go: GetCachedBoard endpoint
  - roster/directory.go: Snapshot semantics
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/duty-engine/roster"
	"github.com/warp/duty-engine/store/sqlite"
)

// BoardMonitor keeps a periodically refreshed muster report.
type BoardMonitor struct {
	Store           *sqlite.Store
	RefreshInterval time.Duration
	Enabled         bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup

	mu          sync.RWMutex
	latest      *roster.MusterReport
	refreshedAt time.Time
}

// NewBoardMonitor creates a new monitor.
func NewBoardMonitor(store *sqlite.Store) *BoardMonitor {
	return &BoardMonitor{
		Store:           store,
		RefreshInterval: 1 * time.Minute,
		Enabled:         true,
		stop:            make(chan bool),
	}
}

// Start begins the refresh loop.
func (bm *BoardMonitor) Start() {
	if !bm.Enabled {
		log.Println("[Monitor] Disabled, not starting")
		return
	}

	bm.ticker = time.NewTicker(bm.RefreshInterval)
	bm.wg.Add(1)

	go bm.run()

	log.Printf("[Monitor] Started with refresh interval: %v", bm.RefreshInterval)
}

// Stop stops the refresh loop.
func (bm *BoardMonitor) Stop() {
	if bm.ticker != nil {
		bm.ticker.Stop()
		close(bm.stop)
		bm.wg.Wait()
		log.Println("[Monitor] Stopped")
	}
}

func (bm *BoardMonitor) run() {
	defer bm.wg.Done()

	// Refresh immediately on start
	bm.Refresh()

	for {
		select {
		case <-bm.ticker.C:
			bm.Refresh()
		case <-bm.stop:
			return
		}
	}
}

// Refresh recomputes the board once. Exposed for tests and admin triggers.
func (bm *BoardMonitor) Refresh() {
	ctx := context.Background()
	now := time.Now()

	snapshot, err := roster.TakeSnapshot(ctx, bm.Store)
	if err != nil {
		log.Printf("[Monitor] Error taking snapshot: %v", err)
		return
	}

	report, err := snapshot.Muster(now)
	if err != nil {
		log.Printf("[Monitor] Error computing board: %v", err)
		return
	}

	bm.mu.Lock()
	bm.latest = report
	bm.refreshedAt = now
	bm.mu.Unlock()

	log.Printf("[Monitor] Board refreshed: %d active shifts, %d present, %d on leave, %d resting",
		len(report.ActiveShifts), len(report.Present),
		len(report.OnLeaveCurrentShift)+len(report.OnLeaveOtherShift), len(report.Resting))
}

// Latest returns the cached report and when it was computed. ok=false until
// the first successful refresh.
func (bm *BoardMonitor) Latest() (*roster.MusterReport, time.Time, bool) {
	bm.mu.RLock()
	defer bm.mu.RUnlock()
	if bm.latest == nil {
		return nil, time.Time{}, false
	}
	return bm.latest, bm.refreshedAt, true
}
