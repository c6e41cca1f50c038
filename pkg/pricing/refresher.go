package pricing

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"tokenworks/atlas/pkg/hardware"
)

// Refresher periodically re-fetches live quotes so the cache stays warm
// and long-running processes keep serving cached confidence instead of
// dropping to fallback when providers are briefly unreachable.
type Refresher struct {
	source   *Source
	classes  []hardware.Class
	schedule string
	logger   *slog.Logger
	cron     *cron.Cron
	entryID  cron.EntryID

	// Recorder, when set, receives every refreshed quote (quote
	// history persistence).
	Recorder func(Quote)
}

// NewRefresher creates a refresher for the given hardware classes.
// schedule is a cron expression; empty uses hourly ("0 * * * *").
func NewRefresher(source *Source, classes []hardware.Class, schedule string, logger *slog.Logger) *Refresher {
	if schedule == "" {
		schedule = "0 * * * *"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		source:   source,
		classes:  classes,
		schedule: schedule,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start registers the refresh job and starts the scheduler.
func (r *Refresher) Start() error {
	id, err := r.cron.AddFunc(r.schedule, r.refresh)
	if err != nil {
		return err
	}
	r.entryID = id
	r.cron.Start()
	r.logger.Info("pricing refresher started", "schedule", r.schedule, "classes", len(r.classes))
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("pricing refresher stopped")
}

// RunOnce performs an immediate refresh outside the schedule.
func (r *Refresher) RunOnce() {
	r.refresh()
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	refreshed := 0
	for _, class := range r.classes {
		for _, q := range r.source.QuoteAll(ctx, class) {
			if q.Confidence == ConfidenceLive {
				refreshed++
			}
			if r.Recorder != nil {
				r.Recorder(q)
			}
		}
	}
	r.logger.Info("pricing refresh completed",
		"live_quotes", refreshed,
		"classes", len(r.classes),
		"elapsed", time.Since(start),
	)
}
