// Package scheduler runs the periodic cache janitor.
package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Purger drops expired entries and reports how many were removed.
type Purger interface {
	Purge() int
}

// Janitor periodically purges expired memoization entries so long-idle
// processes do not accumulate dead cache memory. TTL expiry remains the only
// form of invalidation; the janitor just reclaims space.
type Janitor struct {
	scheduler *gocron.Scheduler
	purgers   []Purger
	interval  time.Duration
}

// New creates a Janitor sweeping the given purgers every interval.
func New(interval time.Duration, purgers ...Purger) *Janitor {
	return &Janitor{
		scheduler: gocron.NewScheduler(time.UTC),
		purgers:   purgers,
		interval:  interval,
	}
}

// Start schedules the sweep job and starts the underlying scheduler.
func (j *Janitor) Start() error {
	minutes := int(j.interval.Minutes())
	if minutes <= 0 {
		minutes = 10
	}

	_, err := j.scheduler.Every(minutes).Minutes().Do(func() {
		total := 0
		for _, p := range j.purgers {
			total += p.Purge()
		}
		if total > 0 {
			log.Printf("janitor: purged %d expired cache entries", total)
		}
	})
	if err != nil {
		return err
	}

	j.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future sweeps.
func (j *Janitor) Stop() {
	if j.scheduler != nil {
		j.scheduler.Stop()
	}
}
