// Package jobs runs periodic maintenance against the progress store.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron"

	"github.com/RiseHunter/RiseHuntBot/internal"
	"github.com/RiseHunter/RiseHuntBot/internal/storage"
)

// StartRetention schedules a daily sweep removing journal entries older than
// windowDays. It also runs one sweep immediately so restarts don't let old
// entries linger a full day.
func StartRetention(store storage.Store, logger internal.Logger, windowDays int) (*cron.Cron, error) {
	sweep := func() {
		cutoff := time.Now().AddDate(0, 0, -windowDays)
		removed, err := store.PurgeJournalBefore(context.Background(), cutoff)
		if err != nil {
			logger.Errorf("jobs: journal retention sweep failed: %v", err)
			return
		}
		if removed > 0 {
			logger.Infof("jobs: purged %d journal entries older than %d days", removed, windowDays)
		}
	}

	c := cron.New()
	if err := c.AddFunc("@daily", sweep); err != nil {
		return nil, err
	}
	c.Start()
	go sweep()
	return c, nil
}
