package jobs

import (
	"log"
	"time"

	"github.com/hsakai/quizbox/services"
)

const staleSessionAge = 2 * time.Hour

// StaleSessionSweeper returns a cron job body that drops quiz timers
// abandoned mid-traversal.
func StaleSessionSweeper(store services.SessionStore) func() {
	return func() {
		if removed := store.PruneStale(staleSessionAge); removed > 0 {
			log.Printf("🧹 Pruned %d stale quiz sessions", removed)
		}
	}
}
