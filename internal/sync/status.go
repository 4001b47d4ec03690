package sync

import (
	"fmt"
	"sync"
	"time"

	"github.com/fitkeeper/go-fit-keeper/models"
)

// statusBroadcaster holds the observable sync status and fans every change
// out to subscribers. Callbacks run synchronously on the goroutine that
// changed the status, outside the lock.
type statusBroadcaster struct {
	mu     sync.Mutex
	status models.SyncStatus
	subs   map[int]func(models.SyncStatus)
	nextID int
}

func newStatusBroadcaster() *statusBroadcaster {
	return &statusBroadcaster{
		subs: make(map[int]func(models.SyncStatus)),
	}
}

func (b *statusBroadcaster) current() models.SyncStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

func (b *statusBroadcaster) subscribe(fn func(models.SyncStatus)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

func (b *statusBroadcaster) setSyncing() {
	b.update(func(s *models.SyncStatus) {
		s.IsSyncing = true
		s.Error = ""
	})
}

func (b *statusBroadcaster) setSynced(syncedAt string) {
	b.update(func(s *models.SyncStatus) {
		s.IsSyncing = false
		s.LastSyncedAt = syncedAt
		s.Error = ""
	})
}

func (b *statusBroadcaster) setIdle() {
	b.update(func(s *models.SyncStatus) {
		s.IsSyncing = false
		s.Error = ""
	})
}

func (b *statusBroadcaster) setError(err error) {
	b.update(func(s *models.SyncStatus) {
		s.IsSyncing = false
		s.Error = err.Error()
	})
}

func (b *statusBroadcaster) update(mutate func(*models.SyncStatus)) {
	b.mu.Lock()
	mutate(&b.status)
	status := b.status
	subs := make([]func(models.SyncStatus), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.Unlock()

	for _, fn := range subs {
		fn(status)
	}
}

// FormatTimeSince renders the age of lastSyncedAt for the settings surface:
// "just now" under ten seconds, then coarse second/minute/hour/day buckets.
// An empty or unparseable stamp reads "never".
func FormatTimeSince(lastSyncedAt string, now time.Time) string {
	if lastSyncedAt == "" {
		return "never"
	}
	synced, err := time.Parse(time.RFC3339, lastSyncedAt)
	if err != nil {
		return "never"
	}

	diff := now.Sub(synced)
	seconds := int(diff.Seconds())
	minutes := int(diff.Minutes())
	hours := int(diff.Hours())
	days := hours / 24

	switch {
	case seconds < 10:
		return "just now"
	case seconds < 60:
		return fmt.Sprintf("%ds ago", seconds)
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	default:
		return fmt.Sprintf("%dd ago", days)
	}
}
