package models

// SyncState is the coarse sync indicator consumed by the settings surface.
type SyncState string

const (
	SyncStateIdle    SyncState = "idle"
	SyncStateSyncing SyncState = "syncing"
	SyncStateError   SyncState = "error"
)

// SyncStatus is the transient in-flight sync status surfaced to the UI
// layer as an observable value.
type SyncStatus struct {
	IsSyncing    bool   `json:"isSyncing"`
	LastSyncedAt string `json:"lastSyncedAt,omitempty"`
	Error        string `json:"error,omitempty"`
}

// State collapses the status fields into the three-valued indicator.
func (s SyncStatus) State() SyncState {
	switch {
	case s.IsSyncing:
		return SyncStateSyncing
	case s.Error != "":
		return SyncStateError
	default:
		return SyncStateIdle
	}
}
