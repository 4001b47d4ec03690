package models

// CloudSchemaVersion is the current cloud document schema version. Documents
// written before versioning carry 0 and are upgraded by Normalize.
const CloudSchemaVersion = 1

// CloudDocument is the remote-side projection of one user's LocalState plus
// sync metadata. Exactly one document exists per user id in the remote
// document store; every push rewrites the full document through the store's
// upsert-merge operation, so re-sending identical data is a no-op in effect.
type CloudDocument struct {
	// UserID matches the remote store's addressing key.
	UserID string `json:"userId"`

	Settings        UserSettings      `json:"settings"`
	CustomTrainings []CustomTraining  `json:"customTrainings"`
	TrainingHistory []TrainingHistory `json:"trainingHistory"`
	Language        string            `json:"language"`

	// LastSyncedAt is the document-level sync instant (ISO-8601 UTC),
	// distinct from the one embedded in Settings.
	LastSyncedAt string `json:"lastSyncedAt"`

	// DeviceID identifies the installation that last wrote this document.
	DeviceID string `json:"deviceId"`

	// SchemaVersion tags the document shape so older payloads can be
	// upgraded on read.
	SchemaVersion int `json:"schemaVersion"`
}

// State extracts the syncable portion of the document.
func (d CloudDocument) State() LocalState {
	return LocalState{
		Settings:        d.Settings,
		CustomTrainings: d.CustomTrainings,
		TrainingHistory: d.TrainingHistory,
		Language:        d.Language,
	}
}

// Normalize upgrades a document read from the remote store to the current
// schema. Fields added over time arrive as zero values from older documents;
// nil slices become empty so that downstream merge code never distinguishes
// "absent" from "empty". Returns the document for chaining.
func (d *CloudDocument) Normalize() *CloudDocument {
	if d == nil {
		return nil
	}
	if d.CustomTrainings == nil {
		d.CustomTrainings = []CustomTraining{}
	}
	if d.TrainingHistory == nil {
		d.TrainingHistory = []TrainingHistory{}
	}
	if d.Settings.ReminderDays == nil {
		d.Settings.ReminderDays = []int{}
	}
	if d.Settings.UnitSystem == "" {
		d.Settings.UnitSystem = UnitSystemMetric
	}
	if d.SchemaVersion < CloudSchemaVersion {
		d.SchemaVersion = CloudSchemaVersion
	}
	return d
}

// NewCloudDocument assembles the full push payload for a user.
func NewCloudDocument(userID, deviceID, syncedAt string, state LocalState) CloudDocument {
	return CloudDocument{
		UserID:          userID,
		Settings:        state.Settings,
		CustomTrainings: state.CustomTrainings,
		TrainingHistory: state.TrainingHistory,
		Language:        state.Language,
		LastSyncedAt:    syncedAt,
		DeviceID:        deviceID,
		SchemaVersion:   CloudSchemaVersion,
	}
}
