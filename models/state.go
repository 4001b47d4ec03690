package models

// LocalState is the full device-local data set subject to sync: settings,
// user-authored trainings, completed-workout history and the UI language.
//
// It is loaded once at app start from the local record store, mutated
// in-memory by user actions and committed back on every mutation. The
// merge engine reconciles it against the remote CloudDocument.
type LocalState struct {
	Settings        UserSettings      `json:"settings"`
	CustomTrainings []CustomTraining  `json:"customTrainings"`
	TrainingHistory []TrainingHistory `json:"trainingHistory"`
	Language        string            `json:"language"`
}

// Clone returns a deep copy of the state so that callers can hand snapshots
// to concurrent sync operations without aliasing the live slices.
func (s LocalState) Clone() LocalState {
	return LocalState{
		Settings:        s.Settings.Clone(),
		CustomTrainings: CloneCustomTrainings(s.CustomTrainings),
		TrainingHistory: CloneTrainingHistory(s.TrainingHistory),
		Language:        s.Language,
	}
}
