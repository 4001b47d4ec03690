package models

// PerformedExercise records one exercise actually performed during a
// completed workout, with its realized duration in seconds.
type PerformedExercise struct {
	ExerciseID   string `json:"exerciseId"`
	ExerciseName string `json:"exerciseName"`
	Duration     int    `json:"duration"`
}

// TrainingHistory is one completed-workout record.
//
// Entries are immutable after creation and the history list is append-only:
// reconciliation may add remote-only entries but never removes or rewrites
// an existing one. TrainingName is a display snapshot taken at completion
// time, deliberately decoupled from the live training definition.
type TrainingHistory struct {
	ID           string              `json:"id"`
	TrainingID   string              `json:"trainingId"`
	TrainingName string              `json:"trainingName"`
	Date         string              `json:"date"`
	Exercises    []PerformedExercise `json:"exercises"`
}

// Clone returns a deep copy of the history entry.
func (h TrainingHistory) Clone() TrainingHistory {
	out := h
	if h.Exercises != nil {
		out.Exercises = make([]PerformedExercise, len(h.Exercises))
		copy(out.Exercises, h.Exercises)
	}
	return out
}

// CloneTrainingHistory deep-copies a history list.
func CloneTrainingHistory(history []TrainingHistory) []TrainingHistory {
	if history == nil {
		return nil
	}
	out := make([]TrainingHistory, 0, len(history))
	for _, h := range history {
		out = append(out, h.Clone())
	}
	return out
}
