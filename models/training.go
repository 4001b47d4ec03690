package models

// Exercise is a single stretching exercise inside a training.
type Exercise struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	AnimationURL    string `json:"animationUrl,omitempty"`
	DefaultDuration int    `json:"defaultDuration"` // seconds
}

// Training is a built-in workout definition shipped with the app.
type Training struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Exercises   []Exercise `json:"exercises"`
	Icon        string     `json:"icon,omitempty"`
}

// CustomTraining is a user-authored workout definition.
//
// The ID is immutable once created; a given id denotes at most one logical
// training across devices. Two devices may create same-named trainings with
// different ids. CreatedAt (ISO-8601) decides id collisions during
// reconciliation: the strictly later copy replaces the older one.
type CustomTraining struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Exercises   []Exercise `json:"exercises"`
	CreatedAt   string     `json:"createdAt"`
}

// Clone returns a deep copy of the training.
func (t CustomTraining) Clone() CustomTraining {
	out := t
	if t.Exercises != nil {
		out.Exercises = make([]Exercise, len(t.Exercises))
		copy(out.Exercises, t.Exercises)
	}
	return out
}

// CloneCustomTrainings deep-copies a custom training list.
func CloneCustomTrainings(trainings []CustomTraining) []CustomTraining {
	if trainings == nil {
		return nil
	}
	out := make([]CustomTraining, 0, len(trainings))
	for _, t := range trainings {
		out = append(out, t.Clone())
	}
	return out
}
