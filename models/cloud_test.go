package models

import "testing"

func TestNormalize_UpgradesLegacyDocument(t *testing.T) {
	doc := &CloudDocument{UserID: "u1"}
	doc.Normalize()

	if doc.SchemaVersion != CloudSchemaVersion {
		t.Errorf("expected schema version %d, got %d", CloudSchemaVersion, doc.SchemaVersion)
	}
	if doc.CustomTrainings == nil || doc.TrainingHistory == nil {
		t.Error("expected nil slices to become empty")
	}
	if doc.Settings.UnitSystem != UnitSystemMetric {
		t.Errorf("expected default unit system %q, got %q", UnitSystemMetric, doc.Settings.UnitSystem)
	}
}

func TestNormalize_NilReceiver(t *testing.T) {
	var doc *CloudDocument
	if doc.Normalize() != nil {
		t.Error("expected nil document to stay nil")
	}
}

func TestClone_SettingsIsDeep(t *testing.T) {
	original := UserSettings{UserName: "Alex", ReminderDays: []int{1, 3}}
	clone := original.Clone()
	clone.ReminderDays[0] = 9

	if original.ReminderDays[0] != 1 {
		t.Error("expected clone mutation to not touch the original")
	}
}

func TestFindBuiltinTraining(t *testing.T) {
	training, ok := FindBuiltinTraining("1")
	if !ok {
		t.Fatal("expected builtin training with id 1")
	}
	if training.Name == "" || len(training.Exercises) == 0 {
		t.Error("expected a populated catalog entry")
	}

	if _, ok = FindBuiltinTraining("no-such-id"); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

func TestBuiltinTrainings_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, training := range BuiltinTrainings {
		if seen[training.ID] {
			t.Errorf("duplicate builtin training id %q", training.ID)
		}
		seen[training.ID] = true
	}
}
