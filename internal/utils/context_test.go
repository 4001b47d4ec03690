package utils

import (
	"context"
	"testing"
)

func TestGetUserIDFromContext(t *testing.T) {
	t.Run("value present", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), UserIDCtxKey, "user-42")

		userID, ok := GetUserIDFromContext(ctx)

		if !ok {
			t.Fatal("expected ok == true")
		}
		if userID != "user-42" {
			t.Errorf("expected 'user-42', got %s", userID)
		}
	})

	t.Run("value missing", func(t *testing.T) {
		if _, ok := GetUserIDFromContext(context.Background()); ok {
			t.Error("expected ok == false for empty context")
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), UserIDCtxKey, 42)

		if _, ok := GetUserIDFromContext(ctx); ok {
			t.Error("expected ok == false for non-string value")
		}
	})
}

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	first := g.Generate()
	second := g.Generate()

	if first == "" || second == "" {
		t.Fatal("expected non-empty ids")
	}
	if first == second {
		t.Error("expected distinct ids")
	}
}
