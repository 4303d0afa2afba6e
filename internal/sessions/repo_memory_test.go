package sessions

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRepoCreateIssuesUniqueOpenSessions(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		sess, err := repo.Create(ctx, "eng-42", "test-agent")
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if seen[sess.ID] {
			t.Fatalf("session id %q issued twice", sess.ID)
		}
		seen[sess.ID] = true

		got, err := repo.Get(ctx, sess.ID)
		if err != nil {
			t.Fatalf("get after create failed: %v", err)
		}
		if got.Status != StatusOpen {
			t.Fatalf("expected status %q, got %q", StatusOpen, got.Status)
		}
		if len(got.Fields) != 0 {
			t.Fatalf("expected empty fields, got %v", got.Fields)
		}
	}
}

func TestMemoryRepoSetFieldReadYourWrites(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	sess, err := repo.Create(ctx, "eng-42", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.SetField(ctx, sess.ID, "skills", "Go, Rust"); err != nil {
		t.Fatalf("set field failed: %v", err)
	}
	// Arbitrary keys are accepted, not just the fixed vocabulary.
	if err := repo.SetField(ctx, sess.ID, "favorite_editor", "acme"); err != nil {
		t.Fatalf("set arbitrary field failed: %v", err)
	}

	got, err := repo.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Fields["skills"] != "Go, Rust" {
		t.Fatalf("expected skills %q, got %q", "Go, Rust", got.Fields["skills"])
	}
	if got.Fields["favorite_editor"] != "acme" {
		t.Fatalf("expected arbitrary field to round-trip, got %v", got.Fields)
	}
}

func TestMemoryRepoSetFieldLastWriteWins(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	sess, err := repo.Create(ctx, "eng-42", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.SetField(ctx, sess.ID, "name", "Ada"); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := repo.SetField(ctx, sess.ID, "name", "Grace"); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	got, _ := repo.Get(ctx, sess.ID)
	if got.Fields["name"] != "Grace" {
		t.Fatalf("expected last write to win, got %q", got.Fields["name"])
	}
}

func TestMemoryRepoUnknownSession(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from get, got %v", err)
	}
	if err := repo.SetField(ctx, "missing", "name", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from set field, got %v", err)
	}
	if _, err := repo.Submit(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from submit, got %v", err)
	}
}

func TestMemoryRepoSubmitIsIdempotentAndPreservesFields(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	sess, err := repo.Create(ctx, "eng-42", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.SetField(ctx, sess.ID, "skills", "Go, Rust"); err != nil {
		t.Fatalf("set field failed: %v", err)
	}

	first, err := repo.Submit(ctx, sess.ID)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if first.Status != StatusSubmitted {
		t.Fatalf("expected submitted status, got %q", first.Status)
	}
	if first.Fields["skills"] != "Go, Rust" {
		t.Fatalf("submit should return the full field set, got %v", first.Fields)
	}

	second, err := repo.Submit(ctx, sess.ID)
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}
	if second.Fields["skills"] != "Go, Rust" {
		t.Fatalf("repeat submit must not corrupt stored fields, got %v", second.Fields)
	}

	// Writes after submit are still accepted by the registry.
	if err := repo.SetField(ctx, sess.ID, "phone", "555-0100"); err != nil {
		t.Fatalf("set field after submit failed: %v", err)
	}
}

func TestCompletion(t *testing.T) {
	pct, filled := Completion(map[string]string{"name": "Ada", "email": "ada@example.com"})
	if len(filled) != 2 {
		t.Fatalf("expected 2 filled fields, got %v", filled)
	}
	if pct < 66 || pct > 67 {
		t.Fatalf("expected ~66.7%%, got %f", pct)
	}

	pct, filled = Completion(nil)
	if pct != 0 || len(filled) != 0 {
		t.Fatalf("expected zero completion, got %f %v", pct, filled)
	}
}
