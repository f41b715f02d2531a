package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "faraday.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Fatalf("failed to close store: %v", err)
		}
	})
	return st
}

func TestHighScoreDefaultsToZero(t *testing.T) {
	st := openTestStore(t)
	score, err := st.HighScore(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0 {
		t.Fatalf("expected 0, got %d", score)
	}
}

func TestSaveHighScoreOverwrites(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	if err := st.SaveHighScore(ctx, 120); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := st.SaveHighScore(ctx, 345); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	score, err := st.HighScore(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 345 {
		t.Fatalf("expected 345, got %d", score)
	}
	if err := st.SaveHighScore(ctx, -1); err == nil {
		t.Fatalf("expected error for negative score")
	}
}

func TestHighScoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "faraday.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := st.SaveHighScore(ctx, 77); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	st, err = Open(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			_ = cerr
		}
	}()
	score, err := st.HighScore(ctx)
	if err != nil || score != 77 {
		t.Fatalf("expected 77, got %d (err %v)", score, err)
	}
}

func TestCorruptHighScoreIsAnError(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	if _, err := st.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)`, highScoreKey, "lots", "x"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := st.HighScore(ctx); err == nil {
		t.Fatalf("expected error for corrupt value")
	}
	if err := st.ResetHighScore(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	score, err := st.HighScore(ctx)
	if err != nil || score != 0 {
		t.Fatalf("expected 0 after reset, got %d (err %v)", score, err)
	}
}
