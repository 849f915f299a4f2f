package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	bm := &Bookmark{Type: BookmarkStageReached, Session: "abc", AtSec: 42, Description: "Reached growing"}
	state := map[string]any{"click_count": 120, "stage": "growing"}

	snap, err := NewSnapshot(bm, state)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	path, err := SaveSnapshot(snap, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if !strings.HasSuffix(filepath.Base(path), "_stage_reached.json") {
		t.Errorf("unexpected file name %s", filepath.Base(path))
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded.Session != "abc" || loaded.AtSec != 42 {
		t.Errorf("header = %q/%v", loaded.Session, loaded.AtSec)
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkStageReached {
		t.Errorf("bookmark = %+v", loaded.Bookmark)
	}

	var got struct {
		ClickCount int    `json:"click_count"`
		Stage      string `json:"stage"`
	}
	if err := json.Unmarshal(loaded.State, &got); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if got.ClickCount != 120 || got.Stage != "growing" {
		t.Errorf("state = %+v", got)
	}
}

func TestLoadSnapshotVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99, "state": {}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version error")
	}
}

func TestNewSnapshotBadState(t *testing.T) {
	if _, err := NewSnapshot(nil, make(chan int)); err == nil {
		t.Error("expected marshal error")
	}
}
