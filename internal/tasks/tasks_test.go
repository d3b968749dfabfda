package tasks

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/videohub/videohub/internal/models"
	tu "github.com/videohub/videohub/internal/testing"
)

type memoryStore struct {
	saved [][]models.VideoRecord
	err   error
}

func (m *memoryStore) Save(videos []models.VideoRecord) (*models.Snapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.saved = append(m.saved, videos)
	return &models.Snapshot{ID: "snap-1", VideoCount: len(videos)}, nil
}

func TestCatalogEngine(t *testing.T) {
	t.Run("Snapshot", func(t *testing.T) {
		t.Run("fetches, persists, and exports", func(t *testing.T) {
			source := &tu.MockSource{Videos: []models.VideoRecord{tu.SampleVideo("v1")}}
			store := &memoryStore{}
			engine := NewCatalogEngine(source, store)

			outPath := filepath.Join(t.TempDir(), "snap")
			result, err := engine.Snapshot(context.Background(), nil, SnapshotOpts{
				Format:     "json",
				OutputPath: outPath,
				Persist:    true,
			})
			if err != nil {
				t.Fatalf("Snapshot failed: %v", err)
			}

			if len(result.Videos) != 1 {
				t.Errorf("expected 1 record, got %d", len(result.Videos))
			}
			if result.Snapshot == nil || result.Snapshot.VideoCount != 1 {
				t.Errorf("expected persisted snapshot, got %+v", result.Snapshot)
			}
			if len(store.saved) != 1 {
				t.Errorf("expected one store call, got %d", len(store.saved))
			}
			tu.AssertFileExists(t, result.ExportPath)
		})

		t.Run("skips persistence and export when not requested", func(t *testing.T) {
			source := &tu.MockSource{Videos: []models.VideoRecord{tu.SampleVideo("v1")}}
			engine := NewCatalogEngine(source, nil)

			result, err := engine.Snapshot(context.Background(), nil, SnapshotOpts{})
			if err != nil {
				t.Fatalf("Snapshot failed: %v", err)
			}
			if result.Snapshot != nil {
				t.Error("expected no persisted snapshot")
			}
			if result.ExportPath != "" {
				t.Errorf("expected no export, got %s", result.ExportPath)
			}
		})

		t.Run("emits progress updates in phase order", func(t *testing.T) {
			source := &tu.MockSource{Videos: []models.VideoRecord{tu.SampleVideo("v1")}}
			engine := NewCatalogEngine(source, &memoryStore{})

			progress := make(chan ProgressUpdate, 10)
			_, err := engine.Snapshot(context.Background(), progress, SnapshotOpts{Persist: true})
			if err != nil {
				t.Fatalf("Snapshot failed: %v", err)
			}
			close(progress)

			var phases []Phase
			for update := range progress {
				phases = append(phases, update.Phase)
			}

			want := []Phase{FetchCatalog, PersistSnapshot, Done}
			if len(phases) != len(want) {
				t.Fatalf("expected %d updates, got %d", len(want), len(phases))
			}
			for i, phase := range want {
				if phases[i] != phase {
					t.Errorf("expected phase %s at %d, got %s", phase, i, phases[i])
				}
			}
		})

		t.Run("full progress channel never blocks the run", func(t *testing.T) {
			source := &tu.MockSource{Videos: []models.VideoRecord{tu.SampleVideo("v1")}}
			engine := NewCatalogEngine(source, &memoryStore{})

			// Capacity zero and no reader: sends must fall through.
			progress := make(chan ProgressUpdate)
			if _, err := engine.Snapshot(context.Background(), progress, SnapshotOpts{Persist: true}); err != nil {
				t.Fatalf("Snapshot failed: %v", err)
			}
		})

		t.Run("source failure aborts the run", func(t *testing.T) {
			source := &tu.MockSource{Err: errors.New("upstream down")}
			store := &memoryStore{}
			engine := NewCatalogEngine(source, store)

			if _, err := engine.Snapshot(context.Background(), nil, SnapshotOpts{Persist: true}); err == nil {
				t.Fatal("expected error")
			}
			if len(store.saved) != 0 {
				t.Errorf("expected no store call after fetch failure, got %d", len(store.saved))
			}
		})

		t.Run("persistence requested without a store fails", func(t *testing.T) {
			engine := NewCatalogEngine(&tu.MockSource{}, nil)

			if _, err := engine.Snapshot(context.Background(), nil, SnapshotOpts{Persist: true}); err == nil {
				t.Fatal("expected error for missing store")
			}
		})

		t.Run("nil source fails fast", func(t *testing.T) {
			engine := NewCatalogEngine(nil, nil)

			if _, err := engine.Snapshot(context.Background(), nil, SnapshotOpts{}); err == nil {
				t.Fatal("expected error for missing source")
			}
		})
	})
}
