// package tasks implements catalog maintenance operations.
//
// The core abstraction is CatalogEngine, which orchestrates fetch, persist,
// and export runs. Operations emit progress updates via channels for
// non-blocking status reporting to the CLI layer.
package tasks

import (
	"context"
	"fmt"

	"github.com/videohub/videohub/internal/formatter"
	"github.com/videohub/videohub/internal/models"
	"github.com/videohub/videohub/internal/services"
	"github.com/videohub/videohub/internal/shared"
)

// ProgressUpdate represents a progress event during a long-running operation.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchCatalog Phase = iota
	PersistSnapshot
	WriteExport
	Done
)

func (p Phase) String() string {
	switch p {
	case FetchCatalog:
		return "fetch_catalog"
	case PersistSnapshot:
		return "persist_snapshot"
	case WriteExport:
		return "write_export"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// VideoStore persists catalog snapshots. Implemented by repositories.SnapshotRepository.
type VideoStore interface {
	Save(videos []models.VideoRecord) (*models.Snapshot, error)
}

// SnapshotOpts contains configuration for one snapshot run.
type SnapshotOpts struct {
	Format     string // Export format: json, csv, markdown ("" skips the file export)
	OutputPath string // Export file path (default: catalog_snapshot)
	Persist    bool   // Whether to store the snapshot in the database
}

// SnapshotResult contains all data from a snapshot run.
type SnapshotResult struct {
	Snapshot   *models.Snapshot     // Stored snapshot metadata (nil when not persisted)
	Videos     []models.VideoRecord // The fetched catalog
	ExportPath string               // Written export file ("" when not exported)
}

// CatalogEngine orchestrates catalog fetch, persist, and export runs.
type CatalogEngine struct {
	source services.VideoSource
	store  VideoStore
}

// NewCatalogEngine creates a new CatalogEngine with the provided source and store.
// The store may be nil when persistence is not configured.
func NewCatalogEngine(source services.VideoSource, store VideoStore) *CatalogEngine {
	return &CatalogEngine{source: source, store: store}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *CatalogEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Snapshot fetches the current catalog, optionally persists it, and
// optionally writes an export file.
func (e *CatalogEngine) Snapshot(ctx context.Context, progress chan<- ProgressUpdate, opts SnapshotOpts) (*SnapshotResult, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: catalog source not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, ProgressUpdate{Phase: FetchCatalog, Step: 1, Total: 1, Message: "fetching catalog from " + e.source.Name()})

	videos, err := e.source.FetchVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch catalog: %v", shared.ErrAPIRequest, err)
	}

	result := &SnapshotResult{Videos: videos}

	if opts.Persist {
		if e.store == nil {
			return nil, fmt.Errorf("%w: snapshot store not initialized", shared.ErrServiceUnavailable)
		}

		e.sendProgress(progress, ProgressUpdate{Phase: PersistSnapshot, Step: 1, Total: 1, Message: fmt.Sprintf("persisting %d records", len(videos))})

		snapshot, err := e.store.Save(videos)
		if err != nil {
			return nil, fmt.Errorf("failed to persist snapshot: %w", err)
		}
		result.Snapshot = snapshot
	}

	if opts.Format != "" {
		path := opts.OutputPath
		if path == "" {
			path = "catalog_snapshot"
		}

		e.sendProgress(progress, ProgressUpdate{Phase: WriteExport, Step: 1, Total: 1, Message: "writing " + opts.Format + " export"})

		written, err := formatter.WriteExport(videos, opts.Format, path)
		if err != nil {
			return nil, fmt.Errorf("failed to write export: %w", err)
		}
		result.ExportPath = written
	}

	e.sendProgress(progress, ProgressUpdate{Phase: Done, Step: 1, Total: 1, Message: fmt.Sprintf("snapshot complete: %d records", len(videos))})

	return result, nil
}
