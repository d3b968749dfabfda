package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/videohub/videohub/internal/formatter"
	"github.com/videohub/videohub/internal/models"
	"github.com/videohub/videohub/internal/repositories"
	"github.com/videohub/videohub/internal/shared"
	"github.com/videohub/videohub/internal/tasks"
)

// Fetch retrieves the catalog and prints it as JSON or a readable summary.
func (r *Runner) Fetch(ctx context.Context, cmd *cli.Command) error {
	if r.source == nil {
		return fmt.Errorf("%w: catalog source not configured", shared.ErrServiceUnavailable)
	}

	videos, err := r.source.FetchVideos(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch catalog: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, cmd.Bool("pretty"))
	}

	r.writeTitle(fmt.Sprintf("Video Catalog (%d)", len(videos)))
	for _, video := range videos {
		r.writeSummary(video)
	}

	return nil
}

// Export fetches the catalog and writes it to a file in the requested format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if r.source == nil {
		return fmt.Errorf("%w: catalog source not configured", shared.ErrServiceUnavailable)
	}

	videos, err := r.source.FetchVideos(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch catalog: %w", err)
	}

	path, err := formatter.WriteExport(videos, cmd.String("format"), cmd.String("output"))
	if err != nil {
		return err
	}

	return r.writeOK("Exported %d records to %s", len(videos), path)
}

// SnapshotTake runs the snapshot engine: fetch, persist, and optionally export.
func (r *Runner) SnapshotTake(ctx context.Context, cmd *cli.Command) error {
	db, store, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	progress := make(chan tasks.ProgressUpdate, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlainln("%s %s", r.palette.Help(update.Phase.String()), update.Message)
		}
	}()

	result, err := r.engine(store).Snapshot(ctx, progress, tasks.SnapshotOpts{
		Format:     cmd.String("format"),
		OutputPath: cmd.String("output"),
		Persist:    true,
	})
	close(progress)
	<-done

	if err != nil {
		return err
	}

	r.writeOK("Snapshot %s stored with %d records", result.Snapshot.ID, result.Snapshot.VideoCount)
	if result.ExportPath != "" {
		r.writeOK("Export written to %s", result.ExportPath)
	}

	return nil
}

// SnapshotList prints stored snapshot metadata, newest first.
func (r *Runner) SnapshotList(ctx context.Context, cmd *cli.Command) error {
	db, store, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	snapshots, err := store.List()
	if err != nil {
		return err
	}

	if len(snapshots) == 0 {
		return r.writePlainln("No snapshots stored yet. Run 'videohub snapshot take' first.")
	}

	r.writeTitle(fmt.Sprintf("Snapshots (%d)", len(snapshots)))
	for _, snapshot := range snapshots {
		r.writePlainln("%s  %s  %d records", snapshot.ID, snapshot.TakenAt.Format("2006-01-02 15:04:05"), snapshot.VideoCount)
	}

	return nil
}

// SnapshotShow prints the most recent stored snapshot.
func (r *Runner) SnapshotShow(ctx context.Context, cmd *cli.Command) error {
	db, store, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	snapshot, videos, err := store.Latest()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"snapshot": snapshot, "videos": videos}, cmd.Bool("pretty"))
	}

	r.writeTitle(fmt.Sprintf("Snapshot %s — %s (%d records)", snapshot.ID, snapshot.TakenAt.Format("2006-01-02 15:04:05"), snapshot.VideoCount))
	for _, video := range videos {
		r.writeSummary(video)
	}

	return nil
}

// writeSummary prints one catalog record as a short readable block.
func (r *Runner) writeSummary(video models.VideoRecord) {
	r.writePlainln("%s", r.palette.OK(video.Title))
	if video.URL != "" {
		r.writePlainln("   %s", video.URL)
	}
	if len(video.Company) > 0 {
		r.writePlainln("   Company: %s", strings.Join(video.Company, ", "))
	}
	if len(video.AnimationType) > 0 {
		r.writePlainln("   Animation: %s", strings.Join(video.AnimationType, ", "))
	}
	r.writePlainln("   %s", r.palette.Help(video.Analysis))
}

// openStore opens the configured snapshot database and runs migrations.
// The caller owns the returned connection.
func (r *Runner) openStore() (*sql.DB, *repositories.SnapshotRepository, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := repositories.Migrate(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, repositories.NewSnapshotRepository(db), nil
}
