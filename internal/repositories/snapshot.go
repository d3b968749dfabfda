package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/videohub/videohub/internal/models"
	"github.com/videohub/videohub/internal/shared"
)

// SnapshotRepository persists catalog snapshots and their video rows.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save stores the records as a new snapshot and returns its metadata.
//
// The whole snapshot commits atomically; record order is preserved via the
// position column.
func (r *SnapshotRepository) Save(videos []models.VideoRecord) (*models.Snapshot, error) {
	snapshot := &models.Snapshot{
		ID:         shared.GenerateID(),
		TakenAt:    time.Now().UTC(),
		VideoCount: len(videos),
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO snapshots (id, taken_at, video_count) VALUES (?, ?, ?)",
		snapshot.ID, snapshot.TakenAt, snapshot.VideoCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO videos (
			snapshot_id, position, id, title, url, cover, analysis,
			company, animation_type, technique, features
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for position, video := range videos {
		company, animation, technique, features, err := marshalTags(video)
		if err != nil {
			return nil, err
		}

		_, err = stmt.Exec(
			snapshot.ID, position, video.ID, video.Title, video.URL,
			video.Cover, video.Analysis, company, animation, technique, features,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert video %s: %w", video.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return snapshot, nil
}

// Latest returns the most recent snapshot and its records in stored order.
//
// Returns [shared.ErrSnapshotNotFound] when no snapshot exists yet.
func (r *SnapshotRepository) Latest() (*models.Snapshot, []models.VideoRecord, error) {
	snapshot := &models.Snapshot{}
	err := r.db.QueryRow(
		"SELECT id, taken_at, video_count FROM snapshots ORDER BY taken_at DESC, rowid DESC LIMIT 1",
	).Scan(&snapshot.ID, &snapshot.TakenAt, &snapshot.VideoCount)
	if err == sql.ErrNoRows {
		return nil, nil, shared.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT id, title, url, cover, analysis, company, animation_type, technique, features
		FROM videos WHERE snapshot_id = ? ORDER BY position
	`, snapshot.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	videos := make([]models.VideoRecord, 0, snapshot.VideoCount)
	for rows.Next() {
		var video models.VideoRecord
		var company, animation, technique, features string

		err := rows.Scan(
			&video.ID, &video.Title, &video.URL, &video.Cover, &video.Analysis,
			&company, &animation, &technique, &features,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan video: %w", err)
		}

		if err := unmarshalTags(&video, company, animation, technique, features); err != nil {
			return nil, nil, err
		}

		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate videos: %w", err)
	}

	return snapshot, videos, nil
}

// List returns all snapshot metadata, newest first.
func (r *SnapshotRepository) List() ([]models.Snapshot, error) {
	rows, err := r.db.Query("SELECT id, taken_at, video_count FROM snapshots ORDER BY taken_at DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []models.Snapshot
	for rows.Next() {
		var snapshot models.Snapshot
		if err := rows.Scan(&snapshot.ID, &snapshot.TakenAt, &snapshot.VideoCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}

// marshalTags encodes the tag slices as JSON for single-column storage.
func marshalTags(video models.VideoRecord) (company, animation, technique, features string, err error) {
	encode := func(tags []string) (string, error) {
		if tags == nil {
			tags = []string{}
		}
		data, err := json.Marshal(tags)
		if err != nil {
			return "", fmt.Errorf("failed to encode tags for %s: %w", video.ID, err)
		}
		return string(data), nil
	}

	if company, err = encode(video.Company); err != nil {
		return
	}
	if animation, err = encode(video.AnimationType); err != nil {
		return
	}
	if technique, err = encode(video.Technique); err != nil {
		return
	}
	features, err = encode(video.Features)
	return
}

// unmarshalTags decodes the stored JSON tag columns back into the record.
func unmarshalTags(video *models.VideoRecord, company, animation, technique, features string) error {
	for _, pair := range []struct {
		raw    string
		target *[]string
	}{
		{company, &video.Company},
		{animation, &video.AnimationType},
		{technique, &video.Technique},
		{features, &video.Features},
	} {
		if err := json.Unmarshal([]byte(pair.raw), pair.target); err != nil {
			return fmt.Errorf("failed to decode tags for %s: %w", video.ID, err)
		}
	}
	return nil
}
