// package repositories provides the SQLite persistence layer for catalog snapshots.
//
// A snapshot is one point-in-time capture of the normalized catalog, taken by
// the CLI. The HTTP request path never reads or writes here: serving stays a
// pure function of the upstream data.
package repositories

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	taken_at TIMESTAMP NOT NULL,
	video_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS videos (
	snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	id TEXT NOT NULL,
	title TEXT NOT NULL,
	url TEXT NOT NULL,
	cover TEXT NOT NULL,
	analysis TEXT NOT NULL,
	company TEXT NOT NULL,
	animation_type TEXT NOT NULL,
	technique TEXT NOT NULL,
	features TEXT NOT NULL,
	PRIMARY KEY (snapshot_id, position)
);
`

// Migrate creates the snapshot tables if they do not exist yet.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
